package fetch_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quizwire/flashpipe/pkg/article"
	"github.com/quizwire/flashpipe/pkg/fetch"
)

// jsonServer serves the payload and captures the query of the last request.
func jsonServer(payload string, query *url.Values) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload)
	}))
}

var _ = Describe("GNews", func() {
	var (
		ctx   context.Context
		query url.Values
	)

	BeforeEach(func() {
		ctx = context.Background()
		query = nil
	})

	It("normalizes API results", func() {
		srv := jsonServer(`{
			"articles": [
				{
					"title": "Rates Hold Steady",
					"url": "https://example.com/rates",
					"publishedAt": "2026-08-30T10:00:00Z",
					"image": "https://example.com/rates.jpg",
					"source": {"name": "Example Wire"}
				},
				{
					"title": "",
					"url": "",
					"source": {"name": "sparse"}
				}
			]
		}`, &query)
		defer srv.Close()

		g := fetch.NewGNews(fetch.GNewsConfig{APIKey: "k", BaseURL: srv.URL})

		articles, err := g.Fetch(ctx, "interest rates")
		Expect(err).NotTo(HaveOccurred())
		Expect(articles).To(HaveLen(2))

		Expect(articles[0].Title).To(Equal("Rates Hold Steady"))
		Expect(articles[0].Source).To(Equal("EXAMPLE WIRE"))
		Expect(articles[0].Link).To(Equal("https://example.com/rates"))

		Expect(articles[1].Title).To(Equal(article.DefaultTitle))
		Expect(articles[1].Link).To(Equal(article.DefaultLink))
		Expect(articles[1].Image).To(Equal(article.DefaultImage))
	})

	It("sends the keyword and configured limits", func() {
		srv := jsonServer(`{"articles": []}`, &query)
		defer srv.Close()

		g := fetch.NewGNews(fetch.GNewsConfig{APIKey: "k", Country: "us", MaxResults: 10, BaseURL: srv.URL})

		_, err := g.Fetch(ctx, "interest rates")
		Expect(err).NotTo(HaveOccurred())
		Expect(query.Get("q")).To(Equal("interest rates"))
		Expect(query.Get("token")).To(Equal("k"))
		Expect(query.Get("country")).To(Equal("us"))
		Expect(query.Get("max")).To(Equal("10"))
	})

	It("surfaces API-level errors", func() {
		srv := jsonServer(`{"errors": ["invalid api key"]}`, &query)
		defer srv.Close()

		g := fetch.NewGNews(fetch.GNewsConfig{APIKey: "bad", BaseURL: srv.URL})

		_, err := g.Fetch(ctx, "anything")
		Expect(err).To(MatchError(ContainSubstring("invalid api key")))
	})
})

var _ = Describe("NewsAPI", func() {
	var (
		ctx   context.Context
		query url.Values
	)

	BeforeEach(func() {
		ctx = context.Background()
		query = nil
	})

	It("normalizes API results", func() {
		srv := jsonServer(`{
			"status": "ok",
			"articles": [
				{
					"title": "Budget Session Opens",
					"url": "https://example.com/budget",
					"publishedAt": "2026-08-29T08:00:00Z",
					"urlToImage": "https://example.com/budget.jpg",
					"source": {"name": "Daily Ledger"}
				}
			]
		}`, &query)
		defer srv.Close()

		n := fetch.NewNewsAPI(fetch.NewsAPIConfig{APIKey: "k", BaseURL: srv.URL})

		articles, err := n.Fetch(ctx, "budget")
		Expect(err).NotTo(HaveOccurred())
		Expect(articles).To(HaveLen(1))
		Expect(articles[0].Source).To(Equal("DAILY LEDGER"))
		Expect(articles[0].Image).To(Equal("https://example.com/budget.jpg"))
	})

	It("restricts results to the lookback window", func() {
		srv := jsonServer(`{"status": "ok", "articles": []}`, &query)
		defer srv.Close()

		n := fetch.NewNewsAPI(fetch.NewsAPIConfig{APIKey: "k", BaseURL: srv.URL})

		_, err := n.Fetch(ctx, "budget")
		Expect(err).NotTo(HaveOccurred())
		Expect(query.Get("from")).To(MatchRegexp(`^\d{4}-\d{2}-\d{2}$`))
		Expect(query.Get("pageSize")).To(Equal("25"))
	})

	It("surfaces a non-ok status", func() {
		srv := jsonServer(`{"status": "error", "message": "apiKeyInvalid"}`, &query)
		defer srv.Close()

		n := fetch.NewNewsAPI(fetch.NewsAPIConfig{APIKey: "bad", BaseURL: srv.URL})

		_, err := n.Fetch(ctx, "anything")
		Expect(err).To(MatchError(ContainSubstring("apiKeyInvalid")))
	})
})

var _ = Describe("NewsData", func() {
	var (
		ctx   context.Context
		query url.Values
	)

	BeforeEach(func() {
		ctx = context.Background()
		query = nil
	})

	It("normalizes API results", func() {
		srv := jsonServer(`{
			"status": "success",
			"results": [
				{
					"title": "Markets Close Higher",
					"link": "https://example.com/markets",
					"source_id": "examplebiz",
					"pubDate": "2026-08-30 09:30:00",
					"image_url": "https://example.com/markets.jpg"
				}
			]
		}`, &query)
		defer srv.Close()

		n := fetch.NewNewsData(fetch.NewsDataConfig{APIKey: "k", BaseURL: srv.URL})

		articles, err := n.Fetch(ctx, "markets")
		Expect(err).NotTo(HaveOccurred())
		Expect(articles).To(HaveLen(1))
		Expect(articles[0].Source).To(Equal("EXAMPLEBIZ"))
		Expect(articles[0].PublishedAt).To(Equal("2026-08-30 09:30:00"))
	})

	It("applies the default country and category", func() {
		srv := jsonServer(`{"status": "success", "results": []}`, &query)
		defer srv.Close()

		n := fetch.NewNewsData(fetch.NewsDataConfig{APIKey: "k", BaseURL: srv.URL})

		_, err := n.Fetch(ctx, "markets")
		Expect(err).NotTo(HaveOccurred())
		Expect(query.Get("country")).To(Equal("in"))
		Expect(query.Get("category")).To(Equal("business"))
	})

	It("surfaces a non-success status", func() {
		srv := jsonServer(`{"status": "error", "results": []}`, &query)
		defer srv.Close()

		n := fetch.NewNewsData(fetch.NewsDataConfig{APIKey: "bad", BaseURL: srv.URL})

		_, err := n.Fetch(ctx, "anything")
		Expect(err).To(MatchError(ContainSubstring("newsdata error")))
	})
})
