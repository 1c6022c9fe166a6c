package results_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
	"github.com/quizwire/flashpipe/pkg/results"
)

var _ = Describe("Store", func() {
	var (
		dir   string
		path  string
		store *results.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, "results.json")
		store = results.NewStore(path, zap.NewNop())
	})

	It("round-trips the article list in order", func() {
		articles := []*article.Article{
			{Title: "First", Link: "https://example.com/1", Source: "GNEWS", Score: 61.4},
			{Title: "Second", Link: "https://example.com/2", Source: "NEWSAPI", Score: 12.0},
		}
		Expect(store.Save(articles)).To(Succeed())

		loaded, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(HaveLen(2))
		Expect(loaded[0].Title).To(Equal("First"))
		Expect(loaded[1].Title).To(Equal("Second"))
		Expect(loaded[0].Score).To(Equal(61.4))
	})

	It("keeps embeddings out of the file", func() {
		articles := []*article.Article{
			{Title: "Vectorized", Embedding: []float32{1, 2, 3}},
		}
		Expect(store.Save(articles)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).NotTo(ContainSubstring("embedding"))

		loaded, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded[0].Embedding).To(BeNil())
	})

	It("creates missing parent directories", func() {
		nested := results.NewStore(filepath.Join(dir, "out", "deep", "results.json"), zap.NewNop())
		Expect(nested.Save([]*article.Article{{Title: "t"}})).To(Succeed())

		_, err := nested.Load()
		Expect(err).NotTo(HaveOccurred())
	})

	It("replaces an existing file without leaving temp files behind", func() {
		Expect(store.Save([]*article.Article{{Title: "old"}})).To(Succeed())
		Expect(store.Save([]*article.Article{{Title: "new"}})).To(Succeed())

		loaded, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(HaveLen(1))
		Expect(loaded[0].Title).To(Equal("new"))

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
	})

	It("reports a missing file as not-exist", func() {
		_, err := store.Load()
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("rejects a corrupt file", func() {
		Expect(os.WriteFile(path, []byte("{not json"), 0o644)).To(Succeed())

		_, err := store.Load()
		Expect(err).To(MatchError(ContainSubstring("parsing results")))
	})
})
