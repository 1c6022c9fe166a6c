package dedupe_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
	"github.com/quizwire/flashpipe/pkg/dedupe"
)

// unit returns the 2D unit vector at the given angle in degrees; vectors
// degrees apart have cosine similarity cos(degrees).
func unit(degrees float64) []float32 {
	rad := degrees * math.Pi / 180
	return []float32{float32(math.Cos(rad)), float32(math.Sin(rad))}
}

var _ = Describe("CosineSimilarity", func() {
	It("is 1 for identical vectors", func() {
		Expect(dedupe.CosineSimilarity(unit(30), unit(30))).To(BeNumerically("~", 1.0, 1e-6))
	})

	It("is 0 for orthogonal vectors", func() {
		Expect(dedupe.CosineSimilarity(unit(0), unit(90))).To(BeNumerically("~", 0.0, 1e-6))
	})

	It("is 0 for mismatched lengths", func() {
		Expect(dedupe.CosineSimilarity([]float32{1, 0}, []float32{1})).To(BeZero())
	})

	It("is 0 for a zero vector", func() {
		Expect(dedupe.CosineSimilarity([]float32{0, 0}, []float32{1, 0})).To(BeZero())
	})
})

var _ = Describe("Deduper", func() {
	var d *dedupe.Deduper

	BeforeEach(func() {
		d = dedupe.New(dedupe.Config{}, zap.NewNop())
	})

	withVec := func(title string, vec []float32) *article.Article {
		return &article.Article{Title: title, Embedding: vec}
	}

	It("returns an empty slice for empty input", func() {
		Expect(d.Dedupe([]*article.Article{})).To(BeEmpty())
	})

	It("never emits more exemplars than input articles", func() {
		articles := []*article.Article{
			withVec("a", unit(0)),
			withVec("b", unit(5)),
			withVec("c", unit(90)),
			withVec("d", unit(92)),
		}
		Expect(len(d.Dedupe(articles))).To(BeNumerically("<=", len(articles)))
	})

	It("keeps a singleton cluster for an isolated article", func() {
		articles := []*article.Article{
			withVec("near one", unit(0)),
			withVec("near two", unit(10)),
			withVec("far away", unit(90)),
		}

		out := d.Dedupe(articles)
		Expect(out).To(HaveLen(2))

		titles := []string{out[0].Title, out[1].Title}
		Expect(titles).To(ContainElement("far away"))
	})

	It("clusters two articles with similarity at or above 0.80", func() {
		// cos(30°) ≈ 0.866, distance ≈ 0.134 < 0.20
		articles := []*article.Article{
			withVec("first report of the outage", unit(0)),
			withVec("second", unit(30)),
		}

		out := d.Dedupe(articles)
		Expect(out).To(HaveLen(1))
	})

	It("keeps articles below the threshold apart", func() {
		// cos(45°) ≈ 0.707, distance ≈ 0.293 > 0.20
		articles := []*article.Article{
			withVec("one story", unit(0)),
			withVec("unrelated story", unit(45)),
		}

		Expect(d.Dedupe(articles)).To(HaveLen(2))
	})

	It("chains transitively similar articles into one cluster", func() {
		// Adjacent pairs are ~0.86 similar; the endpoints are only ~0.5.
		articles := []*article.Article{
			withVec("a", unit(0)),
			withVec("b", unit(30)),
			withVec("c", unit(60)),
		}

		Expect(d.Dedupe(articles)).To(HaveLen(1))
	})

	Describe("exemplar selection", func() {
		It("picks the member with the longest title", func() {
			articles := []*article.Article{
				withVec("short", unit(0)),
				withVec("a considerably longer headline", unit(5)),
			}

			out := d.Dedupe(articles)
			Expect(out).To(HaveLen(1))
			Expect(out[0].Title).To(Equal("a considerably longer headline"))
		})

		It("breaks title-length ties by earliest input position", func() {
			articles := []*article.Article{
				withVec("same len", unit(0)),
				withVec("also len", unit(5)),
			}

			out := d.Dedupe(articles)
			Expect(out).To(HaveLen(1))
			Expect(out[0].Title).To(Equal("same len"))
		})
	})

	Describe("fail-open behavior", func() {
		It("returns the input unchanged when an embedding is missing", func() {
			articles := []*article.Article{
				withVec("has vector", unit(0)),
				{Title: "no vector"},
			}

			out := d.Dedupe(articles)
			Expect(out).To(HaveLen(2))
			Expect(out[0]).To(BeIdenticalTo(articles[0]))
			Expect(out[1]).To(BeIdenticalTo(articles[1]))
		})

		It("returns the input unchanged on mixed dimensionality", func() {
			articles := []*article.Article{
				withVec("2d", unit(0)),
				withVec("3d", []float32{1, 0, 0}),
			}

			Expect(d.Dedupe(articles)).To(HaveLen(2))
		})
	})
})
