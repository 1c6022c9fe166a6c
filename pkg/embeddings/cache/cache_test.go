package cache_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/embeddings/cache"
)

var _ = Describe("Cache", func() {
	var c *cache.Cache

	newCache := func(maxItems int) *cache.Cache {
		c, err := cache.New(cache.Config{
			DBPath:   ":memory:",
			MaxItems: maxItems,
		}, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	AfterEach(func() {
		if c != nil {
			c.Close()
			c = nil
		}
	})

	Describe("New", func() {
		It("requires a database path", func() {
			_, err := cache.New(cache.Config{}, zap.NewNop())
			Expect(err).To(HaveOccurred())
		})

		It("rejects a negative maximum", func() {
			_, err := cache.New(cache.Config{DBPath: ":memory:", MaxItems: -1}, zap.NewNop())
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			c = newCache(10)
		})

		It("reports absent for an unknown hash", func() {
			_, ok, err := c.Get("deadbeef")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("does no partial matching", func() {
			Expect(c.Put("abcdef", []float32{1, 2, 3})).To(Succeed())

			_, ok, err := c.Get("abc")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Put", func() {
		BeforeEach(func() {
			c = newCache(10)
		})

		It("round-trips a vector exactly", func() {
			vec := []float32{0.25, -1.5, 3.75, 0}
			Expect(c.Put("h1", vec)).To(Succeed())

			got, ok, err := c.Get("h1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(vec))
		})

		It("upserts an existing hash", func() {
			Expect(c.Put("h1", []float32{1})).To(Succeed())
			Expect(c.Put("h1", []float32{2})).To(Succeed())

			got, ok, err := c.Get("h1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal([]float32{2}))

			count, err := c.Count()
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})
	})

	Describe("eviction", func() {
		BeforeEach(func() {
			c = newCache(3)
		})

		It("holds exactly max items after overflow and removes the oldest entry", func() {
			for i := 0; i < 4; i++ {
				Expect(c.Put(fmt.Sprintf("h%d", i), []float32{float32(i)})).To(Succeed())
				// Distinct created_at timestamps.
				time.Sleep(2 * time.Millisecond)
			}

			count, err := c.Count()
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))

			_, ok, err := c.Get("h0")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse(), "oldest entry should be evicted")

			for i := 1; i < 4; i++ {
				_, ok, err := c.Get(fmt.Sprintf("h%d", i))
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
			}
		})

		It("refreshes the timestamp on write, not on read", func() {
			Expect(c.Put("h0", []float32{0})).To(Succeed())
			time.Sleep(2 * time.Millisecond)
			Expect(c.Put("h1", []float32{1})).To(Succeed())
			time.Sleep(2 * time.Millisecond)
			Expect(c.Put("h2", []float32{2})).To(Succeed())
			time.Sleep(2 * time.Millisecond)

			// Reading h0 must not protect it from eviction.
			_, _, err := c.Get("h0")
			Expect(err).NotTo(HaveOccurred())

			// Rewriting h1 refreshes it, making h0 the eviction victim.
			Expect(c.Put("h1", []float32{1})).To(Succeed())
			time.Sleep(2 * time.Millisecond)
			Expect(c.Put("h3", []float32{3})).To(Succeed())

			_, ok, err := c.Get("h0")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			_, ok, err = c.Get("h1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})
	})
})
