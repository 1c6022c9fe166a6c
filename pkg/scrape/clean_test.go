package scrape

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CleanArtifacts", func() {
	It("returns empty input unchanged", func() {
		Expect(CleanArtifacts("")).To(Equal(""))
	})

	It("removes standalone advertisement lines", func() {
		text := "First paragraph.\nAdvertisement\nSecond paragraph."
		Expect(CleanArtifacts(text)).To(Equal("First paragraph.\n\nSecond paragraph."))
	})

	It("cuts everything from a syndication disclaimer onward", func() {
		text := "Real reporting here.\n(This content is sourced from a syndicated feed.)\nTrailing boilerplate."
		Expect(CleanArtifacts(text)).To(Equal("Real reporting here."))
	})

	It("strips agency tags in place", func() {
		text := "The minister announced the scheme. (ANI) More details followed."
		Expect(CleanArtifacts(text)).To(Equal("The minister announced the scheme.  More details followed."))
	})

	It("drops subscription boilerplate lines", func() {
		text := "Useful sentence.\nSubscribe now to continue reading.\nAnother useful sentence."
		Expect(CleanArtifacts(text)).To(Equal("Useful sentence.\nAnother useful sentence."))
	})

	It("matches boilerplate case-insensitively", func() {
		text := "Body.\nAlready a Member? Sign In here.\nMore body."
		Expect(CleanArtifacts(text)).To(Equal("Body.\nMore body."))
	})

	It("collapses runs of blank lines", func() {
		text := "One.\n\n\n\nTwo."
		Expect(CleanArtifacts(text)).To(Equal("One.\n\nTwo."))
	})

	It("trims surrounding whitespace", func() {
		Expect(CleanArtifacts("  \n Body text. \n ")).To(Equal("Body text."))
	})
})
