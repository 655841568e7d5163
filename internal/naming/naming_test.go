package naming_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdf2jpeg/internal/naming"
)

var _ = Describe("Output Naming", func() {
	Context("without an override", func() {
		DescribeTable("ResolveBase",
			func(input, expected string) {
				Expect(naming.ResolveBase(input, "")).To(Equal(expected))
			},
			Entry("bare file name", "report.pdf", "report"),
			Entry("upper-case extension", "B.PDF", "B"),
			Entry("relative directory", filepath.Join("docs", "a.pdf"), "a"),
			Entry("deep directory", filepath.Join("/", "srv", "in", "2024", "q1", "summary.pdf"), "summary"),
			Entry("dots inside the name", filepath.Join("docs", "v1.2.final.pdf"), "v1.2.final"),
			Entry("dotted directory", filepath.Join("my.docs", "plain"), "plain"),
			Entry("hidden file without extension", filepath.Join("docs", ".hidden"), ".hidden"),
			Entry("hidden file with extension", filepath.Join("docs", ".hidden.pdf"), ".hidden"),
		)
	})

	Context("with an override", func() {
		DescribeTable("ResolveBase",
			func(input, override, expected string) {
				Expect(naming.ResolveBase(input, override)).To(Equal(expected))
			},
			Entry("plain override", "report.pdf", "output", "output"),
			Entry("override with extension", "report.pdf", "output.pdf", "output"),
			Entry("override with other extension", "report.pdf", "final.jpeg", "final"),
			Entry("input directory is irrelevant", filepath.Join("a", "b", "report.pdf"), "final", "final"),
			Entry("override keeps its directory", "report.pdf", filepath.Join("sub", "final.pdf"), filepath.Join("sub", "final")),
		)

		It("should ignore the input path entirely", func() {
			for _, input := range []string{"x.pdf", filepath.Join("deep", "y.PDF"), "z"} {
				Expect(naming.ResolveBase(input, "final.pdf")).To(Equal("final"))
			}
		})
	})

	Context("output file names", func() {
		It("should number pages from one", func() {
			Expect(naming.PageFileName("report", 1)).To(Equal("report_page1.jpg"))
			Expect(naming.PageFileName("report", 12)).To(Equal("report_page12.jpg"))
		})

		It("should append the thumbnail suffix", func() {
			Expect(naming.ThumbnailFileName("a", "_thumbnail")).To(Equal("a_thumbnail.jpg"))
			Expect(naming.ThumbnailFileName("a", "-small")).To(Equal("a-small.jpg"))
		})

		It("should name the source copy after the base", func() {
			Expect(naming.SourceCopyName("final")).To(Equal("final.pdf"))
		})
	})

	DescribeTable("HasPDFExtension",
		func(path string, expected bool) {
			Expect(naming.HasPDFExtension(path)).To(Equal(expected))
		},
		Entry("lower case", "a.pdf", true),
		Entry("upper case", "a.PDF", true),
		Entry("mixed case", "a.Pdf", true),
		Entry("other extension", "a.txt", false),
		Entry("pdf inside the name", "a.pdf.txt", false),
	)
})
