package pdf_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/kpauljoseph/pdf2jpeg/internal/pdf"
	"github.com/kpauljoseph/pdf2jpeg/internal/testutil"
	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
)

// Pages are 144x72pt, which is 2x1 inches.
var twoByOneInch = testutil.PageSize{Width: 144, Height: 72}

var _ = Describe("Fitz Renderer", func() {
	var (
		renderer *pdf.FitzRenderer
		tempDir  string
		ctx      context.Context
	)

	writePDF := func(name string, data []byte) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, data, 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "pdf2jpeg-fitz-*")
		Expect(err).NotTo(HaveOccurred())

		renderer = pdf.NewFitzRenderer(afero.NewOsFs())
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(renderer.Close()).To(Succeed())
		os.RemoveAll(tempDir)
	})

	It("should render every page at the requested DPI", func() {
		path := writePDF("three.pdf", testutil.UniformPDF(3, twoByOneInch))

		images, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: 72, Concurrency: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(HaveLen(3))

		for _, img := range images {
			Expect(img.Bounds().Dx()).To(BeNumerically("~", 144, 1))
			Expect(img.Bounds().Dy()).To(BeNumerically("~", 72, 1))
		}
	})

	It("should scale with DPI", func() {
		path := writePDF("one.pdf", testutil.UniformPDF(1, twoByOneInch))

		images, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: pdf.PageDPI, Concurrency: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(HaveLen(1))
		Expect(images[0].Bounds().Dx()).To(BeNumerically("~", 600, 1))
		Expect(images[0].Bounds().Dy()).To(BeNumerically("~", 300, 1))
	})

	It("should keep page order with several workers", func() {
		var sizes []testutil.PageSize
		for i := 1; i <= 5; i++ {
			sizes = append(sizes, testutil.PageSize{Width: float64(72 * i), Height: 72})
		}
		path := writePDF("widths.pdf", testutil.BlankPDF(sizes...))

		images, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: 72, Concurrency: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(HaveLen(5))

		for i, img := range images {
			Expect(img.Bounds().Dx()).To(BeNumerically("~", 72*(i+1), 1))
		}
	})

	It("should restrict rendering to the page range", func() {
		path := writePDF("four.pdf", testutil.UniformPDF(4, twoByOneInch))

		images, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: 72, FirstPage: 1, LastPage: 1, Concurrency: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(HaveLen(1))
	})

	It("should return nothing for a range past the end", func() {
		path := writePDF("one.pdf", testutil.UniformPDF(1, twoByOneInch))

		images, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: 72, FirstPage: 3, LastPage: 3, Concurrency: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(BeEmpty())
	})

	It("should apply a width-only size keeping the aspect ratio", func() {
		path := writePDF("one.pdf", testutil.UniformPDF(1, twoByOneInch))
		width := 300

		images, err := renderer.Render(ctx, path, pdf.RenderOptions{
			DPI:         pdf.PageDPI,
			Size:        models.NewSizeSpec(&width, nil),
			Concurrency: 1,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(images[0].Bounds().Dx()).To(Equal(300))
		Expect(images[0].Bounds().Dy()).To(BeNumerically("~", 150, 1))
	})

	It("should classify a non-PDF file as malformed", func() {
		path := writePDF("broken.pdf", []byte("this is not a pdf"))

		_, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: 72, Concurrency: 1})
		Expect(err).To(MatchError(pdf.ErrMalformedPDF))
	})

	It("should render a document whose xref table needs repair", func() {
		data := testutil.DamagedXrefPDF(twoByOneInch, twoByOneInch)
		path := writePDF("damaged.pdf", data)

		images, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: 72, Concurrency: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(HaveLen(2))
		Expect(images[1].Bounds().Dx()).To(BeNumerically("~", 144, 1))

		_, err = pdf.NewInspector().PageCount(data)
		Expect(err).To(MatchError(pdf.ErrMalformedPDF))
	})

	It("should fail on a missing file", func() {
		_, err := renderer.Render(ctx, filepath.Join(tempDir, "missing.pdf"), pdf.RenderOptions{DPI: 72, Concurrency: 1})
		Expect(err).To(HaveOccurred())
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("should stop when the context is cancelled", func() {
		path := writePDF("three.pdf", testutil.UniformPDF(3, twoByOneInch))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := renderer.Render(ctx, path, pdf.RenderOptions{DPI: 72, Concurrency: 2})
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Renderer selection", func() {
	It("should default to fitz", func() {
		r, err := pdf.NewRenderer("", afero.NewMemMapFs())
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeAssignableToTypeOf(&pdf.FitzRenderer{}))
	})

	It("should build the PDFium backend without starting it", func() {
		r, err := pdf.NewRenderer(pdf.RendererPDFium, afero.NewMemMapFs())
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeAssignableToTypeOf(&pdf.PDFiumRenderer{}))
		Expect(r.Close()).To(Succeed())
	})

	It("should reject an unknown backend", func() {
		_, err := pdf.NewRenderer("ghostscript", afero.NewMemMapFs())
		Expect(err).To(MatchError(pdf.ErrRendererUnavailable))
	})
})

var _ = Describe("Inspector", func() {
	var inspector *pdf.Inspector

	BeforeEach(func() {
		inspector = pdf.NewInspector()
	})

	It("should count pages", func() {
		count, err := inspector.PageCount(testutil.UniformPDF(4, twoByOneInch))
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(4))
	})

	It("should report every page size in points", func() {
		dims, err := inspector.PageDims(testutil.BlankPDF(twoByOneInch, testutil.PageSize{Width: 612, Height: 792}))
		Expect(err).NotTo(HaveOccurred())
		Expect(dims).To(HaveLen(2))
		Expect(dims[0].Width).To(BeNumerically("~", 144, 0.01))
		Expect(dims[1].Height).To(BeNumerically("~", 792, 0.01))
	})

	It("should classify garbage as malformed", func() {
		_, err := inspector.PageCount([]byte("plain text"))
		Expect(err).To(MatchError(pdf.ErrMalformedPDF))

		_, err = inspector.PageDims([]byte("plain text"))
		Expect(err).To(MatchError(pdf.ErrMalformedPDF))
	})
})
