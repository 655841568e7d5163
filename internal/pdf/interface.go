package pdf

import (
	"context"
	"errors"
	"image"
	"runtime"

	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
)

var (
	ErrRendererUnavailable = errors.New("PDF renderer is not available")
	ErrPageCount           = errors.New("unable to determine page count")
	ErrMalformedPDF        = errors.New("malformed PDF structure")
	ErrEmptyResult         = errors.New("renderer produced no pages")
)

// RenderOptions describes one render call. FirstPage and LastPage are
// 1-indexed and inclusive; zero means the start or end of the document.
type RenderOptions struct {
	DPI         int
	Size        models.SizeSpec
	FirstPage   int
	LastPage    int
	Concurrency int
}

type Renderer interface {
	Render(ctx context.Context, pdfPath string, opts RenderOptions) ([]image.Image, error)
	Close() error
}

type Encoder interface {
	Save(img image.Image, path string, quality int) error
}

func DefaultConcurrency() int {
	return max(runtime.NumCPU(), 1)
}

// pageRange clamps the requested range to the document. An empty range is
// returned as first > last.
func (o RenderOptions) pageRange(pageCount int) (int, int) {
	first := max(o.FirstPage, 1)
	last := o.LastPage
	if last == 0 || last > pageCount {
		last = pageCount
	}
	return first, last
}

func (o RenderOptions) workers(pages int) int {
	return max(min(o.Concurrency, pages), 1)
}
