package pdf

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// FitzRenderer rasterizes pages with MuPDF. Each worker opens its own
// document handle because a fitz.Document renders one page at a time.
type FitzRenderer struct {
	fs        afero.Fs
	inspector *Inspector
}

func NewFitzRenderer(fs afero.Fs) *FitzRenderer {
	return &FitzRenderer{
		fs:        fs,
		inspector: NewInspector(),
	}
}

func (r *FitzRenderer) Render(ctx context.Context, pdfPath string, opts RenderOptions) ([]image.Image, error) {
	data, err := afero.ReadFile(r.fs, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	pageCount, err := r.pageCount(data)
	if err != nil {
		return nil, err
	}

	first, last := opts.pageRange(pageCount)
	if first > last {
		return nil, nil
	}

	images := make([]image.Image, last-first+1)
	workers := opts.workers(len(images))

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			doc, err := fitz.NewFromMemory(data)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedPDF, err)
			}
			defer doc.Close()

			//Page numbers are zero indexed in the fitz package.
			for i := w; i < len(images); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}

				pageNum := first - 1 + i
				img, err := doc.ImageDPI(pageNum, float64(opts.DPI))
				if err != nil {
					return fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
				}
				images[i] = ApplySize(img, opts.Size)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// pageCount asks MuPDF, which repairs damaged cross-reference tables on open.
func (r *FitzRenderer) pageCount(data []byte) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if count < 1 {
		return 0, r.inspector.classifyEmpty(data)
	}
	return count, nil
}

func (r *FitzRenderer) Close() error {
	return nil
}
