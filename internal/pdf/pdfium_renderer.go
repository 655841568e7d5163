package pdf

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const instanceTimeout = 30 * time.Second

// PDFiumRenderer rasterizes pages with PDFium compiled to WebAssembly, so it
// needs neither CGo nor a system library. The instance pool is created on
// first use and sized by maxWorkers.
type PDFiumRenderer struct {
	fs         afero.Fs
	inspector  *Inspector
	maxWorkers int

	initOnce sync.Once
	initErr  error
	pool     pdfium.Pool
}

func NewPDFiumRenderer(fs afero.Fs, maxWorkers int) *PDFiumRenderer {
	return &PDFiumRenderer{
		fs:         fs,
		inspector:  NewInspector(),
		maxWorkers: max(maxWorkers, 1),
	}
}

func (r *PDFiumRenderer) init() error {
	r.initOnce.Do(func() {
		pool, err := webassembly.Init(webassembly.Config{
			MinIdle:  1,
			MaxIdle:  r.maxWorkers,
			MaxTotal: r.maxWorkers,
		})
		if err != nil {
			r.initErr = fmt.Errorf("%w: failed to initialize PDFium WebAssembly: %v", ErrRendererUnavailable, err)
			return
		}
		r.pool = pool
	})
	return r.initErr
}

func (r *PDFiumRenderer) Render(ctx context.Context, pdfPath string, opts RenderOptions) ([]image.Image, error) {
	if err := r.init(); err != nil {
		return nil, err
	}

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
	workers := min(opts.workers(len(images)), r.maxWorkers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			instance, err := r.pool.GetInstance(instanceTimeout)
			if err != nil {
				return fmt.Errorf("%w: failed to get PDFium instance: %v", ErrRendererUnavailable, err)
			}
			defer instance.Close()

			doc, err := instance.OpenDocument(&requests.OpenDocument{
				File: &data,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedPDF, err)
			}
			defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
				Document: doc.Document,
			})

			for i := w; i < len(images); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}

				pageIndex := first - 1 + i
				pageRender, err := instance.RenderPageInDPI(&requests.RenderPageInDPI{
					DPI: opts.DPI,
					Page: requests.Page{
						ByIndex: &requests.PageByIndex{
							Document: doc.Document,
							Index:    pageIndex,
						},
					},
				})
				if err != nil {
					return fmt.Errorf("failed to render page %d: %w", pageIndex+1, err)
				}

				// The render buffer belongs to the instance until Cleanup.
				images[i] = ApplySize(imaging.Clone(pageRender.Result.Image), opts.Size)
				pageRender.Cleanup()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *PDFiumRenderer) pageCount(data []byte) (int, error) {
	instance, err := r.pool.GetInstance(instanceTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get PDFium instance: %v", ErrRendererUnavailable, err)
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{
		File: &data,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	resp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPageCount, err)
	}
	if resp.PageCount < 1 {
		return 0, r.inspector.classifyEmpty(data)
	}
	return resp.PageCount, nil
}

func (r *PDFiumRenderer) Close() error {
	if r.pool != nil {
		err := r.pool.Close()
		r.pool = nil
		return err
	}
	return nil
}
