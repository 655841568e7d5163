package testutil

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/spf13/afero"

	"github.com/kpauljoseph/pdf2jpeg/internal/pdf"
)

const (
	FakePageWidth  = 60
	FakePageHeight = 30
)

type RenderCall struct {
	Path string
	Opts pdf.RenderOptions
}

// FakeRenderer returns solid pages whose red channel encodes the page
// number, so callers can tell which page ended up where.
type FakeRenderer struct {
	mu           sync.Mutex
	DefaultPages int
	Pages        map[string]int
	Errors       map[string]error
	Calls        []RenderCall
	Closed       bool
}

func NewFakeRenderer(defaultPages int) *FakeRenderer {
	return &FakeRenderer{
		DefaultPages: defaultPages,
		Pages:        make(map[string]int),
		Errors:       make(map[string]error),
	}
}

func (f *FakeRenderer) Render(ctx context.Context, pdfPath string, opts pdf.RenderOptions) ([]image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, RenderCall{Path: pdfPath, Opts: opts})
	if err := f.Errors[pdfPath]; err != nil {
		return nil, err
	}

	pageCount, ok := f.Pages[pdfPath]
	if !ok {
		pageCount = f.DefaultPages
	}

	first := max(opts.FirstPage, 1)
	last := opts.LastPage
	if last == 0 || last > pageCount {
		last = pageCount
	}

	var images []image.Image
	for page := first; page <= last; page++ {
		images = append(images, pdf.ApplySize(PageImage(page), opts.Size))
	}
	return images, nil
}

func (f *FakeRenderer) Close() error {
	f.Closed = true
	return nil
}

func (f *FakeRenderer) CallsFor(pdfPath string) []RenderCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var calls []RenderCall
	for _, c := range f.Calls {
		if c.Path == pdfPath {
			calls = append(calls, c)
		}
	}
	return calls
}

func PageImage(page int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FakePageWidth, FakePageHeight))
	c := color.RGBA{R: PageMarker(page), G: 0, B: 0, A: 255}
	for y := 0; y < FakePageHeight; y++ {
		for x := 0; x < FakePageWidth; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func PageMarker(page int) uint8 {
	return uint8(page * 10)
}

type SavedImage struct {
	Path    string
	Quality int
	Image   image.Image
}

// RecordingEncoder remembers every Save and leaves a placeholder file on
// its filesystem so existence checks behave like the real encoder.
type RecordingEncoder struct {
	fs     afero.Fs
	FailOn map[string]error
	Saved  []SavedImage
}

func NewRecordingEncoder(fs afero.Fs) *RecordingEncoder {
	return &RecordingEncoder{
		fs:     fs,
		FailOn: make(map[string]error),
	}
}

func (e *RecordingEncoder) Save(img image.Image, path string, quality int) error {
	if err := e.FailOn[path]; err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, path, []byte("jpeg"), 0644); err != nil {
		return err
	}
	e.Saved = append(e.Saved, SavedImage{Path: path, Quality: quality, Image: img})
	return nil
}

func (e *RecordingEncoder) Paths() []string {
	paths := make([]string, len(e.Saved))
	for i, s := range e.Saved {
		paths[i] = s.Path
	}
	return paths
}
