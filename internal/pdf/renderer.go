package pdf

import (
	"fmt"

	"github.com/spf13/afero"
)

const (
	RendererFitz   = "fitz"
	RendererPDFium = "pdfium"
)

// NewRenderer returns the rendering backend registered under name.
func NewRenderer(name string, fs afero.Fs) (Renderer, error) {
	switch name {
	case "", RendererFitz:
		return NewFitzRenderer(fs), nil
	case RendererPDFium:
		return NewPDFiumRenderer(fs, DefaultConcurrency()), nil
	default:
		return nil, fmt.Errorf("%w: unknown renderer %q (want %s or %s)", ErrRendererUnavailable, name, RendererFitz, RendererPDFium)
	}
}
