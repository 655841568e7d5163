package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Inspector reads the document structure with pdfcpu. Renderers only ask it
// to classify documents their own backend opened without any pages.
type Inspector struct {
	conf *model.Configuration
}

func NewInspector() *Inspector {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Inspector{conf: conf}
}

func (i *Inspector) PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), i.conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}
	if count < 1 {
		return 0, fmt.Errorf("%w: document reports %d pages", ErrPageCount, count)
	}
	return count, nil
}

// PageDims returns every page's media size in points.
func (i *Inspector) PageDims(data []byte) ([]types.Dim, error) {
	dims, err := api.PageDims(bytes.NewReader(data), i.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}
	if len(dims) == 0 {
		return nil, ErrPageCount
	}
	return dims, nil
}

// classifyEmpty names the error for a document the backend opened but found
// no pages in.
func (i *Inspector) classifyEmpty(data []byte) error {
	if _, err := i.PageCount(data); errors.Is(err, ErrMalformedPDF) {
		return err
	}
	return fmt.Errorf("%w: document has no pages", ErrPageCount)
}
