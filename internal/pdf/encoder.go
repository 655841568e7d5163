package pdf

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
)

type JPEGEncoder struct {
	fs afero.Fs
}

func NewJPEGEncoder(fs afero.Fs) *JPEGEncoder {
	return &JPEGEncoder{fs: fs}
}

func (e *JPEGEncoder) Save(img image.Image, path string, quality int) error {
	f, err := e.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return f.Close()
}
