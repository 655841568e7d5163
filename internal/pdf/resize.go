package pdf

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
)

const pointsPerInch = 72.0

// ApplySize scales img to the requested size. A single given dimension keeps
// the aspect ratio; the default size returns img untouched.
func ApplySize(img image.Image, size models.SizeSpec) image.Image {
	if size.Kind() == models.SizeDefault {
		return img
	}
	width, height := size.Dimensions()
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// PlannedSize predicts the pixel size of a page of widthPt x heightPt points
// rendered at dpi and then passed through ApplySize.
func PlannedSize(widthPt, heightPt float64, dpi int, size models.SizeSpec) (int, int) {
	srcW := rasterPixels(widthPt, dpi)
	srcH := rasterPixels(heightPt, dpi)

	width, height := size.Dimensions()
	switch size.Kind() {
	case models.SizeExact:
		return width, height
	case models.SizeWidthOnly:
		return width, proportional(width, srcH, srcW)
	case models.SizeHeightOnly:
		return proportional(height, srcW, srcH), height
	}
	return srcW, srcH
}

func rasterPixels(points float64, dpi int) int {
	px := int(math.Ceil(points*float64(dpi)/pointsPerInch - 0.001))
	return max(px, 1)
}

// proportional matches the rounding imaging.Resize uses for a zero side.
func proportional(fixed, other, fixedSrc int) int {
	return int(math.Max(1.0, math.Floor(float64(fixed)*float64(other)/float64(fixedSrc)+0.5)))
}
