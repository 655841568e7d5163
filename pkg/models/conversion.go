package models

import (
	"errors"
	"fmt"
)

const DefaultThumbSuffix = "_thumbnail"

var ErrInvalidDimension = errors.New("must be a positive number of pixels")

// CheckDimension accepts an unset dimension or a positive one. name is how
// the caller refers to the value in messages, e.g. "--width".
func CheckDimension(name string, value *int) error {
	if value != nil && *value <= 0 {
		return fmt.Errorf("%s %w, got %d", name, ErrInvalidDimension, *value)
	}
	return nil
}

type Mode int

const (
	ModeFullPages Mode = iota
	ModeThumbnailOnly
)

func (m Mode) String() string {
	switch m {
	case ModeThumbnailOnly:
		return "thumbnail-only"
	default:
		return "full-pages"
	}
}

type SizeKind int

const (
	SizeDefault SizeKind = iota
	SizeExact
	SizeWidthOnly
	SizeHeightOnly
)

// SizeSpec is the requested output size of a rendered page. A nil dimension
// is unconstrained and follows the page aspect ratio.
type SizeSpec struct {
	Width  *int
	Height *int
}

func NewSizeSpec(width, height *int) SizeSpec {
	return SizeSpec{Width: width, Height: height}
}

func (s SizeSpec) Kind() SizeKind {
	switch {
	case s.Width != nil && s.Height != nil:
		return SizeExact
	case s.Width != nil:
		return SizeWidthOnly
	case s.Height != nil:
		return SizeHeightOnly
	default:
		return SizeDefault
	}
}

// Dimensions returns the target width and height, using 0 for an
// unconstrained side.
func (s SizeSpec) Dimensions() (int, int) {
	var w, h int
	if s.Width != nil {
		w = *s.Width
	}
	if s.Height != nil {
		h = *s.Height
	}
	return w, h
}

func (s SizeSpec) Describe() string {
	w, h := s.Dimensions()
	switch s.Kind() {
	case SizeExact:
		return fmt.Sprintf("width %dpx, height %dpx", w, h)
	case SizeWidthOnly:
		return fmt.Sprintf("width %dpx (aspect ratio preserved)", w)
	case SizeHeightOnly:
		return fmt.Sprintf("height %dpx (aspect ratio preserved)", h)
	default:
		return "default"
	}
}

type ConversionRequest struct {
	InputFile   string
	InputFolder string
	OutputDir   string
	OutputBase  string
	Mode        Mode
	FullSize    SizeSpec
	ThumbSize   SizeSpec
	ThumbSuffix string
}

func (r ConversionRequest) SingleFile() bool {
	return r.InputFile != ""
}

type PageResult struct {
	PageNumber int
	OutputPath string
}

type BatchOutcome struct {
	TotalCandidates int
	Succeeded       int
	Failed          int
}

func (o *BatchOutcome) Record(success bool) {
	if success {
		o.Succeeded++
	} else {
		o.Failed++
	}
}

func (o BatchOutcome) HasFailures() bool {
	return o.Failed > 0
}

func (o BatchOutcome) ExitCode() int {
	if o.HasFailures() {
		return 1
	}
	return 0
}
