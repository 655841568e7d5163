package pdf

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kpauljoseph/pdf2jpeg/internal/naming"
	"github.com/kpauljoseph/pdf2jpeg/pkg/logger"
	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
	"github.com/kpauljoseph/pdf2jpeg/pkg/utils"
)

const (
	PageDPI          = 300
	PageQuality      = 90
	ThumbnailDPI     = 200
	ThumbnailQuality = 85
)

// Writer renders PDFs and persists the pages as JPEG files. Writes are
// best-effort: pages saved before a failure stay on disk.
type Writer struct {
	renderer Renderer
	encoder  Encoder
	fs       afero.Fs
	logger   *logger.Logger
}

func NewWriter(renderer Renderer, encoder Encoder, fs afero.Fs, logger *logger.Logger) *Writer {
	return &Writer{
		renderer: renderer,
		encoder:  encoder,
		fs:       fs,
		logger:   logger,
	}
}

func (w *Writer) WritePages(ctx context.Context, inputPDF, outputDir, base string, size models.SizeSpec) ([]models.PageResult, error) {
	w.logger.Info("--- Converting all pages: %s ---", inputPDF)
	w.logger.Info("  Output directory: %s", outputDir)
	w.logger.Info("  Output base name: %s", base)
	w.logger.Info("  Requested size: %s", size.Describe())

	if err := utils.EnsureDir(w.fs, outputDir); err != nil {
		return nil, err
	}

	images, err := w.renderer.Render(ctx, inputPDF, RenderOptions{
		DPI:         PageDPI,
		Size:        size,
		Concurrency: DefaultConcurrency(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", inputPDF, err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, inputPDF)
	}

	pageCount := len(images)
	w.logger.Info("  Detected %d pages, saving as JPEG...", pageCount)

	results := make([]models.PageResult, 0, pageCount)
	for i, img := range images {
		pageNum := i + 1
		outputPath := filepath.Join(outputDir, naming.PageFileName(base, pageNum))
		w.logger.Info("    Page %d/%d -> %s", pageNum, pageCount, outputPath)

		if err := w.encoder.Save(img, outputPath, PageQuality); err != nil {
			return nil, fmt.Errorf("failed to save page %d: %w", pageNum, err)
		}
		results = append(results, models.PageResult{
			PageNumber: pageNum,
			OutputPath: outputPath,
		})
	}

	w.logger.Info("--- Finished %s (%d pages) ---", inputPDF, pageCount)
	return results, nil
}

func (w *Writer) WriteThumbnail(ctx context.Context, inputPDF, outputDir, base string, size models.SizeSpec, suffix string) (models.PageResult, error) {
	outputPath := filepath.Join(outputDir, naming.ThumbnailFileName(base, suffix))

	w.logger.Info("--- Generating thumbnail: %s ---", inputPDF)
	w.logger.Info("  Output directory: %s", outputDir)
	w.logger.Info("  Output file: %s", filepath.Base(outputPath))
	w.logger.Info("  Requested thumbnail size: %s", size.Describe())

	if err := utils.EnsureDir(w.fs, outputDir); err != nil {
		return models.PageResult{}, err
	}

	images, err := w.renderer.Render(ctx, inputPDF, RenderOptions{
		DPI:         ThumbnailDPI,
		Size:        size,
		FirstPage:   1,
		LastPage:    1,
		Concurrency: 1,
	})
	if err != nil {
		return models.PageResult{}, fmt.Errorf("failed to render thumbnail for %s: %w", inputPDF, err)
	}
	if len(images) == 0 {
		return models.PageResult{}, fmt.Errorf("%w: %s", ErrEmptyResult, inputPDF)
	}

	w.logger.Info("    Saving page 1 as thumbnail -> %s", outputPath)
	if err := w.encoder.Save(images[0], outputPath, ThumbnailQuality); err != nil {
		return models.PageResult{}, fmt.Errorf("failed to save thumbnail: %w", err)
	}

	w.logger.Info("--- Thumbnail done: %s ---", inputPDF)
	return models.PageResult{PageNumber: 1, OutputPath: outputPath}, nil
}
