// Package batch drives a conversion run: it resolves the output directory,
// enumerates candidate PDFs and converts them one after another.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kpauljoseph/pdf2jpeg/internal/naming"
	"github.com/kpauljoseph/pdf2jpeg/internal/pdf"
	"github.com/kpauljoseph/pdf2jpeg/internal/scanner"
	"github.com/kpauljoseph/pdf2jpeg/pkg/logger"
	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
	"github.com/kpauljoseph/pdf2jpeg/pkg/utils"
)

var (
	ErrOutputDir           = errors.New("failed to create output directory")
	ErrInputNotFound       = errors.New("input file not found")
	ErrNotPDF              = errors.New("input file is not a PDF file")
	ErrInputFolderNotFound = errors.New("input folder not found")
)

type PageWriter interface {
	WritePages(ctx context.Context, inputPDF, outputDir, base string, size models.SizeSpec) ([]models.PageResult, error)
	WriteThumbnail(ctx context.Context, inputPDF, outputDir, base string, size models.SizeSpec, suffix string) (models.PageResult, error)
}

type Driver struct {
	writer  PageWriter
	scanner *scanner.DirectoryScanner
	fs      afero.Fs
	logger  *logger.Logger
}

func New(writer PageWriter, fs afero.Fs, logger *logger.Logger) *Driver {
	return &Driver{
		writer:  writer,
		scanner: scanner.New(fs, logger),
		fs:      fs,
		logger:  logger,
	}
}

// EffectiveOutputDir is the explicit output directory, else the input folder
// in folder mode, else the current directory.
func EffectiveOutputDir(req models.ConversionRequest) string {
	switch {
	case req.OutputDir != "":
		return req.OutputDir
	case !req.SingleFile():
		return req.InputFolder
	default:
		return "."
	}
}

// Run converts every candidate of req. A returned error means the run was
// aborted before or between candidates; per-file failures are only counted
// in the outcome.
func (d *Driver) Run(ctx context.Context, req models.ConversionRequest) (models.BatchOutcome, error) {
	var outcome models.BatchOutcome

	outputDir := EffectiveOutputDir(req)
	d.logger.Debug("Mode: %s, output directory: %s", req.Mode, outputDir)
	if err := utils.EnsureDir(d.fs, outputDir); err != nil {
		return outcome, fmt.Errorf("%w '%s': %v", ErrOutputDir, outputDir, err)
	}

	candidates, err := d.candidates(ctx, req)
	if errors.Is(err, scanner.ErrNoPDFsFound) {
		d.logger.Info("No PDF files found in input folder '%s'", req.InputFolder)
		return outcome, nil
	}
	if err != nil {
		return outcome, err
	}

	outcome.TotalCandidates = len(candidates)
	if !req.SingleFile() {
		d.logger.Info("Found %d PDF files in '%s'", len(candidates), req.InputFolder)
	}

	for _, pdfPath := range candidates {
		if err := ctx.Err(); err != nil {
			d.report(outcome)
			return outcome, fmt.Errorf("conversion interrupted: %w", err)
		}
		outcome.Record(d.convert(ctx, req, outputDir, pdfPath))
	}

	d.report(outcome)
	return outcome, nil
}

func (d *Driver) candidates(ctx context.Context, req models.ConversionRequest) ([]string, error) {
	if req.SingleFile() {
		if !utils.IsRegularFile(d.fs, req.InputFile) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, req.InputFile)
		}
		if !naming.HasPDFExtension(req.InputFile) {
			return nil, fmt.Errorf("%w: %s", ErrNotPDF, req.InputFile)
		}
		return []string{req.InputFile}, nil
	}

	if !utils.IsDir(d.fs, req.InputFolder) {
		return nil, fmt.Errorf("%w: %s", ErrInputFolderNotFound, req.InputFolder)
	}
	return d.scanner.FindPDFs(ctx, req.InputFolder)
}

func (d *Driver) convert(ctx context.Context, req models.ConversionRequest, outputDir, pdfPath string) bool {
	d.logger.Info("")
	d.logger.Info(">>> Processing file: %s", pdfPath)

	// The override names outputs only for a single input file.
	var override string
	if req.SingleFile() {
		override = req.OutputBase
	}
	base := naming.ResolveBase(pdfPath, override)

	if req.Mode == models.ModeThumbnailOnly {
		if _, err := d.writer.WriteThumbnail(ctx, pdfPath, outputDir, base, req.ThumbSize, req.ThumbSuffix); err != nil {
			d.reportFailure(pdfPath, err)
			return false
		}
		return true
	}

	if _, err := d.writer.WritePages(ctx, pdfPath, outputDir, base, req.FullSize); err != nil {
		d.reportFailure(pdfPath, err)
		return false
	}

	if override != "" {
		d.copySource(pdfPath, filepath.Join(outputDir, naming.SourceCopyName(base)))
	}
	return true
}

// copySource failures are logged and never fail the candidate.
func (d *Driver) copySource(src, dst string) {
	d.logger.Info("  Copying input PDF: %s -> %s", src, dst)
	err := utils.CopyFile(d.fs, src, dst)
	if errors.Is(err, utils.ErrSameFile) {
		d.logger.Warn("not copying PDF '%s': %v", src, err)
		return
	}
	if err != nil {
		d.logger.Error("failed to copy PDF '%s': %v", src, err)
		return
	}
	d.logger.Info("  PDF copy complete: %s", dst)
}

func (d *Driver) reportFailure(pdfPath string, err error) {
	d.logger.Error("%s: %v", pdfPath, err)
	if errors.Is(err, pdf.ErrRendererUnavailable) {
		d.logger.Error("check that the PDF rendering library (MuPDF for fitz, PDFium for pdfium) is installed and usable")
	}
}

func (d *Driver) report(outcome models.BatchOutcome) {
	d.logger.Info("")
	d.logger.Info("--- All processing finished ---")
	d.logger.Info("Candidate files: %d", outcome.TotalCandidates)
	d.logger.Info("Succeeded:       %d", outcome.Succeeded)
	d.logger.Info("Failed:          %d", outcome.Failed)
}
