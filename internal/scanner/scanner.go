package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/kpauljoseph/pdf2jpeg/internal/naming"
	"github.com/kpauljoseph/pdf2jpeg/pkg/logger"
	"github.com/kpauljoseph/pdf2jpeg/pkg/utils"
)

var ErrNoPDFsFound = errors.New("no PDF files found")

type DirectoryScanner struct {
	fs     afero.Fs
	logger *logger.Logger
}

func New(fs afero.Fs, logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		fs:     fs,
		logger: logger,
	}
}

// FindPDFs lists the PDF files directly inside dir, sorted by name.
// Subdirectories are not entered and hidden files are skipped. The extension
// match is case-insensitive and symlinks to regular files are included.
func (s *DirectoryScanner) FindPDFs(ctx context.Context, dir string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var pdfs []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") || !naming.HasPDFExtension(name) {
			continue
		}

		path := filepath.Join(dir, name)
		if !utils.IsRegularFile(s.fs, path) {
			s.logger.Trace("Skipping non-file entry: %s", path)
			continue
		}

		s.logger.Debug("Found PDF: %s", path)
		pdfs = append(pdfs, path)
	}

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPDFsFound, dir)
	}

	return pdfs, nil
}
