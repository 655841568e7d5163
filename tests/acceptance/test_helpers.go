package acceptance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/kpauljoseph/pdf2jpeg/internal/testutil"
)

// WidePage is 2x1 inches: 600x300 px at 300 DPI, 400x200 px at 200 DPI.
var WidePage = testutil.PageSize{Width: 144, Height: 72}

type Workspace struct {
	Root string
}

func NewWorkspace() (*Workspace, error) {
	root, err := os.MkdirTemp("", "pdf2jpeg-acceptance-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{Root: root}, nil
}

func (w *Workspace) Path(parts ...string) string {
	return filepath.Join(append([]string{w.Root}, parts...)...)
}

// WritePDF writes a generated document with the given number of pages and
// returns its path.
func (w *Workspace) WritePDF(rel string, pages int) (string, error) {
	path := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create fixture directory: %w", err)
	}
	if err := os.WriteFile(path, testutil.UniformPDF(pages, WidePage), 0644); err != nil {
		return "", fmt.Errorf("failed to write fixture: %w", err)
	}
	return path, nil
}

func (w *Workspace) WriteFile(rel string, data []byte) (string, error) {
	path := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create fixture directory: %w", err)
	}
	return path, os.WriteFile(path, data, 0644)
}

func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Root)
}

// JPEGs lists the .jpg files directly inside dir, sorted by name.
func JPEGs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jpg"))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	sort.Strings(names)
	return names, nil
}

func ImageSize(path string) (int, int, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}
