// Package naming decides every output path pdf2jpeg produces for an input PDF.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	PDFExtension  = ".pdf"
	JPEGExtension = ".jpg"
)

// ResolveBase returns the filename stem used for all outputs of inputPath.
// A non-empty override wins and only loses its extension; otherwise the
// stem comes from the input's own file name.
func ResolveBase(inputPath, override string) string {
	if override != "" {
		return stripExt(override)
	}
	return stripExt(filepath.Base(inputPath))
}

func PageFileName(base string, page int) string {
	return fmt.Sprintf("%s_page%d%s", base, page, JPEGExtension)
}

func ThumbnailFileName(base, suffix string) string {
	return base + suffix + JPEGExtension
}

func SourceCopyName(base string) string {
	return base + PDFExtension
}

func HasPDFExtension(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), PDFExtension)
}

// stripExt drops the last ".suffix" of the final path element. Leading dots
// of that element never start an extension, so ".hidden" is kept whole.
func stripExt(p string) string {
	sep := strings.LastIndexAny(p, `/`+string(filepath.Separator))
	dot := strings.LastIndex(p, ".")
	if dot <= sep {
		return p
	}
	name := p[sep+1 : dot]
	if strings.Trim(name, ".") == "" {
		return p
	}
	return p[:dot]
}
