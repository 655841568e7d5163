// Package testutil holds fixtures and fake collaborators shared by the test
// suites.
package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

type PageSize struct {
	Width  float64
	Height float64
}

// BlankPDF builds a minimal, well-formed PDF with one page per size. Each
// page carries a filled rectangle so renderers have something to draw.
func BlankPDF(sizes ...PageSize) []byte {
	var buf bytes.Buffer
	var offsets []int

	writeObject := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(sizes))
	for i := range sizes {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	writeObject("<< /Type /Catalog /Pages 2 0 R >>")
	writeObject(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(sizes)))

	for i, size := range sizes {
		writeObject(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Contents %d 0 R /Resources << >> >>",
			size.Width, size.Height, 4+2*i,
		))
		content := fmt.Sprintf("0 0 1 rg 0 0 %.2f %.2f re f", size.Width/2, size.Height/2)
		writeObject(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)

	return buf.Bytes()
}

// UniformPDF is BlankPDF with pages of the same size.
func UniformPDF(pages int, size PageSize) []byte {
	sizes := make([]PageSize, pages)
	for i := range sizes {
		sizes[i] = size
	}
	return BlankPDF(sizes...)
}

// DamagedXrefPDF is BlankPDF with its cross-reference table and startxref
// pointer replaced by a bare trailer. Readers that repair documents on open
// still find every page; strict parsers reject it.
func DamagedXrefPDF(sizes ...PageSize) []byte {
	data := BlankPDF(sizes...)
	cut := bytes.Index(data, []byte("\nxref\n"))
	damaged := append([]byte{}, data[:cut+1]...)
	return append(damaged, "trailer\n<< /Root 1 0 R >>\n%%EOF\n"...)
}
