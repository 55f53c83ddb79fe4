package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestText_ValidUTF8(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", []byte("héllo wörld\n"))

	content, mimeType := Text(path, Options{})
	require.NotNil(t, content)
	require.Equal(t, "héllo wörld\n", *content)
	require.Equal(t, "text/plain", mimeType)
}

func TestText_UnknownExtensionFallsBackToPlainText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Makefile", []byte("all:\n\tgo build ./...\n"))

	content, mimeType := Text(path, Options{})
	require.NotNil(t, content)
	require.Equal(t, PlainTextType, mimeType)
}

func TestText_InvalidUTF8(t *testing.T) {
	path := writeFile(t, t.TempDir(), "latin1.dat", []byte{0x63, 0x61, 0x66, 0xe9, 0xff, 0xfe})

	content, mimeType := Text(path, Options{})
	require.Nil(t, content)
	require.NotEmpty(t, mimeType)
}

func TestText_MissingFile(t *testing.T) {
	content, mimeType := Text(filepath.Join(t.TempDir(), "gone.bin"), Options{})
	require.Nil(t, content)
	require.Equal(t, UnknownType, mimeType)
}

func TestText_DetectBinary(t *testing.T) {
	data := []byte("abc\x00def")
	path := writeFile(t, t.TempDir(), "blob", data)

	content, _ := Text(path, Options{})
	require.NotNil(t, content, "NUL bytes are valid UTF-8 without binary detection")

	content, _ = Text(path, Options{DetectBinary: true})
	require.Nil(t, content)
}

func TestText_MaxFileSize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.txt", bytes.Repeat([]byte("a"), 2048))

	content, mimeType := Text(path, Options{MaxFileSizeKB: 1})
	require.Nil(t, content)
	require.Equal(t, "text/plain", mimeType)

	content, _ = Text(path, Options{MaxFileSizeKB: 4})
	require.NotNil(t, content)
}

func TestLooksBinary(t *testing.T) {
	require.False(t, looksBinary(nil))
	require.False(t, looksBinary([]byte("plain text\nwith lines\r\n\tand tabs")))
	require.False(t, looksBinary([]byte("ünïcödé ✓ ✓ ✓ ✓ ✓")))
	require.True(t, looksBinary([]byte{'a', 0, 'b'}))
	require.True(t, looksBinary([]byte{1, 2, 3, 4, 'a'}))
}

func TestGuessType(t *testing.T) {
	require.Equal(t, "application/pdf", GuessType("report.pdf"))
	require.Equal(t, "text/html", GuessType("index.HTML"))
	require.Equal(t, "", GuessType("README"))
}

const twoCodeCells = `{
 "cells": [
  {"cell_type": "code", "source": ["import os\n", "print(1)"], "outputs": [
    {"output_type": "stream", "text": ["1\n"]},
    {"output_type": "execute_result", "data": {"text/plain": ["42"]}},
    {"output_type": "error", "ename": "ValueError", "evalue": "bad"}
  ]},
  {"cell_type": "code", "source": "x = 2", "outputs": []}
 ],
 "nbformat": 4
}`

func TestNotebook_TwoCodeCells(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nb.ipynb", []byte(twoCodeCells))

	out := Notebook(path, Options{})

	require.Equal(t, 2, strings.Count(out, "Begin Cell"))
	require.Equal(t, 2, strings.Count(out, "End Cell"))
	require.Less(t, strings.Index(out, "Begin Cell 1 - CODE"), strings.Index(out, "Begin Cell 2 - CODE"))
	require.Less(t, strings.Index(out, "End Cell 1 - CODE"), strings.Index(out, "Begin Cell 2 - CODE"))

	want := strings.Join([]string{
		DashLine + "\nBegin Cell 1 - CODE",
		"import os\nprint(1)",
		"\n" + DashLine + "\nCell Outputs:",
		"[Stream Output]\n1\n",
		"[Result]\n42",
		"[Error] ValueError: bad",
		"End Cell 1 - CODE\n" + DashLine,
		DashLine + "\nBegin Cell 2 - CODE",
		"x = 2",
		"End Cell 2 - CODE\n" + DashLine,
	}, "\n")
	require.Equal(t, want, out)
}

func TestNotebook_HideOutputs(t *testing.T) {
	out := RenderNotebook([]byte(twoCodeCells), Options{HideNotebookOutputs: true})
	require.NotContains(t, out, "Cell Outputs:")
	require.Contains(t, out, "import os\nprint(1)")
}

func TestNotebook_MarkdownAndUnknownCells(t *testing.T) {
	doc := `{"cells": [
		{"cell_type": "markdown", "source": "# Title"},
		"not a cell",
		{"source": "orphan"},
		{"cell_type": "raw", "source": ["a", "b"]}
	]}`

	out := RenderNotebook([]byte(doc), Options{})
	require.Contains(t, out, "Begin Cell 1 - MARKDOWN")
	require.Contains(t, out, "Begin Cell 2 - UNKNOWN")
	require.Contains(t, out, "Begin Cell 3 - RAW\nab\nEnd Cell 3 - RAW")
	require.NotContains(t, out, "Cell 4")
}

func TestNotebook_Diagnostics(t *testing.T) {
	require.Equal(t, notebookInvalidShape, RenderNotebook([]byte(`{"not":"a notebook"}`), Options{}))
	require.Equal(t, notebookInvalidShape, RenderNotebook([]byte(`[1, 2, 3]`), Options{}))
	require.Equal(t, notebookInvalidShape, RenderNotebook([]byte(`{"cells": 3}`), Options{}))
	require.Equal(t, notebookEmpty, RenderNotebook([]byte(`{"cells": []}`), Options{}))

	out := RenderNotebook([]byte(`{"cells": [`), Options{})
	require.True(t, strings.HasPrefix(out, "# Error: Invalid JSON format\n# "))

	out = Notebook(filepath.Join(t.TempDir(), "missing.ipynb"), Options{})
	require.True(t, strings.HasPrefix(out, "# Error reading Jupyter Notebook"))
}

// minimalPDF builds a valid single-font PDF with one text line per page.
func minimalPDF(pages ...string) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	n := len(pages)
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, text := range pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestPDF_Pages(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.pdf", minimalPDF("Hello PDF", "Second page"))

	out := PDF(path, Options{})

	require.False(t, strings.HasPrefix(out, "#"), out)
	require.Contains(t, out, DashLine+"\nBegin Page 1")
	require.Contains(t, out, "Hello PDF")
	require.Contains(t, out, "End Page 2\n"+DashLine)
	require.Equal(t, 2, strings.Count(out, "Possible images on this page (placeholder)."))
	require.Less(t, strings.Index(out, "Hello PDF"), strings.Index(out, "Second page"))
}

func TestPDF_Truncated(t *testing.T) {
	full := minimalPDF("Hello PDF")
	path := writeFile(t, t.TempDir(), "broken.pdf", full[:len(full)/2])

	out := PDF(path, Options{})
	require.NotEmpty(t, out)
	require.True(t, strings.HasPrefix(out, "# Error reading PDF file\n# "), out)
}

func TestPDF_NotAPDF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fake.pdf", []byte("just text"))

	out := PDF(path, Options{})
	require.True(t, strings.HasPrefix(out, "# Error reading PDF file"))
}

func TestPDF_Disabled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.pdf", minimalPDF("Hello PDF"))

	require.Equal(t, pdfUnavailable, PDF(path, Options{DisablePDF: true}))
}
