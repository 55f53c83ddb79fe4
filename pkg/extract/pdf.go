package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDF diagnostics and the per-page image placeholder.
const (
	pdfUnavailable  = "# PDF support not available\n# Enable pdf extraction in the configuration"
	pageImageNotice = "\nPossible images on this page (placeholder).\n"
)

// PDF extracts the text of every page, in page order, between "Begin Page N" and
// "End Page N" markers. Images are not extracted; each page carries a placeholder line.
func PDF(path string, opts Options) (text string) {
	logger := opts.logger()

	if opts.DisablePDF {
		return pdfUnavailable
	}

	// The parser reports malformed objects by panicking.
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("PDF parser panicked", zap.String("filePath", path), zap.Any("panic", r))
			text = pdfError(fmt.Errorf("%v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		logger.Warn("Failed to open PDF", zap.String("filePath", path), zap.Error(err))
		return pdfError(err)
	}
	defer f.Close()

	var lines []string
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		lines = append(lines, fmt.Sprintf("%s\nBegin Page %d", DashLine, i))

		if !page.V.IsNull() {
			for _, name := range page.Fonts() {
				if _, ok := fonts[name]; !ok {
					font := page.Font(name)
					fonts[name] = &font
				}
			}

			pageText, err := page.GetPlainText(fonts)
			if err != nil {
				logger.Warn("Failed to extract PDF page",
					zap.String("filePath", path),
					zap.Int("page", i),
					zap.Error(err))
				return pdfError(err)
			}
			if pageText != "" {
				lines = append(lines, pageText)
			}
		}

		lines = append(lines, pageImageNotice)
		lines = append(lines, fmt.Sprintf("End Page %d\n%s", i, DashLine))
	}

	logger.Debug("Extracted PDF", zap.String("filePath", path), zap.Int("pages", reader.NumPage()))
	return strings.Join(lines, "\n")
}

func pdfError(err error) string {
	return fmt.Sprintf("# Error reading PDF file\n# %s\n# The file may be corrupted, encrypted, or in an incompatible format", err)
}
