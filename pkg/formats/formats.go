// Package formats classifies files by extension and picks the extraction strategy for them.
package formats

import (
	"path/filepath"
	"strings"
)

// Strategy selects which extractor handles a file.
type Strategy int

const (
	Text     Strategy = iota // generic UTF-8 text
	Notebook                 // Jupyter notebook (.ipynb)
	PDF                      // PDF document
)

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	switch s {
	case Notebook:
		return "notebook"
	case PDF:
		return "pdf"
	default:
		return "text"
	}
}

// Category names, in display order.
const (
	Programming    = "Programming"
	WebScripting   = "Web & Scripting"
	MarkupConfig   = "Markup & Config"
	ProjectFiles   = "Project Files"
	SpecialFormats = "Special Formats"
	// Other is reported for extensions missing from the table. They are still ingested.
	Other = "Other"
)

// Fixed MIME-like tags for the special strategies and folder placeholders.
const (
	NotebookType = "application/x-ipynb+json"
	PDFType      = "application/pdf"
	FolderType   = "folder"
)

var categoryOrder = []string{Programming, WebScripting, MarkupConfig, ProjectFiles, SpecialFormats}

var supported = map[string][]string{
	Programming: {".py", ".java", ".cs", ".cpp", ".c", ".go", ".rs", ".rb",
		".php", ".swift", ".kt", ".scala", ".groovy", ".lua", ".pl", ".r"},
	WebScripting: {".html", ".htm", ".css", ".scss", ".sass", ".less",
		".js", ".jsx", ".ts", ".tsx", ".vue"},
	MarkupConfig: {".xml", ".yaml", ".yml", ".json", ".toml", ".ini",
		".md", ".rst", ".tex", ".csv", ".sql", ".gitignore",
		".dockerignore", ".env", ".conf"},
	ProjectFiles: {".gradle", ".maven", ".pom", ".project",
		".eslintrc", ".prettierrc", ".babelrc"},
	SpecialFormats: {".ipynb", ".pdf", ".rtf", ".log", ".txt"},
}

// byExtension is the reverse index of supported.
var byExtension = func() map[string]string {
	m := make(map[string]string)
	for category, exts := range supported {
		for _, ext := range exts {
			m[ext] = category
		}
	}
	return m
}()

// SupportedFormats returns the category table. The result is a copy; callers may modify it freely.
func SupportedFormats() map[string][]string {
	out := make(map[string][]string, len(supported))
	for category, exts := range supported {
		out[category] = append([]string(nil), exts...)
	}
	return out
}

// Categories returns the category names in display order.
func Categories() []string {
	return append([]string(nil), categoryOrder...)
}

// Ext returns the lower-cased extension of path, including the dot.
// Dotfiles such as ".gitignore" are their own extension, matching the table entries.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Classify maps a path to its display category and extraction strategy.
func Classify(path string) (string, Strategy) {
	ext := Ext(path)

	category, ok := byExtension[ext]
	if !ok {
		category = Other
	}

	switch ext {
	case ".ipynb":
		return category, Notebook
	case ".pdf":
		return category, PDF
	default:
		return category, Text
	}
}
