package extract

import (
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Fallback types when no better guess is available.
const (
	PlainTextType = "text/plain"
	UnknownType   = "application/octet-stream"
)

// GuessType guesses a MIME type from the file name alone. It returns "" when the
// extension is unknown. Parameters such as charset are stripped.
func GuessType(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return stripParams(mime.TypeByExtension(ext))
}

// sniffType guesses a MIME type from content, for files whose name gives nothing away.
func sniffType(data []byte) string {
	if data == nil {
		return ""
	}
	return stripParams(mimetype.Detect(data).String())
}

// nonTextType picks the metadata type for a file whose text could not be extracted.
func nonTextType(path string, data []byte) string {
	if t := GuessType(path); t != "" {
		return t
	}
	if data == nil {
		if m, err := mimetype.DetectFile(path); err == nil {
			return stripParams(m.String())
		}
		return UnknownType
	}
	if t := sniffType(data); t != "" {
		return t
	}
	return UnknownType
}

func stripParams(t string) string {
	if t == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}
	return mediaType
}
