package ingest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"textmerger/pkg/extract"
	"textmerger/pkg/formats"
)

const hashBufferSize = 32 * 1024

// Metadata is always populated, even when no text could be extracted.
type Metadata struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// FileRecord is the ingested form of one path.
type FileRecord struct {
	Path     string   `json:"path"`
	Content  *string  `json:"content"`
	Metadata Metadata `json:"metadata"`
	Digest   string   `json:"digest,omitempty"` // hex xxhash64 of the raw bytes
}

// IsText reports whether the record carries extracted text.
func (r FileRecord) IsText() bool {
	return r.Content != nil
}

// ProcessFile ingests a single path. Directories become folder placeholders; files are
// classified by extension and handed to the matching extractor. It never fails: problems
// end up as a nil content or a diagnostic body.
func ProcessFile(path string, opts Options) FileRecord {
	logger := opts.logger()
	path = filepath.Clean(path)

	info, statErr := os.Stat(path)
	if statErr == nil && info.IsDir() {
		return FileRecord{
			Path:     path,
			Metadata: Metadata{Name: filepath.Base(path), Size: 0, Type: formats.FolderType},
		}
	}

	eopts := opts.Extract
	eopts.Logger = logger

	record := FileRecord{Path: path}
	_, strategy := formats.Classify(path)

	switch strategy {
	case formats.Notebook:
		text := extract.Notebook(path, eopts)
		record.Content = &text
		record.Metadata.Type = formats.NotebookType
	case formats.PDF:
		text := extract.PDF(path, eopts)
		record.Content = &text
		record.Metadata.Type = formats.PDFType
	default:
		record.Content, record.Metadata.Type = extract.Text(path, eopts)
	}

	record.Metadata.Name = filepath.Base(path)
	if statErr != nil {
		logger.Warn("Failed to stat file", zap.String("filePath", path), zap.Error(statErr))
	} else {
		record.Metadata.Size = info.Size()

		digest, err := hashFile(path)
		if err != nil {
			logger.Warn("Failed to hash file", zap.String("filePath", path), zap.Error(err))
		}
		record.Digest = digest
	}

	logger.Debug("Processed file",
		zap.String("filePath", path),
		zap.String("strategy", strategy.String()),
		zap.Bool("text", record.IsText()))
	return record
}

// hashFile streams the file through xxhash.
func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	h := xxhash.New()
	if _, err := io.CopyBuffer(h, file, make([]byte, hashBufferSize)); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
