package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ExportError reports a failure to persist a rendered document.
type ExportError struct {
	Path    string
	Message string
	Err     error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Message, e.Path)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func newExportError(path, message string, err error) *ExportError {
	return &ExportError{Path: path, Message: message, Err: err}
}

// Export writes doc to path atomically: a temp file next to the destination is written,
// synced and renamed into place, so an existing file is either fully replaced or left
// untouched. Workspace state is never modified.
func Export(path string, doc string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newExportError(path, "failed to create export directory for", err)
	}

	if info, err := os.Lstat(path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return newExportError(path, "refusing to export over symlink", nil)
		}
		if info.IsDir() {
			return newExportError(path, "export destination is a directory:", nil)
		}
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return newExportError(path, "failed to generate temp file name for", err)
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return newExportError(path, "failed to create export file for", err)
	}

	// Clean up temp file on failure (original file is preserved)
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.WriteString(doc); err != nil {
		return newExportError(path, "failed to write", err)
	}
	if err := file.Sync(); err != nil {
		return newExportError(path, "failed to sync", err)
	}
	if err := file.Close(); err != nil {
		file = nil
		return newExportError(path, "failed to close", err)
	}
	file = nil

	if err := os.Rename(tempPath, path); err != nil {
		return newExportError(path, "failed to finalize export to", err)
	}

	success = true
	return nil
}

// IsExportError reports whether err is or wraps an *ExportError.
func IsExportError(err error) bool {
	var exportErr *ExportError
	return errors.As(err, &exportErr)
}
