package extract

import (
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Text reads path as strict UTF-8 and returns its content together with a MIME type.
// Content is nil when the file cannot be read, is not valid UTF-8, exceeds the size
// limit, or (with DetectBinary) looks binary. The type is always set.
func Text(path string, opts Options) (*string, string) {
	logger := opts.logger()

	if opts.MaxFileSizeKB > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > int64(opts.MaxFileSizeKB)*1024 {
			logger.Debug("File exceeds size limit",
				zap.String("filePath", path),
				zap.Int64("sizeBytes", info.Size()),
				zap.Int("maxSizeKB", opts.MaxFileSizeKB))
			return nil, nonTextType(path, nil)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("filePath", path), zap.Error(err))
		return nil, nonTextType(path, nil)
	}

	if opts.DetectBinary && looksBinary(data) {
		logger.Debug("File is binary", zap.String("filePath", path))
		return nil, nonTextType(path, data)
	}

	if !utf8.Valid(data) {
		logger.Debug("File is not valid UTF-8", zap.String("filePath", path))
		return nil, nonTextType(path, data)
	}

	mimeType := GuessType(path)
	if mimeType == "" {
		mimeType = PlainTextType
	}

	content := string(data)
	return &content, mimeType
}
