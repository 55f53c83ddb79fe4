// Package extract turns files of the supported formats into text.
//
// Extractors never return errors. Plain-text failures surface as a nil content pointer;
// notebook and PDF failures surface as a diagnostic text body starting with "# ", so a
// single broken file shows up inline in the merged document instead of aborting a batch.
package extract

import (
	"go.uber.org/zap"
)

// DashLine delimits units (cells, pages, files) in extracted and merged output.
const DashLine = "-------------------"

// Options tunes extraction. The zero value matches the default behaviour.
type Options struct {
	HideNotebookOutputs bool        // Drop the "Cell Outputs" block of code cells.
	DisablePDF          bool        // Report PDF support as unavailable instead of parsing.
	DetectBinary        bool        // Treat files with NUL bytes near the start as non-text.
	MaxFileSizeKB       int         // Files larger than this are not read as text; 0 disables the limit.
	Logger              *zap.Logger // Optional; defaults to a no-op logger.
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
