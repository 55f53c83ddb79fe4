// Package ingest walks user-selected paths and turns every file into a FileRecord on a
// pool of workers.
//
// LoadFiles is the single entry point consumers need: it is synchronous, stateless and
// never fails as a whole. Missing paths are reported, unreadable files produce records
// without content.
package ingest

import (
	"go.uber.org/zap"

	"textmerger/pkg/extract"
	"textmerger/pkg/ignore"
)

// Options configures a load.
type Options struct {
	Workers    int               // Pool size; <= 0 uses runtime.NumCPU().
	Extract    extract.Options   // Passed to every extractor.
	Matcher    *ignore.Matcher   // Exclusion rules for walked directories; nil means built-in rules only.
	Logger     *zap.Logger       // Optional; defaults to a no-op logger.
	OnStart    func(total int)   // Called once with the number of files about to be ingested.
	OnProgress func(path string) // Called once per completed file, from the collecting goroutine.
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// LoadFiles expands paths and ingests every resulting file. The returned map is keyed by
// cleaned path; the ExpandResult tells which inputs were directories or missing.
func LoadFiles(paths []string, opts Options) (map[string]FileRecord, ExpandResult) {
	logger := opts.logger()

	expanded := Expand(paths, opts.Matcher, logger)
	if opts.OnStart != nil {
		opts.OnStart(len(expanded.Files))
	}
	records := Ingest(expanded.Files, opts)

	logger.Info("Loaded files",
		zap.Int("requested", len(paths)),
		zap.Int("loaded", len(records)),
		zap.Int("missing", len(expanded.Missing)))
	return records, expanded
}
