// Package workspace keeps the set of ingested files a user is working with and keeps it
// in step with the filesystem.
//
// A Workspace is not safe for concurrent use. Ingestion runs in parallel inside each
// call, but the maps are only mutated after it returns, by the calling goroutine.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"textmerger/pkg/ingest"
)

// Workspace holds the aggregate of ingested records and the directories the user added.
type Workspace struct {
	Files map[string]ingest.FileRecord // keyed by cleaned path
	Dirs  map[string][]string          // tracked directory -> member paths, walk order

	opts   ingest.Options
	logger *zap.Logger
}

// AddResult summarizes an Add.
type AddResult struct {
	Loaded  int      // records inserted or overwritten
	Missing []string // inputs that do not exist
}

// RefreshResult summarizes a Refresh.
type RefreshResult struct {
	Refreshed bool // false when nothing survived to reload
	Changes   *Changes
}

// New returns an empty workspace that ingests with opts.
func New(opts ingest.Options) *Workspace {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		Files:  make(map[string]ingest.FileRecord),
		Dirs:   make(map[string][]string),
		opts:   opts,
		logger: logger,
	}
}

// Add ingests paths into the workspace. Directories become tracked: their previous
// members are replaced by a fresh walk. Plain files inside a tracked directory are left
// to that directory.
func (w *Workspace) Add(paths []string) AddResult {
	records, expanded := ingest.LoadFiles(paths, w.opts)
	result := AddResult{Missing: expanded.Missing}

	for _, dir := range expanded.Dirs {
		members := expanded.Members[dir]

		fresh := make(map[string]struct{}, len(members))
		for _, m := range members {
			fresh[m] = struct{}{}
		}
		for _, old := range w.Dirs[dir] {
			if _, ok := fresh[old]; !ok {
				w.deleteRecord(old)
			}
		}

		for _, m := range members {
			w.Files[m] = records[m]
			result.Loaded++
		}
		w.Dirs[dir] = append([]string(nil), members...)

		w.logger.Debug("Tracked directory", zap.String("dir", dir), zap.Int("members", len(members)))
	}

	for _, path := range expanded.Explicit {
		if _, ok := w.Dirs[path]; ok {
			// The tracked directory was replaced by a file.
			w.Remove(path)
		}
		if owner, ok := w.trackedParent(path); ok {
			w.logger.Debug("Skipping file inside tracked directory",
				zap.String("filePath", path),
				zap.String("dir", owner))
			continue
		}
		w.Files[path] = records[path]
		result.Loaded++
	}

	w.logger.Info("Added paths",
		zap.Int("loaded", result.Loaded),
		zap.Int("missing", len(result.Missing)),
		zap.Int("files", len(w.Files)))
	return result
}

// Remove drops a tracked directory with all its members, or a single file. It reports
// whether anything was removed.
func (w *Workspace) Remove(path string) bool {
	path = filepath.Clean(path)

	if members, ok := w.Dirs[path]; ok {
		delete(w.Dirs, path)
		for _, m := range members {
			w.deleteRecord(m)
		}
		w.logger.Debug("Removed directory", zap.String("dir", path), zap.Int("members", len(members)))
		return true
	}

	if _, ok := w.Files[path]; ok {
		w.deleteRecord(path)
		w.logger.Debug("Removed file", zap.String("filePath", path))
		return true
	}

	return false
}

// RemoveAll clears the workspace.
func (w *Workspace) RemoveAll() {
	w.Files = make(map[string]ingest.FileRecord)
	w.Dirs = make(map[string][]string)
}

// Refresh re-synchronizes the workspace with the filesystem: tracked directories that are
// gone or no longer directories are untracked with their members, vanished files are
// dropped, then every surviving directory and loose file is ingested again.
func (w *Workspace) Refresh() RefreshResult {
	before := w.snapshot()

	for dir := range w.Dirs {
		if !isDir(dir) {
			w.Remove(dir)
		}
	}
	for path := range w.Files {
		if !exists(path) {
			w.deleteRecord(path)
		}
	}

	survivors := make([]string, 0, len(w.Dirs))
	for dir := range w.Dirs {
		survivors = append(survivors, dir)
	}
	sort.Strings(survivors)

	var loose []string
	for path := range w.Files {
		if _, ok := w.trackedParent(path); !ok {
			loose = append(loose, path)
		}
	}
	sort.Strings(loose)
	survivors = append(survivors, loose...)

	if len(survivors) == 0 {
		changes := Compare(before, w.snapshot())
		w.logger.Info("Nothing to refresh", zap.Int("removed", len(changes.Removed)))
		return RefreshResult{Refreshed: false, Changes: changes}
	}

	w.Add(survivors)

	changes := Compare(before, w.snapshot())
	w.logger.Info("Refreshed workspace",
		zap.Int("added", len(changes.Added)),
		zap.Int("modified", len(changes.Modified)),
		zap.Int("removed", len(changes.Removed)))
	return RefreshResult{Refreshed: true, Changes: changes}
}

// Paths returns every record path in sorted order.
func (w *Workspace) Paths() []string {
	paths := make([]string, 0, len(w.Files))
	for path := range w.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// deleteRecord removes a record and scrubs it from every membership list.
func (w *Workspace) deleteRecord(path string) {
	delete(w.Files, path)
	for dir, members := range w.Dirs {
		for i, m := range members {
			if m == path {
				w.Dirs[dir] = append(members[:i:i], members[i+1:]...)
				break
			}
		}
	}
}

// trackedParent returns the tracked directory that contains path, if any.
func (w *Workspace) trackedParent(path string) (string, bool) {
	for dir := range w.Dirs {
		if isWithin(path, dir) {
			return dir, true
		}
	}
	return "", false
}

// snapshot maps every record path to its digest.
func (w *Workspace) snapshot() map[string]string {
	snap := make(map[string]string, len(w.Files))
	for path, record := range w.Files {
		snap[path] = record.Digest
	}
	return snap
}

// isWithin reports whether path lies strictly below dir, comparing whole path components.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
