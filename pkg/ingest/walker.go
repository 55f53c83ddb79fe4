package ingest

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"textmerger/pkg/ignore"
)

// ExpandResult is the outcome of expanding user-supplied paths.
type ExpandResult struct {
	Files    []string            // concrete files to ingest, first-seen order, no duplicates
	Explicit []string            // supplied paths that are files, in input order
	Dirs     []string            // supplied paths that are directories, in input order
	Members  map[string][]string // files found under each directory, in walk order
	Missing  []string            // supplied paths that do not exist
}

// Expand turns files and directories into a flat list of files. Explicit files are kept
// as-is; directories are walked and filtered through the matcher, which sees paths
// relative to the directory being walked. A nil matcher applies only the built-in rules.
func Expand(paths []string, matcher *ignore.Matcher, logger *zap.Logger) ExpandResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	if matcher == nil {
		matcher = ignore.New(logger)
	}

	result := ExpandResult{Members: make(map[string][]string)}
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		result.Files = append(result.Files, path)
	}

	for _, path := range CleanPaths(paths) {
		info, err := os.Stat(path)
		if err != nil {
			logger.Debug("Path does not exist or cannot be accessed", zap.String("path", path), zap.Error(err))
			result.Missing = append(result.Missing, path)
			continue
		}

		if !info.IsDir() {
			result.Explicit = append(result.Explicit, path)
			add(path)
			continue
		}

		members := walkDir(path, matcher, logger)
		result.Dirs = append(result.Dirs, path)
		result.Members[path] = members
		for _, file := range members {
			add(file)
		}
	}

	logger.Debug("Expanded paths",
		zap.Int("files", len(result.Files)),
		zap.Int("dirs", len(result.Dirs)),
		zap.Int("missing", len(result.Missing)))
	return result
}

// walkDir collects the files under root that survive the matcher, in lexical order.
// A symlinked root is followed; symlinked directories below it are neither listed nor
// followed. Member paths stay under the name root was given by.
func walkDir(root string, matcher *ignore.Matcher, logger *zap.Logger) []string {
	var files []string

	start := root
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		// WalkDir does not follow a symlinked root unless it ends in a separator.
		start = root + string(filepath.Separator)
	}

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil // Skip paths that cause errors
		}
		if path == start {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if matcher.SkipDir(rel) {
				logger.Debug("Skipping ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				logger.Debug("Skipping symlinked directory", zap.String("directory", path))
				return nil
			}
		}

		if matcher.SkipFile(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.String("root", root), zap.Error(err))
	}

	return files
}

// CleanPaths normalizes paths and drops duplicates, keeping the first occurrence.
func CleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
