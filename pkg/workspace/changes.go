package workspace

import (
	"fmt"
	"sort"
	"strings"
)

// Changes lists the paths that differ between two workspace states, each list sorted.
type Changes struct {
	Added    []string
	Modified []string
	Removed  []string
}

// HasChanges reports whether any path was added, modified or removed.
func (c *Changes) HasChanges() bool {
	return len(c.Added) > 0 || len(c.Modified) > 0 || len(c.Removed) > 0
}

// Compare diffs two path -> digest snapshots.
func Compare(before, after map[string]string) *Changes {
	changes := &Changes{
		Added:    make([]string, 0),
		Modified: make([]string, 0),
		Removed:  make([]string, 0),
	}

	for path, digest := range after {
		old, ok := before[path]
		if !ok {
			changes.Added = append(changes.Added, path)
		} else if old != digest {
			changes.Modified = append(changes.Modified, path)
		}
	}

	for path := range before {
		if _, ok := after[path]; !ok {
			changes.Removed = append(changes.Removed, path)
		}
	}

	// Sort for deterministic output
	sort.Strings(changes.Added)
	sort.Strings(changes.Modified)
	sort.Strings(changes.Removed)

	return changes
}

// FormatReport renders changes for humans.
func FormatReport(c *Changes) string {
	if !c.HasChanges() {
		return "No changes detected."
	}

	var b strings.Builder
	b.WriteString("Changes detected:\n")

	section := func(title, mark string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s (%d files):\n", title, len(paths))
		for _, p := range paths {
			fmt.Fprintf(&b, "  %s %s\n", mark, p)
		}
	}
	section("ADDED", "+", c.Added)
	section("MODIFIED", "~", c.Modified)
	section("REMOVED", "-", c.Removed)

	return b.String()
}
