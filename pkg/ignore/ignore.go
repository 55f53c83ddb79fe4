// Package ignore decides which entries a directory walk skips.
//
// A Matcher combines the built-in rules (hidden entries, Python caches, Finder metadata)
// with gitignore-style patterns matched against paths relative to the walked root.
package ignore

import (
	"os"
	pathpkg "path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern is a compiled ignore pattern together with its origin.
type Pattern struct {
	Regexp  *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Pattern started with '!'.
	DirOnly bool           // Pattern ended with '/'.
	Line    string         // Original pattern line.
	LineNo  int            // Line number in the source (1-based).
}

// Matcher holds the exclusion rules for a walk.
type Matcher struct {
	Patterns []*Pattern
	logger   *zap.Logger
}

// New returns a Matcher with the built-in rules and the given user patterns.
func New(logger *zap.Logger, lines ...string) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Matcher{logger: logger}
	m.CompileLines(lines...)
	return m
}

// CompileLines compiles pattern lines and appends them to the matcher. Blank lines,
// comments and lines that fail to compile are skipped.
func (m *Matcher) CompileLines(lines ...string) {
	for i, line := range lines {
		p := parsePatternLine(line)
		if p == nil {
			continue
		}
		p.LineNo = i + 1
		m.Patterns = append(m.Patterns, p)
	}
}

// CompileFile reads an ignore file and appends its patterns.
func (m *Matcher) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		m.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return err
	}

	lines := strings.Split(string(content), "\n")
	m.CompileLines(lines...)
	m.logger.Debug("Compiled ignore patterns", zap.String("filePath", path), zap.Int("lineCount", len(lines)))
	return nil
}

// SkipDir reports whether the directory at rel (relative to the walked root) is pruned.
func (m *Matcher) SkipDir(rel string) bool {
	name := filepath.Base(rel)
	if strings.HasPrefix(name, ".") || name == "__pycache__" {
		return true
	}
	return m.matches(rel, true)
}

// SkipFile reports whether the file at rel (relative to the walked root) is left out.
func (m *Matcher) SkipFile(rel string) bool {
	name := filepath.Base(rel)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".pyc") || name == ".DS_Store" {
		return true
	}
	return m.matches(rel, false)
}

// matches applies the user patterns in order; the last matching pattern wins.
func (m *Matcher) matches(rel string, isDir bool) bool {
	path := filepath.ToSlash(rel)

	matched := false
	for _, p := range m.Patterns {
		target := path
		if p.DirOnly && !isDir {
			// A directory pattern reaches a file only through one of its parents.
			target = pathpkg.Dir(path)
			if target == "." {
				continue
			}
		}
		if !p.Regexp.MatchString(target) {
			continue
		}
		matched = !p.Negate
	}

	if matched {
		m.logger.Debug("Path excluded", zap.String("path", path), zap.Bool("dir", isDir))
	}
	return matched
}

// parsePatternLine turns one gitignore line into a Pattern, or nil when the line holds none.
func parsePatternLine(line string) *Pattern {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// Escaped leading '#' and '!'.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	dirOnly := strings.HasSuffix(trimmed, "/")
	body := strings.TrimSuffix(trimmed, "/")
	if body == "" {
		return nil
	}

	expr := escapeSpecialChars(body)
	expr = wildcardToRegex(expr)
	expr = anchorPattern(expr, body)

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}

	return &Pattern{Regexp: re, Negate: negate, DirOnly: dirOnly, Line: line}
}

// escapeSpecialChars escapes regex special characters except for `*`, `?`, and `/`.
func escapeSpecialChars(pattern string) string {
	specialChars := `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// wildcardToRegex converts `**`, `*` and `?` to regex equivalents in a single pass so
// the expansion of one wildcard is never rewritten by another.
func wildcardToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		switch {
		case strings.HasPrefix(pattern[i:], "/**/"):
			b.WriteString("/(.*/)?")
			i += 3
		case strings.HasPrefix(pattern[i:], "**/") && i == 0:
			b.WriteString("(.*/)?")
			i += 2
		case pattern[i:] == "/**":
			b.WriteString("/.*")
			i += 2
		case strings.HasPrefix(pattern[i:], "**"):
			b.WriteString(".*")
			i++
		case pattern[i] == '*':
			b.WriteString("[^/]*")
		case pattern[i] == '?':
			b.WriteString("[^/]")
		default:
			b.WriteByte(pattern[i])
		}
	}
	return b.String()
}

// anchorPattern anchors the expression to the full relative path. Patterns containing a
// slash before their last character are rooted; others match at any depth. Every match
// also covers everything below the matched entry.
func anchorPattern(expr, original string) string {
	expr = strings.TrimPrefix(expr, "/")
	expr += "(/.*)?$"

	if strings.Contains(strings.TrimPrefix(original, "/"), "/") || strings.HasPrefix(original, "/") {
		return "^" + expr
	}
	return "^(.*/)?" + expr
}
