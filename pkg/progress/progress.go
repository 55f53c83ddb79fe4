// Package progress draws a single-line progress bar for file ingestion.
package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

type Bar struct {
	total      int
	current    int
	width      int
	writer     io.Writer
	mu         sync.Mutex
	enabled    bool
	lastFile   string
	lastUpdate time.Time
}

// New returns a bar drawn on stderr, enabled only when stderr is a terminal.
func New(total int) *Bar {
	return NewWriter(total, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewWriter returns a bar drawn on w.
func NewWriter(total int, w io.Writer, enabled bool) *Bar {
	return &Bar{
		total:   total,
		width:   40,
		writer:  w,
		enabled: enabled,
	}
}

// SetTotal sets the number of files expected.
func (b *Bar) SetTotal(total int) {
	b.mu.Lock()
	b.total = total
	b.mu.Unlock()
}

// Increment records one completed file. Renders are throttled to one per 100ms.
func (b *Bar) Increment(path string) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total == 0 {
		return
	}
	b.current++
	b.lastFile = filepath.Base(path)

	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	current := min(b.current, b.total)
	percent := current * 100 / b.total
	filled := b.width * current / b.total

	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)

	var file string
	if b.lastFile != "" {
		file = " | " + b.lastFile
	}

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d)%s", bar, percent, current, b.total, file)
}

// Finish draws the bar at 100% and ends the line.
func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total == 0 {
		return
	}
	b.current = b.total
	b.lastFile = ""
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
