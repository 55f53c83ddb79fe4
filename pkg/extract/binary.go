package extract

import (
	"bytes"
)

// sniffLen is how much of a file is inspected when looking for binary content.
const sniffLen = 512

// looksBinary reports whether data is likely binary by checking its first bytes
// for NUL bytes or a high ratio of control characters.
func looksBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	if len(data) == 0 {
		return false // Empty files are considered text
	}

	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}

	control := 0
	for _, b := range data {
		if isControl(b) {
			control++
		}
	}

	// More than 30% control characters
	return float64(control)/float64(len(data)) > 0.3
}

// isControl reports whether b is an ASCII control character other than common whitespace.
// Bytes above 0x7f are not counted so multi-byte UTF-8 text is not mistaken for binary.
func isControl(b byte) bool {
	if b == '\n' || b == '\r' || b == '\t' || b == '\f' {
		return false
	}
	return b < 32 || b == 127
}
