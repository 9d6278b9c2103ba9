package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxLineBytes bounds a single input line.
const DefaultMaxLineBytes = 1024 * 1024

// ReadLines reads trimmed, non-empty lines from r. A positive limit stops
// after that many lines.
func ReadLines(r io.Reader, limit, maxLineBytes int) ([]string, error) {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLineBytes)), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}
