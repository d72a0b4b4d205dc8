// Package buffer tails large log streams without holding them in memory.
package buffer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Tail reads r to the end and returns the last maxLines lines joined by
// newlines, plus the total number of lines seen. Memory use is bounded by
// maxLines regardless of stream size.
func Tail(r io.Reader, maxLines int) (string, int, error) {
	if maxLines <= 0 {
		return "", 0, fmt.Errorf("maxLines must be positive, got %d", maxLines)
	}

	lines := make([]string, maxLines)
	totalLines := 0
	writeIndex := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lines[writeIndex] = scanner.Text()
		totalLines++
		writeIndex = (writeIndex + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return "", 0, fmt.Errorf("failed to read log content: %w", err)
	}

	kept := totalLines
	if kept > maxLines {
		kept = maxLines
	}

	// When the buffer wrapped, the oldest retained line sits at writeIndex.
	start := 0
	if totalLines > maxLines {
		start = writeIndex
	}

	result := make([]string, 0, kept)
	for i := 0; i < kept; i++ {
		result = append(result, lines[(start+i)%maxLines])
	}

	return strings.Join(result, "\n"), totalLines, nil
}
