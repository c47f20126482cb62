package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

const maxLineBytes = 1024 * 1024

// Line is one tailed log line. Record is set when the line decoded as a
// scout logfmt record.
type Line struct {
	Raw    string
	Record *Record
}

// String renders the record when there is one and the raw text otherwise.
func (l Line) String() string {
	if l.Record != nil {
		return l.Record.Format()
	}
	return l.Raw
}

// Read returns at most maxLines from the end of the file at path. A missing
// file reads as empty.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()
	return tail(file, maxLines)
}

// ReadRecords tails path like Read and decodes each line with ParseRecord.
func ReadRecords(path string, maxLines int) ([]Line, error) {
	raw, err := Read(path, maxLines)
	if err != nil || raw == nil {
		return nil, err
	}
	lines := make([]Line, len(raw))
	for i, text := range raw {
		lines[i].Raw = text
		if rec, err := ParseRecord(text); err == nil {
			lines[i].Record = &rec
		}
	}
	return lines, nil
}

// tail keeps the last n lines of r in a fixed ring.
func tail(r io.Reader, n int) ([]string, error) {
	ring := make([]string, n)
	var total int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		ring[total%n] = scanner.Text()
		total++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if total <= n {
		return ring[:total:total], nil
	}
	start := total % n
	return append(ring[start:], ring[:start]...), nil
}
