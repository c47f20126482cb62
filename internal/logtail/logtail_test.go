package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero lines", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil for missing file", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParseRecord(t *testing.T) {
	line := `ts=2026-10-19T10:00:00Z level=info component=imagecache msg="prefetch complete" requested=3 fetched=2`
	rec, err := ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if rec.Time != "2026-10-19T10:00:00Z" || rec.Level != "info" || rec.Component != "imagecache" {
		t.Fatalf("ParseRecord() = %+v", rec)
	}
	if rec.Msg != "prefetch complete" {
		t.Fatalf("Msg = %q, want %q", rec.Msg, "prefetch complete")
	}
	want := []Field{{Key: "requested", Value: "3"}, {Key: "fetched", Value: "2"}}
	if !reflect.DeepEqual(rec.Fields, want) {
		t.Fatalf("Fields = %v, want %v", rec.Fields, want)
	}
	if got := rec.Format(); got != "INFO imagecache: prefetch complete requested=3 fetched=2" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestParseRecord_Rejects(t *testing.T) {
	for _, line := range []string{"", "   ", `msg="unterminated`, "=oops", "plain text line", "path=a.png fetched=2"} {
		if _, err := ParseRecord(line); err == nil {
			t.Errorf("ParseRecord(%q) error = nil, want error", line)
		}
	}
}

func TestReadRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "scout.log")
	content := "panic: something broke\n" +
		"ts=2026-10-19T10:00:00Z level=warn component=imagecache msg=\"persist asset\" path=a.png\n" +
		"plain text line\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	lines, err := ReadRecords(logPath, 2)
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("ReadRecords() returned %d lines, want 2", len(lines))
	}
	if lines[0].Record == nil || lines[0].Record.Component != "imagecache" {
		t.Fatalf("lines[0].Record = %+v, want imagecache record", lines[0].Record)
	}
	if got := lines[0].String(); got != "WARN imagecache: persist asset path=a.png" {
		t.Fatalf("lines[0].String() = %q", got)
	}
	if lines[1].Record != nil {
		t.Fatalf("lines[1].Record = %+v, want nil for plain text", lines[1].Record)
	}
	if got := lines[1].String(); got != "plain text line" {
		t.Fatalf("lines[1].String() = %q", got)
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	lines, err := ReadRecords(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("ReadRecords() = %v, %v; want nil, nil", lines, err)
	}
}
