package logtail

import (
	"fmt"
	"strings"

	"github.com/go-logfmt/logfmt"
)

// Field is one key/value pair from a logfmt line, in source order.
type Field struct {
	Key   string
	Value string
}

// Record is a decoded log line. Time, Level, Component and Msg are lifted out
// of Fields for display; Fields keeps everything else.
type Record struct {
	Time      string
	Level     string
	Component string
	Msg       string
	Fields    []Field
}

// ParseRecord decodes a single logfmt line. Lines carrying none of ts, level
// or msg are rejected; callers fall back to the raw text.
func ParseRecord(line string) (Record, error) {
	dec := logfmt.NewDecoder(strings.NewReader(line))
	var rec Record
	if !dec.ScanRecord() {
		if err := dec.Err(); err != nil {
			return Record{}, fmt.Errorf("decode record: %w", err)
		}
		return Record{}, fmt.Errorf("decode record: empty line")
	}
	for dec.ScanKeyval() {
		key, value := string(dec.Key()), string(dec.Value())
		switch key {
		case "ts", "time":
			rec.Time = value
		case "level":
			rec.Level = value
		case "component":
			rec.Component = value
		case "msg":
			rec.Msg = value
		default:
			rec.Fields = append(rec.Fields, Field{Key: key, Value: value})
		}
	}
	if err := dec.Err(); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	// Bare words decode as valueless keys; a record needs a key we write.
	if rec.Time == "" && rec.Level == "" && rec.Msg == "" {
		return Record{}, fmt.Errorf("decode record: no ts, level or msg")
	}
	return rec, nil
}

// Format renders a record as "LEVEL component: msg key=value ...".
func (r Record) Format() string {
	var b strings.Builder
	if r.Level != "" {
		b.WriteString(strings.ToUpper(r.Level))
		b.WriteByte(' ')
	}
	if r.Component != "" {
		b.WriteString(r.Component)
		b.WriteString(": ")
	}
	b.WriteString(r.Msg)
	for _, f := range r.Fields {
		fmt.Fprintf(&b, " %s=%s", f.Key, f.Value)
	}
	return strings.TrimSpace(b.String())
}
