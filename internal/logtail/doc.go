// Package logtail reads the tail of scout's log file and decodes its lines.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded by the request rather than the file size. A missing file yields no
// lines and no error; the log may simply not exist yet.
//
// ReadRecords does the same and runs each line through ParseRecord, which
// decodes logfmt as written by the go-kit logger and lifts the ts, level,
// component and msg keys out for display. Lines without any of ts, level or
// msg (panics, stray output) keep only their raw text:
//
//	lines, _ := logtail.ReadRecords(cfg.LogPath(), 200)
//	for _, line := range lines {
//		fmt.Println(line.String())
//	}
package logtail
