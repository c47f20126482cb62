package ui

import (
	"strings"

	"github.com/five82/scout/internal/logtail"
)

// renderBody renders the viewport content for the current view.
func (m Model) renderBody() string {
	styles := m.theme.Styles()
	switch m.currentView {
	case ViewLogs:
		if m.logPath == "" {
			return styles.MutedText.Render("No log file configured.")
		}
		if len(m.logLines) == 0 {
			return styles.MutedText.Render("Log is empty: " + m.logPath)
		}
		out := make([]string, 0, len(m.logLines))
		for _, line := range m.logLines {
			out = append(out, m.renderLogLine(line))
		}
		return strings.Join(out, "\n")
	default:
		if m.debug == "" {
			return styles.MutedText.Render("Probing discovery sources...")
		}
		title := styles.AccentText.Bold(true).Render("Discovery sources")
		return title + "\n\n" + styles.Text.Render(strings.TrimRight(m.debug, "\n"))
	}
}

// renderLogLine colors a decoded record by level; other lines pass through.
func (m Model) renderLogLine(line logtail.Line) string {
	styles := m.theme.Styles()
	rec := line.Record
	if rec == nil {
		return styles.Text.Render(line.Raw)
	}
	var b strings.Builder
	if rec.Time != "" {
		ts := rec.Time
		if len(ts) >= 19 {
			ts = ts[11:19]
		}
		b.WriteString(styles.FaintText.Render(ts))
		b.WriteString(" ")
	}
	if rec.Level != "" {
		b.WriteString(styles.LevelStyle(rec.Level).Render(strings.ToUpper(rec.Level)))
		b.WriteString(" ")
	}
	if rec.Component != "" {
		b.WriteString(styles.AccentText.Render(rec.Component))
		b.WriteString(" ")
	}
	b.WriteString(styles.Text.Render(rec.Msg))
	for _, f := range rec.Fields {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(f.Key + "=" + f.Value))
	}
	return b.String()
}
