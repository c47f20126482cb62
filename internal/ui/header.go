package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chromeLines is the number of lines above the viewport.
const chromeLines = 5

func (m Model) viewportHeight() int {
	return max(m.height-chromeLines, 1)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderInfo())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	return b.String()
}

// renderHeader renders the connection status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("scout", styles.Logo)}
	snap := m.snapshot
	switch {
	case !snap.HasConnection:
		parts = append(parts, bg.Render("Looking for the League client...", styles.WarningText.Bold(true)))
	case snap.Connection.OK:
		parts = append(parts,
			bg.Render("● CONNECTED", styles.SuccessText),
			bg.Render("port", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", snap.Connection.Port), styles.Text),
		)
	default:
		label := "CLIENT " + classifyConnectionError(snap.LastError)
		parts = append(parts, bg.Render("● "+label, styles.DangerText))
		if snap.IsOffline() {
			parts = append(parts, bg.Render("Retrying...", styles.WarningText.Bold(true)))
		}
	}
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("checked", styles.FaintText)+bg.Space()+
			bg.Render(snap.LastUpdated.Format("15:04:05"), styles.MutedText))
	}
	if !snap.Connection.OK && !snap.LastConnected.IsZero() {
		parts = append(parts, bg.Render("last seen", styles.FaintText)+bg.Space()+
			bg.Render(snap.LastConnected.Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// classifyConnectionError maps a discovery error to a short header label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return "NOT RUNNING"
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		keyStyle := styles.AccentText
		if (h.Key == "d" && m.currentView == ViewDebug) || (h.Key == "l" && m.currentView == ViewLogs) {
			keyStyle = styles.WarningText.Bold(true)
		}
		parts = append(parts, bg.Render(h.Key, keyStyle)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderInfo renders the image source, cache location and the last action
// result.
func (m Model) renderInfo() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	limit := max(m.width-12, 10)

	var base, dir string
	if m.backend != nil {
		base = m.backend.ImageSourceBase()
		dir = m.backend.CacheDir()
	}
	line := func(label, value string, style lipgloss.Style) string {
		content := bg.Render(fmt.Sprintf("%-8s", label), styles.FaintText) + bg.Render(value, style)
		return bg.FillLine(" "+content, m.width)
	}
	flashStyle := styles.AccentText
	if strings.Contains(m.flash, "failed") || strings.Contains(m.flash, "unreadable") {
		flashStyle = styles.DangerText
	}
	return strings.Join([]string{
		line("images", truncateMiddle(base, limit), styles.Text),
		line("cache", truncateMiddle(dir, limit), styles.Text),
		line("", m.flash, flashStyle),
	}, "\n")
}
