package present

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/guessr/internal/game"
)

var (
	colorAccent  = lipgloss.Color("#2CD7C7")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F4D03F")
	colorMuted   = lipgloss.Color("#5C6F77")
)

// Styles used by the terminal presenter and the CLI summaries.
var Styles = struct {
	Title   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Info:    lipgloss.NewStyle(),
	Success: lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
}

// noticeStyle picks the style for a notice level.
func noticeStyle(l game.Level) lipgloss.Style {
	switch l {
	case game.LevelSuccess:
		return Styles.Success
	case game.LevelWarning:
		return Styles.Warning
	default:
		return Styles.Info
	}
}

// RenderNotice styles a notice for terminal output.
func RenderNotice(n game.Notice) string {
	prefix := "•"
	switch n.Level {
	case game.LevelSuccess:
		prefix = "✓"
	case game.LevelWarning:
		prefix = "⚠"
	}
	return noticeStyle(n.Level).Render(prefix + " " + n.Text)
}
