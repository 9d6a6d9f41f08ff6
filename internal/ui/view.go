package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apodbar/internal/apod"
)

// View implements tea.Model. Headless runs render nothing.
func (m Model) View() string {
	if !m.interactive {
		return ""
	}

	styles := m.theme.Styles()
	row := func(label, value string, style lipgloss.Style) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, styles.Label.Render(label), style.Render(value))
	}

	hd := styles.MutedText.Render("off")
	if m.info.HD {
		hd = styles.SuccessText.Render("on")
	}

	lines := []string{
		styles.Title.Render(m.labels.AppName),
		"",
		row("Title", m.info.Title, styles.Text),
		row("Date", apod.FormatDay(m.info.Date), styles.Text),
		lipgloss.JoinHorizontal(lipgloss.Top, styles.Label.Render("HD"), hd),
	}

	if m.inFlight > 0 {
		lines = append(lines, row("Fetching", fmt.Sprintf("%d in flight", m.inFlight), styles.WarningText))
	}
	if !m.lastUpdated.IsZero() {
		lines = append(lines, row("Updated", m.lastUpdated.Format("15:04:05"), styles.MutedText))
	}
	if m.lastErr != nil {
		lines = append(lines, row("Error", m.lastErr.Error(), styles.DangerText))
	}

	if len(m.recent) > 0 {
		lines = append(lines, "", styles.Title.Render("Recent"))
		for _, r := range m.recent {
			lines = append(lines, styles.Text.Render(r))
		}
	}
	if len(m.logLines) > 0 {
		lines = append(lines, "", styles.Title.Render("Log"))
		for _, l := range m.logLines {
			lines = append(lines, styles.MutedText.Render(truncate(l, m.width-4)))
		}
	}

	panel := styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.JoinVertical(lipgloss.Left, panel, styles.Footer.Render(m.helpLine()))
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// truncate shortens s to width runes; non-positive widths leave it alone.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
