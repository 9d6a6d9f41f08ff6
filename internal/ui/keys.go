package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/apodbar/internal/tray"
)

// keyMap mirrors the tray menu in the status view.
type keyMap struct {
	Previous   key.Binding
	Next       key.Binding
	Today      key.Binding
	Random     key.Binding
	ToggleHD   key.Binding
	CopyTitle  key.Binding
	CycleTheme key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Previous: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "Previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "Next"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Today"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Random"),
		),
		ToggleHD: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle HD"),
		),
		CopyTitle: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "Copy title"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "e"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// actionFor maps a key press to the tray action it mirrors.
func (k keyMap) actionFor(msg tea.KeyMsg) tray.Action {
	switch {
	case key.Matches(msg, k.Previous):
		return tray.ActionPrevious
	case key.Matches(msg, k.Next):
		return tray.ActionNext
	case key.Matches(msg, k.Today):
		return tray.ActionToday
	case key.Matches(msg, k.Random):
		return tray.ActionRandom
	case key.Matches(msg, k.ToggleHD):
		return tray.ActionToggleHD
	case key.Matches(msg, k.CopyTitle):
		return tray.ActionCopyTitle
	case key.Matches(msg, k.Quit):
		return tray.ActionExit
	default:
		return tray.ActionNone
	}
}

// help returns the footer bindings in display order.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Today, k.Random, k.ToggleHD, k.CopyTitle, k.CycleTheme, k.Quit}
}
