package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/five82/apodbar/internal/state"
)

// menuItem is the part of *systray.MenuItem that rendering touches.
type menuItem interface {
	SetTitle(title string)
	SetTooltip(tooltip string)
	Enable()
	Disable()
}

var _ menuItem = (*systray.MenuItem)(nil)

// itemAdder creates native menu items. nativeAdder is the systray one.
type itemAdder interface {
	AddSeparator()
	AddItem(label, tooltip string) (menuItem, <-chan struct{})
}

type nativeAdder struct{}

func (nativeAdder) AddSeparator() { systray.AddSeparator() }

func (nativeAdder) AddItem(label, tooltip string) (menuItem, <-chan struct{}) {
	mi := systray.AddMenuItem(label, tooltip)
	return mi, mi.ClickedCh
}

// Tray owns the native tray icon. Run must be called from the main
// goroutine; Render, Events and Quit are safe from any goroutine.
type Tray struct {
	icon   []byte
	events chan Action
	done   chan struct{}

	mu       sync.Mutex
	items    map[string]menuItem
	current  Menu
	ready    bool
	quitting bool
	quitOnce sync.Once
}

// New prepares a tray with icon bytes (see Icon).
func New(icon []byte) *Tray {
	return &Tray{
		icon:   icon,
		events: make(chan Action, 16),
		done:   make(chan struct{}),
		items:  make(map[string]menuItem),
	}
}

// Events delivers decoded menu clicks until the tray exits.
func (t *Tray) Events() <-chan Action {
	return t.events
}

// Done is closed once the tray has exited.
func (t *Tray) Done() <-chan struct{} {
	return t.done
}

// Run shows the tray and blocks until Quit. Items are created from the most
// recent Render call, or from a placeholder menu when nothing was rendered
// yet; later Render calls relabel them.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(t.icon)

	t.mu.Lock()
	menu := t.populate(nativeAdder{})
	quitting := t.quitting
	t.mu.Unlock()

	systray.SetTooltip(menu.Tooltip)
	if quitting {
		systray.Quit()
	}
}

// populate creates one native item per menu entry and marks the tray ready.
// The caller holds t.mu.
func (t *Tray) populate(add itemAdder) Menu {
	if len(t.current.Items) == 0 {
		t.current = Build(state.Info{}, LabelsFor(""))
	}
	menu := t.current
	for _, it := range menu.Items {
		if it.ID == IDExit {
			add.AddSeparator()
		}
		mi, clicked := add.AddItem(it.Label, it.Tooltip)
		if !it.Enabled {
			mi.Disable()
		}
		t.items[it.ID] = mi
		if action, ok := ParseAction(it.ID); ok {
			go t.forward(clicked, action)
		}
	}
	t.ready = true
	return menu
}

func (t *Tray) onExit() {
	close(t.done)
}

func (t *Tray) forward(clicked <-chan struct{}, action Action) {
	for {
		select {
		case <-t.done:
			return
		case <-clicked:
			select {
			case t.events <- action:
			case <-t.done:
				return
			}
		}
	}
}

// Render applies menu to the native items. Before the tray is ready it only
// records the menu for Run to build from.
func (t *Tray) Render(menu Menu) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = menu
	if !t.ready {
		return
	}
	for _, it := range menu.Items {
		if mi, ok := t.items[it.ID]; ok {
			applyItem(mi, it)
		}
	}
	systray.SetTooltip(menu.Tooltip)
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	t.quitOnce.Do(func() {
		t.mu.Lock()
		ready := t.ready
		t.quitting = true
		t.mu.Unlock()
		if ready {
			systray.Quit()
		}
	})
}

func applyItem(mi menuItem, it Item) {
	mi.SetTitle(it.Label)
	mi.SetTooltip(it.Tooltip)
	if it.Enabled {
		mi.Enable()
	} else {
		mi.Disable()
	}
}
