package tray

import "github.com/five82/apodbar/internal/state"

// Action is a decoded menu click.
type Action int

const (
	ActionNone Action = iota
	ActionCopyTitle
	ActionPrevious
	ActionNext
	ActionToday
	ActionRandom
	ActionToggleHD
	ActionExit
)

// Menu item ids as seen by the tray boundary.
const (
	IDTitle  = "title"
	IDPrev   = "prev"
	IDNext   = "next"
	IDToday  = "today"
	IDRandom = "random"
	IDHD     = "hd"
	IDExit   = "exit"
)

// itemOrder is the fixed top-to-bottom layout of the menu.
var itemOrder = []string{IDTitle, IDPrev, IDNext, IDToday, IDRandom, IDHD, IDExit}

var actionsByID = map[string]Action{
	IDTitle:  ActionCopyTitle,
	IDPrev:   ActionPrevious,
	IDNext:   ActionNext,
	IDToday:  ActionToday,
	IDRandom: ActionRandom,
	IDHD:     ActionToggleHD,
	IDExit:   ActionExit,
}

// ParseAction maps a menu item id to its Action.
func ParseAction(id string) (Action, bool) {
	a, ok := actionsByID[id]
	return a, ok
}

func (a Action) String() string {
	switch a {
	case ActionCopyTitle:
		return "copy-title"
	case ActionPrevious:
		return "previous"
	case ActionNext:
		return "next"
	case ActionToday:
		return "today"
	case ActionRandom:
		return "random"
	case ActionToggleHD:
		return "toggle-hd"
	case ActionExit:
		return "exit"
	default:
		return "none"
	}
}

// CheckGlyph is appended to the HD label while HD is on.
const CheckGlyph = "☑"

// Item is one menu entry.
type Item struct {
	ID      string
	Label   string
	Tooltip string
	Enabled bool
	Checked bool // shown as CheckGlyph in Label, not a native checkbox
}

// Menu is the declarative tray state.
type Menu struct {
	Tooltip string
	Items   []Item
}

// Build renders info into a Menu. It is pure; the tray adapter applies the
// result.
func Build(info state.Info, labels Labels) Menu {
	items := make([]Item, 0, len(itemOrder))
	for _, id := range itemOrder {
		item := Item{ID: id, Enabled: true}
		switch id {
		case IDTitle:
			item.Label = info.Title
			item.Tooltip = labels.CopyHint
		case IDPrev:
			item.Label = labels.Previous
		case IDNext:
			item.Label = labels.Next
		case IDToday:
			item.Label = labels.Today
		case IDRandom:
			item.Label = labels.Random
		case IDHD:
			item.Label = labels.HD
			if info.HD {
				item.Label += CheckGlyph
				item.Checked = true
			}
		case IDExit:
			item.Label = labels.Exit
		}
		items = append(items, item)
	}

	tooltip := labels.AppName
	if info.Title != "" {
		tooltip = info.Title
	}
	return Menu{Tooltip: tooltip, Items: items}
}
