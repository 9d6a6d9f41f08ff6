package ui

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/apodbar/internal/apod"
	"github.com/five82/apodbar/internal/logging"
	"github.com/five82/apodbar/internal/picture"
	"github.com/five82/apodbar/internal/prefs"
	"github.com/five82/apodbar/internal/state"
	"github.com/five82/apodbar/internal/tray"
)

const (
	panelRefresh = 2 * time.Second
	logLines     = 8
	recentLimit  = 5
)

// Fetcher resolves and applies the picture for a day.
type Fetcher interface {
	Fetch(ctx context.Context, day time.Time, hd bool) (apod.Entry, error)
}

// MenuRenderer shows a built menu; *tray.Tray implements it.
type MenuRenderer interface {
	Render(menu tray.Menu)
}

// Clipboard receives the copied title.
type Clipboard interface {
	SetText(text string) error
}

// HistoryLister lists recently cached entries for the status view.
type HistoryLister interface {
	Recent(limit int) ([]apod.Entry, error)
}

// Options configures the event loop.
type Options struct {
	Context      context.Context
	Fetcher      Fetcher
	Menu         MenuRenderer
	Clipboard    Clipboard // optional
	History      HistoryLister
	Labels       tray.Labels
	RandomWindow int // days; zero uses state.DefaultRandomWindow
	Now          func() time.Time
	Rand         *rand.Rand
	Prefs        prefs.Prefs
	PrefsPath    string // empty uses default ~/.config/apodbar/prefs.toml
	LogPath      string
	Interactive  bool // render the terminal status view
}

// ActionMsg carries a tray click into the event loop.
type ActionMsg struct {
	Action tray.Action
}

type fetchResultMsg struct {
	seq   uint64
	id    string
	entry apod.Entry
	err   error
}

type tickMsg time.Time

type panelMsg struct {
	logLines []string
	recent   []string
}

// Model is the event loop state. Only Update touches it; fetches receive a
// copy of the Info they were dispatched with.
type Model struct {
	ctx         context.Context
	fetcher     Fetcher
	menu        MenuRenderer
	clipboard   Clipboard
	history     HistoryLister
	labels      tray.Labels
	window      int
	now         func() time.Time
	rng         *rand.Rand
	prefs       prefs.Prefs
	prefsPath   string
	logPath     string
	interactive bool
	newID       func() string

	info        state.Info
	seq         uint64
	inFlight    int
	lastErr     error
	lastUpdated time.Time

	theme    Theme
	keys     keyMap
	width    int
	logLines []string
	recent   []string
}

// New builds the event loop model. The startup fetch is dispatched by Init.
func New(opts Options) (Model, error) {
	if opts.Fetcher == nil {
		return Model{}, errors.New("ui requires a fetcher")
	}
	if opts.Menu == nil {
		return Model{}, errors.New("ui requires a menu renderer")
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	window := opts.RandomWindow
	if window <= 0 {
		window = state.DefaultRandomWindow
	}
	labels := opts.Labels
	if labels.AppName == "" {
		labels = tray.LabelsFor("en")
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		fetcher:     opts.Fetcher,
		menu:        opts.Menu,
		clipboard:   opts.Clipboard,
		history:     opts.History,
		labels:      labels,
		window:      window,
		now:         now,
		rng:         opts.Rand,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		interactive: opts.Interactive,
		newID:       uuid.NewString,
		info:        state.New(now(), labels.Loading, opts.Prefs.HD),
		// Init issues the first dispatch.
		seq:      1,
		inFlight: 1,
		theme:    GetTheme(opts.Prefs.Theme),
		keys:     DefaultKeyMap(),
	}, nil
}

// Info returns the current state snapshot.
func (m Model) Info() state.Info {
	return m.info
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.render()
	fetch := m.fetchCmd(m.seq, m.info)
	if !m.interactive {
		return fetch
	}
	return tea.Batch(fetch, m.panelCmd(), tickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ActionMsg:
		return m.handleAction(msg.Action)

	case fetchResultMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.panelCmd(), tickCmd())

	case panelMsg:
		m.logLines = msg.logLines
		m.recent = msg.recent
		return m, nil
	}

	return m, nil
}

func (m Model) handleAction(action tray.Action) (Model, tea.Cmd) {
	now := m.now()

	switch action {
	case tray.ActionPrevious:
		m.info = m.info.Advance(-1, now)
		return m.dispatch()

	case tray.ActionNext:
		if m.info.IsToday(now) {
			return m, nil
		}
		m.info = m.info.Advance(1, now)
		return m.dispatch()

	case tray.ActionToday:
		m.info = m.info.Today(now)
		return m.dispatch()

	case tray.ActionRandom:
		m.info = m.info.Set(state.RandomDay(now, m.window, m.rng), now)
		return m.dispatch()

	case tray.ActionToggleHD:
		m.info = m.info.ToggleHD()
		m.render()
		m.prefs.HD = m.info.HD
		m.savePrefs()
		return m.dispatch()

	case tray.ActionCopyTitle:
		if m.clipboard != nil && m.info.Title != "" {
			if err := m.clipboard.SetText(m.info.Title); err != nil {
				log.Printf("copy title: %v", err)
			}
		}
		return m, nil

	case tray.ActionExit:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.CycleTheme) {
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil
	}
	if action := m.keys.actionFor(msg); action != tray.ActionNone {
		return m.handleAction(action)
	}
	return m, nil
}

func (m Model) handleResult(msg fetchResultMsg) (Model, tea.Cmd) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	if msg.seq != m.seq {
		log.Printf("[%s] discarding superseded result (seq %d, latest %d)", msg.id, msg.seq, m.seq)
		return m, nil
	}
	if msg.err != nil {
		m.lastErr = msg.err
		log.Printf("[%s] fetch %s failed: %v", msg.id, apod.FormatDay(m.info.Date), msg.err)
		return m, nil
	}

	m.lastErr = nil
	m.info = m.info.WithEntry(msg.entry)
	m.lastUpdated = m.now()
	m.render()
	log.Printf("[%s] showing %q", msg.id, m.info.Title)
	if m.interactive {
		return m, m.panelCmd()
	}
	return m, nil
}

// dispatch starts a fetch for the current Info under a new sequence number.
func (m Model) dispatch() (Model, tea.Cmd) {
	m.seq++
	m.inFlight++
	return m, m.fetchCmd(m.seq, m.info)
}

func (m Model) fetchCmd(seq uint64, info state.Info) tea.Cmd {
	ctx, fetcher, id := m.ctx, m.fetcher, m.newID()
	return func() tea.Msg {
		ctx := picture.WithRequestID(ctx, id)
		log.Printf("[%s] fetch %s hd=%t seq=%d", id, apod.FormatDay(info.Date), info.HD, seq)
		entry, err := fetcher.Fetch(ctx, info.Date, info.HD)
		return fetchResultMsg{seq: seq, id: id, entry: entry, err: err}
	}
}

func (m Model) render() {
	m.menu.Render(tray.Build(m.info, m.labels))
}

func (m Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

func (m Model) panelCmd() tea.Cmd {
	logPath, history := m.logPath, m.history
	return func() tea.Msg {
		var msg panelMsg
		if logPath != "" {
			msg.logLines, _ = logging.Tail(logPath, logLines)
		}
		if history != nil {
			entries, err := history.Recent(recentLimit)
			if err == nil {
				for _, e := range entries {
					msg.recent = append(msg.recent, e.Date()+"  "+e.Title())
				}
			}
		}
		return msg
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(panelRefresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
