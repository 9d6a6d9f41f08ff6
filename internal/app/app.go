package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/five82/apodbar/internal/apod"
	"github.com/five82/apodbar/internal/config"
	"github.com/five82/apodbar/internal/desktop"
	"github.com/five82/apodbar/internal/history"
	"github.com/five82/apodbar/internal/logging"
	"github.com/five82/apodbar/internal/picture"
	"github.com/five82/apodbar/internal/prefs"
	"github.com/five82/apodbar/internal/tray"
	"github.com/five82/apodbar/internal/ui"
)

// Options configure the apodbar application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/apodbar/config.toml
	PrefsPath  string // empty uses default ~/.config/apodbar/prefs.toml
	TUI        bool   // show the terminal status view
}

// Run shows the tray icon and runs the event loop until the user exits or
// ctx is cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logs, err := logging.Setup(cfg.LogPath, !opts.TUI)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logs.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := apod.NewClient(cfg.APIURL, cfg.APIKey, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init apod client: %w", err)
	}

	fetchOpts := picture.Options{
		Source:      client,
		Wallpaper:   desktop.NewWallpaper(),
		MaxWalkBack: cfg.MaxWalkBack,
	}
	if cfg.LockScreen {
		fetchOpts.LockScreen = desktop.NewLockScreen(runtime.GOOS)
		fetchOpts.LockScreenDir = cfg.DownloadDir
	}

	var recent ui.HistoryLister
	store, err := history.Open(cfg.CachePath)
	if err != nil {
		log.Printf("response cache disabled: %v", err)
	} else {
		defer func() { _ = store.Close() }()
		fetchOpts.Cache = store
		recent = store
	}

	fetcher, err := picture.New(fetchOpts)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	labels := tray.LabelsFor(cfg.Locale)
	icon := tray.New(tray.Icon(runtime.GOOS))
	model, err := ui.New(ui.Options{
		Context:      ctx,
		Fetcher:      fetcher,
		Menu:         icon,
		Clipboard:    desktop.Clipboard{},
		History:      recent,
		Labels:       labels,
		RandomWindow: cfg.RandomWindow,
		Prefs:        userPrefs,
		PrefsPath:    opts.PrefsPath,
		LogPath:      cfg.LogPath,
		Interactive:  opts.TUI,
	})
	if err != nil {
		return fmt.Errorf("init event loop: %w", err)
	}

	// The native items are created from this menu when the tray becomes
	// ready, which can happen before the program calls Init.
	icon.Render(tray.Build(model.Info(), labels))

	program := tea.NewProgram(model, programOptions(ctx, opts.TUI)...)
	log.Printf("apodbar starting (api %s, locale %s)", cfg.APIURL, cfg.Locale)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer icon.Quit()
		if _, err := program.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("event loop: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		forwardActions(gctx, icon.Events(), icon.Done(), program)
		return nil
	})

	icon.Run()
	// The tray can also go away on its own (session logout).
	program.Quit()

	return g.Wait()
}

func programOptions(ctx context.Context, tui bool) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if tui {
		return append(opts, tea.WithAltScreen())
	}
	return append(opts, tea.WithoutRenderer(), tea.WithInput(nil), tea.WithoutSignalHandler())
}

// sender is the part of *tea.Program the action bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// forwardActions feeds tray clicks into the event loop until ctx is
// cancelled or the tray exits.
func forwardActions(ctx context.Context, actions <-chan tray.Action, done <-chan struct{}, program sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case action := <-actions:
			program.Send(ui.ActionMsg{Action: action})
		}
	}
}
