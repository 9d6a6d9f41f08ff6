package picture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/five82/apodbar/internal/apod"
)

// DefaultMaxWalkBack bounds how many days Fetch steps back past gaps.
const DefaultMaxWalkBack = 30

var (
	// ErrWalkExhausted means every day in the walk-back range was missing.
	ErrWalkExhausted = errors.New("no picture within walk-back range")
	// ErrUnsupportedMedia means the entry is a video without a thumbnail.
	ErrUnsupportedMedia = errors.New("entry has no still image")
	// ErrWallpaper wraps failures from the wallpaper capability.
	ErrWallpaper = errors.New("wallpaper")
	// ErrLockScreen wraps failures from the lock-screen pipeline.
	ErrLockScreen = errors.New("lock screen")
)

// MissingFieldError reports an entry without the requested image URL.
type MissingFieldError struct {
	Field string
	Date  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("entry %s has no %s", e.Date, e.Field)
}

// Cache stores entries by day. Implemented by *history.Store.
type Cache interface {
	Get(day time.Time) (apod.Entry, bool, error)
	Put(day time.Time, entry apod.Entry) error
}

// WallpaperSetter applies a desktop background from a URL.
type WallpaperSetter interface {
	SetFromURL(ctx context.Context, url string) error
}

// LockScreen applies a lock-screen image from a local file.
type LockScreen interface {
	Supported() bool
	SetImage(ctx context.Context, path string) error
}

// Options configure a Fetcher. Cache and LockScreen are optional.
type Options struct {
	Source        apod.DayFetcher
	Wallpaper     WallpaperSetter
	Cache         Cache
	LockScreen    LockScreen
	LockScreenDir string
	MaxWalkBack   int
}

// Fetcher resolves a day to an entry and applies it to the desktop.
type Fetcher struct {
	source      apod.DayFetcher
	wallpaper   WallpaperSetter
	cache       Cache
	lock        LockScreen
	lockDir     string
	maxWalkBack int
}

// New validates opts and builds a Fetcher.
func New(opts Options) (*Fetcher, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("picture fetcher requires a source")
	}
	if opts.Wallpaper == nil {
		return nil, fmt.Errorf("picture fetcher requires a wallpaper setter")
	}
	walk := opts.MaxWalkBack
	if walk <= 0 {
		walk = DefaultMaxWalkBack
	}
	lock := opts.LockScreen
	if lock != nil && (!lock.Supported() || opts.LockScreenDir == "") {
		lock = nil
	}
	return &Fetcher{
		source:      opts.Source,
		wallpaper:   opts.Wallpaper,
		cache:       opts.Cache,
		lock:        lock,
		lockDir:     opts.LockScreenDir,
		maxWalkBack: walk,
	}, nil
}

// Fetch finds the picture for day, stepping back over days the archive has
// nothing for, and applies it as the wallpaper (and lock screen where
// supported). hd selects hdurl instead of url; there is no fallback between
// the two.
func (f *Fetcher) Fetch(ctx context.Context, day time.Time, hd bool) (apod.Entry, error) {
	entry, resolved, err := f.resolve(ctx, day)
	if err != nil {
		return nil, err
	}

	imageURL, err := selectURL(entry, hd)
	if err != nil {
		return nil, err
	}

	logf(ctx, "applying %s (%s)", imageURL, apod.FormatDay(resolved))
	if err := f.wallpaper.SetFromURL(ctx, imageURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWallpaper, err)
	}

	if f.lock != nil {
		// The wallpaper already changed, so a lock-screen failure is
		// reported but does not fail the fetch.
		if err := f.applyLockScreen(ctx, imageURL, resolved); err != nil {
			logf(ctx, "%v", err)
		}
	}

	return entry, nil
}

func (f *Fetcher) resolve(ctx context.Context, day time.Time) (apod.Entry, time.Time, error) {
	day = apod.Day(day)
	start := day
	for step := 0; ; step++ {
		if step > f.maxWalkBack || day.Before(apod.FirstDay) {
			return nil, day, fmt.Errorf("%w: tried %d days from %s", ErrWalkExhausted, step, apod.FormatDay(start))
		}
		entry, err := f.lookup(ctx, day)
		if err == nil {
			return entry, day, nil
		}
		if !apod.IsNotFound(err) {
			return nil, day, fmt.Errorf("fetch %s: %w", apod.FormatDay(day), err)
		}
		logf(ctx, "no picture for %s, trying the day before", apod.FormatDay(day))
		day = day.AddDate(0, 0, -1)
	}
}

func (f *Fetcher) lookup(ctx context.Context, day time.Time) (apod.Entry, error) {
	if f.cache != nil {
		entry, ok, err := f.cache.Get(day)
		if err != nil {
			logf(ctx, "cache read %s failed: %v", apod.FormatDay(day), err)
		} else if ok {
			logf(ctx, "cache hit for %s", apod.FormatDay(day))
			return entry, nil
		}
	}

	entry, err := f.source.FetchDay(ctx, day)
	if err != nil {
		return nil, err
	}

	// Only exact-day answers are cached; the API may answer "today" with an
	// older entry before the new one is published.
	if got, ok := entry.Day(); f.cache != nil && ok && got.Equal(day) {
		if err := f.cache.Put(day, entry); err != nil {
			logf(ctx, "cache write %s failed: %v", apod.FormatDay(day), err)
		}
	}
	return entry, nil
}

func selectURL(entry apod.Entry, hd bool) (string, error) {
	if entry.IsVideo() {
		if u, ok := entry.Get(apod.FieldThumbnailURL); ok {
			return u, nil
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, entry.Date())
	}
	field := apod.FieldURL
	if hd {
		field = apod.FieldHDURL
	}
	u, ok := entry.Get(field)
	if !ok {
		return "", &MissingFieldError{Field: field, Date: entry.Date()}
	}
	return u, nil
}

func logf(ctx context.Context, format string, args ...any) {
	if id := RequestID(ctx); id != "" {
		format = "[" + id + "] " + format
	}
	log.Printf(format, args...)
}
