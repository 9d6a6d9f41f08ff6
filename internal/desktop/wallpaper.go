package desktop

import (
	"context"
	"fmt"
	"strings"

	"github.com/reujab/wallpaper"
)

// Wallpaper applies desktop backgrounds through the OS.
type Wallpaper struct {
	set func(url string) error
}

// NewWallpaper returns a Wallpaper backed by github.com/reujab/wallpaper,
// which downloads the image into the user cache dir and applies it with the
// platform's native mechanism.
func NewWallpaper() *Wallpaper {
	return &Wallpaper{set: wallpaper.SetFromURL}
}

// SetFromURL downloads url and makes it the desktop background. The library
// call is not cancellable; ctx is only checked before it starts.
func (w *Wallpaper) SetFromURL(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("wallpaper url is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.set(url); err != nil {
		return fmt.Errorf("set wallpaper: %w", err)
	}
	return nil
}
