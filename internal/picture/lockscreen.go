package picture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"

	"github.com/five82/apodbar/internal/apod"
)

// Lock screens are rendered at display resolution; anything bigger only
// costs disk and decode time.
const (
	maxLockWidth  = 3840
	maxLockHeight = 2160
)

func (f *Fetcher) applyLockScreen(ctx context.Context, imageURL string, day time.Time) error {
	data, err := f.source.FetchImage(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("%w: download: %w", ErrLockScreen, err)
	}

	path := filepath.Join(f.lockDir, fmt.Sprintf("lock-screen-%s.jpg", apod.FormatDay(day)))
	if err := writeJPEG(data, path, maxLockWidth, maxLockHeight); err != nil {
		return fmt.Errorf("%w: %w", ErrLockScreen, err)
	}

	if err := f.lock.SetImage(ctx, path); err != nil {
		return fmt.Errorf("%w: %w", ErrLockScreen, err)
	}
	logf(ctx, "lock screen set from %s", path)
	return nil
}

// writeJPEG decodes data, scales it to fit maxW x maxH keeping the aspect
// ratio, and writes it to path as JPEG.
func writeJPEG(data []byte, path string, maxW, maxH int) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	img = fit(img, maxW, maxH)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

func fit(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxW && height <= maxH {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxW)/float64(maxH) > ratio {
		// Height is the limiting factor
		width = int(float64(maxH) * ratio)
		height = maxH
	} else {
		height = int(float64(maxW) / ratio)
		width = maxW
	}
	width, height = max(width, 1), max(height, 1)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
