package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 32

// Icon returns the tray icon for goos: a PNG everywhere except Windows, where
// the tray API wants an ICO container (which may wrap PNG data).
func Icon(goos string) []byte {
	data := crescentPNG(iconSize)
	if goos == "windows" {
		return wrapICO(data, iconSize)
	}
	return data
}

// crescentPNG draws a white crescent moon with a small star on a
// transparent background.
func crescentPNG(size int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	c := float64(size) / 2
	r := c - 2
	shift := r * 0.55
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			inMoon := sq(px-c)+sq(py-c) <= r*r
			inShadow := sq(px-c-shift)+sq(py-c+shift*0.4) <= r*r
			if inMoon && !inShadow {
				img.Set(x, y, white)
			}
		}
	}

	// four-point star in the shadowed part
	sx, sy := int(c+r*0.45), int(c-r*0.1)
	for d := -2; d <= 2; d++ {
		img.Set(sx+d, sy, white)
		img.Set(sx, sy+d, white)
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func sq(v float64) float64 { return v * v }

// wrapICO puts a single PNG image into an ICO container.
func wrapICO(pngData []byte, size int) []byte {
	const headerLen = 6 + 16

	var buf bytes.Buffer
	// ICONDIR
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}
	buf.Write([]byte{dim, dim, 0, 0})
	_ = binary.Write(&buf, binary.LittleEndian, [2]uint16{1, 32})
	_ = binary.Write(&buf, binary.LittleEndian, [2]uint32{uint32(len(pngData)), headerLen})
	buf.Write(pngData)
	return buf.Bytes()
}
