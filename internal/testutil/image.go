// Package testutil provides shared image fixtures for tests.
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// GrayStrip builds a 1-pixel-high grayscale image with the given pixel values.
func GrayStrip(values ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(values), 1))
	for i, v := range values {
		img.SetGray(i, 0, color.Gray{Y: v})
	}
	return img
}

// GrayChecker builds a w by h grayscale image alternating between two values.
func GrayChecker(w, h int, a, b uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := a
			if (x+y)%2 == 1 {
				v = b
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// SavePNG writes the image to a temp file and returns its path. The file is
// cleaned up with the test.
func SavePNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating temp image: %v", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding temp image: %v", err)
	}
	return path
}

// GrayAt returns the 8-bit red channel of the pixel, which equals the gray
// value for grayscale images.
func GrayAt(img image.Image, x, y int) uint8 {
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}
