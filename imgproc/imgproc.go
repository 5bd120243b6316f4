// Package imgproc provides elementwise pixel primitives over flat 8-bit
// buffers, plus image.Image adapters for them.
package imgproc

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Invert returns a copy of pixels with every value flipped (255 - v).
// The input is not modified.
func Invert(pixels []uint8) []uint8 {
	out := make([]uint8, len(pixels))
	for i, p := range pixels {
		out[i] = math.MaxUint8 - p
	}
	return out
}

// Threshold applies a binary threshold: values strictly above thresh map to
// maxValue, everything else to zero. The input is not modified.
func Threshold(pixels []uint8, thresh, maxValue uint8) []uint8 {
	out := make([]uint8, len(pixels))
	for i, p := range pixels {
		if p > thresh {
			out[i] = maxValue
		}
	}
	return out
}

// InvertImage returns a negated copy of img.
func InvertImage(img image.Image) *image.NRGBA {
	return imaging.Invert(img)
}

// ThresholdImage converts img to grayscale and applies a binary threshold,
// returning a single-channel image.
func ThresholdImage(img image.Image, thresh, maxValue uint8) *image.Gray {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	out := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Grayscale output has equal R, G and B; the red channel is the value.
			v := gray.NRGBAAt(x, y).R
			if v > thresh {
				out.SetGray(x, y, color.Gray{Y: maxValue})
			}
		}
	}
	return out
}
