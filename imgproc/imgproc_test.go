package imgproc

import (
	"image"
	"image/color"
	"testing"

	"github.com/percept-vision/percept/internal/testutil"
)

func TestInvert(t *testing.T) {
	in := []uint8{0, 1, 127, 128, 254, 255}
	want := []uint8{255, 254, 128, 127, 1, 0}

	out := Invert(in)
	if len(out) != len(in) {
		t.Fatalf("expected %d pixels, got %d", len(in), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("pixel %d: expected %d, got %d", i, want[i], out[i])
		}
	}
	if in[0] != 0 {
		t.Fatal("input slice was modified")
	}
}

func TestInvertRoundTrip(t *testing.T) {
	in := []uint8{3, 45, 99, 200}
	out := Invert(Invert(in))
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("double inversion not identity at %d: %d != %d", i, out[i], in[i])
		}
	}
}

func TestInvertEmpty(t *testing.T) {
	if out := Invert(nil); len(out) != 0 {
		t.Fatalf("expected empty output for empty input, got %d pixels", len(out))
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		name     string
		in       []uint8
		thresh   uint8
		maxValue uint8
		want     []uint8
	}{
		{"mid threshold", []uint8{0, 100, 128, 129, 255}, 128, 255, []uint8{0, 0, 0, 255, 255}},
		{"custom max value", []uint8{10, 200}, 50, 1, []uint8{0, 1}},
		{"zero threshold", []uint8{0, 1, 255}, 0, 255, []uint8{0, 255, 255}},
		{"max threshold keeps nothing", []uint8{0, 128, 255}, 255, 255, []uint8{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Threshold(tt.in, tt.thresh, tt.maxValue)
			for i := range tt.want {
				if out[i] != tt.want[i] {
					t.Fatalf("pixel %d: expected %d, got %d", i, tt.want[i], out[i])
				}
			}
		})
	}
}

func TestInvertImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 128, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := InvertImage(img)
	p := out.NRGBAAt(0, 0)
	if p.R != 255 || p.G != 127 || p.B != 0 {
		t.Fatalf("unexpected inverted pixel: %+v", p)
	}
	q := out.NRGBAAt(1, 0)
	if q.R != 0 || q.G != 0 || q.B != 0 {
		t.Fatalf("white should invert to black, got %+v", q)
	}
}

func TestThresholdImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 30})
	img.SetGray(1, 0, color.Gray{Y: 220})

	out := ThresholdImage(img, 128, 255)
	if v := out.GrayAt(0, 0).Y; v != 0 {
		t.Fatalf("dark pixel should map to 0, got %d", v)
	}
	if v := out.GrayAt(1, 0).Y; v != 255 {
		t.Fatalf("bright pixel should map to 255, got %d", v)
	}
}

func TestThresholdImageChecker(t *testing.T) {
	out := ThresholdImage(testutil.GrayChecker(4, 4, 20, 230), 128, 255)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint8(0)
			if (x+y)%2 == 1 {
				want = 255
			}
			if v := out.GrayAt(x, y).Y; v != want {
				t.Fatalf("pixel (%d,%d): expected %d, got %d", x, y, want, v)
			}
		}
	}
}
