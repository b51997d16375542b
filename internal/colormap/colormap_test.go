package colormap

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func lightness(c RGB) float64 {
	l, _, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Lab()
	return l
}

func TestFireEndpoints(t *testing.T) {
	if got := DensityToColor(0); got != (RGB{0, 0, 0}) {
		t.Errorf("DensityToColor(0) = %+v, want black", got)
	}
	if got := DensityToColor(1); got != (RGB{255, 255, 255}) {
		t.Errorf("DensityToColor(1) = %+v, want white", got)
	}
}

func TestFireClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want RGB
	}{
		{-5, RGB{0, 0, 0}},
		{math.NaN(), RGB{0, 0, 0}},
		{1.5, RGB{255, 255, 255}},
		{math.Inf(1), RGB{255, 255, 255}},
	}
	for _, tt := range tests {
		if got := Fire.At(tt.in); got != tt.want {
			t.Errorf("Fire.At(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFireStops(t *testing.T) {
	tests := []struct {
		v    float64
		want RGB
	}{
		{0.2, RGB{76, 0, 153}},  // dark purple
		{0.4, RGB{204, 0, 0}},   // deep red
		{0.6, RGB{255, 127, 0}}, // orange
		{0.8, RGB{255, 255, 0}}, // yellow
	}
	for _, tt := range tests {
		got := Fire.At(tt.v)
		// stop positions are not exact in binary; allow one step of truncation
		if absDiff(got.R, tt.want.R) > 1 || absDiff(got.G, tt.want.G) > 1 || absDiff(got.B, tt.want.B) > 1 {
			t.Errorf("Fire.At(%v) = %+v, want %+v", tt.v, got, tt.want)
		}
	}
}

func TestFireMidpointInterpolation(t *testing.T) {
	// halfway between orange (1, .5, 0) and yellow (1, 1, 0)
	got := Fire.At(0.7)
	if got.R != 255 || got.B != 0 || got.G < 190 || got.G > 192 {
		t.Errorf("Fire.At(0.7) = %+v, want ≈ (255, 191, 0)", got)
	}
}

func TestFireLightnessPerSegment(t *testing.T) {
	// The purple→red leg trades blue for red almost exactly in luminance,
	// so byte truncation causes dips well below a just-noticeable difference.
	const tolerance = 0.25
	stops := len(Fire.stops)
	for seg := 0; seg < stops-1; seg++ {
		prev := -1.0
		for k := 0; k <= 100; k++ {
			v := (float64(seg) + float64(k)/100) / float64(stops-1)
			l := lightness(Fire.At(v))
			if prev >= 0 && l < prev-tolerance {
				t.Errorf("segment %d: lightness drops from %.3f to %.3f at v=%.4f", seg, prev, l, v)
			}
			prev = l
		}
	}

	// Stops themselves must be strictly increasing in lightness.
	prev := -1.0
	for i := 0; i < stops; i++ {
		l := lightness(Fire.At(float64(i) / float64(stops-1)))
		if l <= prev {
			t.Errorf("stop %d lightness %.3f not above previous %.3f", i, l, prev)
		}
		prev = l
	}
}

func TestGray(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		c := Gray.At(v)
		if c.R != c.G || c.G != c.B {
			t.Errorf("Gray.At(%v) = %+v, not gray", v, c)
		}
		if want := uint8(v * 255); c.R != want {
			t.Errorf("Gray.At(%v).R = %d, want %d", v, c.R, want)
		}
	}
}

func TestPalette(t *testing.T) {
	if PaletteFire.Next() != PaletteGray || PaletteGray.Next() != PaletteFire {
		t.Error("palette cycling broken")
	}
	if PaletteGray.Map().At(1) != (RGB{255, 255, 255}) {
		t.Error("gray palette should map 1 to white")
	}
	if Palette(99).Map().At(0.4) != Fire.At(0.4) {
		t.Error("unknown palette should fall back to fire")
	}

	for _, name := range []string{"fire", "FIRE", "", "gray", "grey"} {
		if _, err := ParsePalette(name); err != nil {
			t.Errorf("ParsePalette(%q): %v", name, err)
		}
	}
	if _, err := ParsePalette("viridis"); err == nil {
		t.Error("ParsePalette(viridis) should fail")
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
