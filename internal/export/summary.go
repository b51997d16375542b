package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/render"
)

// FrameStats describes how much of a frame is lit.
type FrameStats struct {
	Pixels     int
	Lit        int // pixels with any non-zero channel
	Saturated  int // pure white pixels
	Peak       int // largest channel sum, 0..765
	MeanBright float64
}

// LitFraction returns Lit/Pixels.
func (s FrameStats) LitFraction() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Lit) / float64(s.Pixels)
}

// Stats scans a frame.
func Stats(buf *render.PixelBuffer) FrameStats {
	if buf == nil {
		return FrameStats{}
	}
	st := FrameStats{Pixels: buf.Width * buf.Height}
	total := 0
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			b := buf.Brightness(x, y)
			total += b
			if b > 0 {
				st.Lit++
			}
			if b == 765 {
				st.Saturated++
			}
			if b > st.Peak {
				st.Peak = b
			}
		}
	}
	if st.Pixels > 0 {
		st.MeanBright = float64(total) / float64(st.Pixels)
	}
	return st
}

// WriteSummary writes a text table describing the orbital and, if buf is
// non-nil, the rendered frame.
func WriteSummary(w io.Writer, key render.Key, buf *render.PixelBuffer, elapsed time.Duration) {
	q := key.State

	fmt.Fprintf(w, "Orbital %s %s\n", q.Label(), q)
	fmt.Fprintln(w, strings.Repeat("─", 48))
	fmt.Fprintf(w, "%-18s %.4f eV\n", "Energy", q.Energy())
	fmt.Fprintf(w, "%-18s %d\n", "Radial nodes", q.RadialNodes())
	fmt.Fprintf(w, "%-18s %d\n", "Angular nodes", q.AngularNodes())
	fmt.Fprintf(w, "%-18s %.4f\n", "Harmonic norm", orbital.HarmonicNorm(q.L, q.M))

	if buf == nil {
		return
	}

	fmt.Fprintln(w, strings.Repeat("─", 48))
	fmt.Fprintf(w, "%-18s %s %dx%d\n", "Render", key.Mode, buf.Width, buf.Height)
	switch key.Mode {
	case render.ModeSlice:
		fmt.Fprintf(w, "%-18s %s, scale %.1f, %s\n", "Slice", key.Slice.Plane, key.Slice.Scale, key.Slice.Palette)
	case render.ModeVolume:
		v := key.Volume
		fmt.Fprintf(w, "%-18s (%.2f, %.2f, %.2f) rad\n", "Rotation", v.RotationX, v.RotationY, v.RotationZ)
		fmt.Fprintf(w, "%-18s (%.2f, %.2f, %.2f)\n", "Clip", v.ClipX, v.ClipY, v.ClipZ)
		fmt.Fprintf(w, "%-18s ×%.2f, %s\n", "Color scale", v.ColorScale, v.Palette)
	}

	st := Stats(buf)
	fmt.Fprintf(w, "%-18s %5.1f%%\n", "Lit pixels", st.LitFraction()*100)
	fmt.Fprintf(w, "%-18s %d\n", "Saturated pixels", st.Saturated)
	fmt.Fprintf(w, "%-18s %d / 765\n", "Peak brightness", st.Peak)
	fmt.Fprintf(w, "%-18s %s\n", "Render time", elapsed.Round(time.Millisecond))
}
