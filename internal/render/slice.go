package render

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orbitals/internal/colormap"
	"github.com/litescript/ls-orbitals/internal/orbital"
)

// LightingScale converts raw intensity into the [0, 1] color domain.
const LightingScale = 700.0

// DefaultSliceScale is the default pixels per Bohr radius at n = 1.
const DefaultSliceScale = 50.0

// Plane selects which cross-section a slice render shows.
type Plane int

const (
	// PlaneEquatorial is the θ = π/2 plane; pixels vary only in r and φ.
	PlaneEquatorial Plane = iota

	// PlaneMeridional contains the polar axis, which runs vertically through
	// the image. It matches the z = 0 plane of an unrotated volume render and
	// is the only plane in which m = 0 lobes are visible.
	PlaneMeridional
)

func (p Plane) String() string {
	switch p {
	case PlaneEquatorial:
		return "equatorial"
	case PlaneMeridional:
		return "meridional"
	default:
		return fmt.Sprintf("Plane(%d)", int(p))
	}
}

// Toggle returns the other plane.
func (p Plane) Toggle() Plane {
	if p == PlaneMeridional {
		return PlaneEquatorial
	}
	return PlaneMeridional
}

// ParsePlane parses "equatorial" or "meridional".
func ParsePlane(s string) (Plane, error) {
	switch s {
	case "", "equatorial", "eq":
		return PlaneEquatorial, nil
	case "meridional", "mer":
		return PlaneMeridional, nil
	default:
		return PlaneEquatorial, fmt.Errorf("unknown plane %q (want equatorial or meridional)", s)
	}
}

// SliceParams are the read-only inputs of one slice render.
type SliceParams struct {
	// Scale is pixels per Bohr radius at n = 1. The effective divisor is
	// Scale/max(1, n) because orbitals grow with n.
	Scale   float64
	Plane   Plane
	Palette colormap.Palette
}

// DefaultSliceParams returns the equatorial fire-palette slice.
func DefaultSliceParams() SliceParams {
	return SliceParams{
		Scale:   DefaultSliceScale,
		Plane:   PlaneEquatorial,
		Palette: colormap.PaletteFire,
	}
}

// RenderSlice evaluates the orbital on a planar cross-section through the
// nucleus, one sample per pixel, and returns the heatmap. The state is
// validated before any work starts.
func RenderSlice(q orbital.QuantumState, width, height int, p SliceParams) (*PixelBuffer, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return nil, fmt.Errorf("%w: slice scale %v", ErrInvalidDimensions, p.Scale)
	}

	divisor := p.Scale / math.Max(1, float64(q.N))
	cmap := p.Palette.Map()
	cx := float64(width) / 2
	cy := float64(height) / 2

	buf := NewPixelBuffer(width, height)
	forEachRow(height, func(y int) {
		py := (float64(y) - cy) / divisor
		for x := 0; x < width; x++ {
			px := (float64(x) - cx) / divisor
			intensity := clamp01(sliceIntensity(q, p.Plane, px, py) * LightingScale)
			buf.Set(x, y, cmap.At(intensity))
		}
	})
	return buf, nil
}

// sliceIntensity returns the raw intensity at in-plane position (px, py).
func sliceIntensity(q orbital.QuantumState, plane Plane, px, py float64) float64 {
	r := math.Hypot(px, py)
	if plane == PlaneMeridional {
		theta := 0.0
		if r > 0 {
			theta = math.Acos(clamp(py/r, -1, 1))
		}
		return q.RawIntensity(r, theta, math.Atan2(0, px))
	}
	return q.RawIntensity(r, math.Pi/2, math.Atan2(py, px))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
