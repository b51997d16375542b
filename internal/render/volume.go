package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-orbitals/internal/colormap"
	"github.com/litescript/ls-orbitals/internal/orbital"
)

// Volume ray-marching constants.
const (
	// DefaultSamples is the number of depth samples per ray.
	DefaultSamples = 50

	// ExtentPerN is the cube half-extent per principal quantum number.
	ExtentPerN = 5.0

	// minSampleRadius skips samples at the nucleus (θ is undefined there).
	minSampleRadius = 0.01

	// minSampleIntensity is the threshold below which a sample adds nothing.
	minSampleIntensity = 0.01

	// opacityCutoff ends a ray once the accumulated alpha exceeds it.
	opacityCutoff = 0.95

	// alphaGain sets per-sample opacity: α = intensity·alphaGain/samples.
	alphaGain = 8.0

	// clipThreshold is the smallest clip fraction that takes effect.
	clipThreshold = 0.01
)

// ErrInvalidParams is returned for volume parameters outside their domain.
var ErrInvalidParams = errors.New("invalid render parameters")

// VolumeParams are the read-only inputs of one volume render.
type VolumeParams struct {
	// Euler angles in radians, applied X, then Y, then Z.
	RotationX, RotationY, RotationZ float64

	// Clip fractions per rotated axis: 0 keeps the whole cube, values
	// towards 1 cut it down to a slab around the nucleus, 1 removes it.
	ClipX, ClipY, ClipZ float64

	// ColorScale multiplies the lighting scale.
	ColorScale float64

	// Samples per ray; 0 means DefaultSamples.
	Samples int

	// WorldScale converts world units to Bohr radii; 0 means 1.
	WorldScale float64

	Palette colormap.Palette
}

// DefaultVolumeParams returns the initial three-quarter view.
func DefaultVolumeParams() VolumeParams {
	return VolumeParams{
		RotationX:  0.3,
		RotationY:  0.5,
		ColorScale: 1,
		Samples:    DefaultSamples,
		WorldScale: 1,
		Palette:    colormap.PaletteFire,
	}
}

// Validate rejects negative or non-finite parameters.
func (p VolumeParams) Validate() error {
	for name, v := range map[string]float64{
		"rotation x": p.RotationX, "rotation y": p.RotationY, "rotation z": p.RotationZ,
		"clip x": p.ClipX, "clip y": p.ClipY, "clip z": p.ClipZ,
		"color scale": p.ColorScale, "world scale": p.WorldScale,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidParams, name, v)
		}
	}
	switch {
	case p.ClipX < 0 || p.ClipY < 0 || p.ClipZ < 0:
		return fmt.Errorf("%w: clip fractions must be >= 0", ErrInvalidParams)
	case p.ColorScale < 0:
		return fmt.Errorf("%w: color scale %v < 0", ErrInvalidParams, p.ColorScale)
	case p.Samples < 0:
		return fmt.Errorf("%w: samples %d < 0", ErrInvalidParams, p.Samples)
	case p.WorldScale < 0:
		return fmt.Errorf("%w: world scale %v < 0", ErrInvalidParams, p.WorldScale)
	}
	return nil
}

// RenderVolume casts one ray per pixel through a cube of half-extent 5·n
// centered on the nucleus, compositing samples front to back over a black
// background. The state and parameters are validated before any work starts.
func RenderVolume(q orbital.QuantumState, width, height int, p VolumeParams) (*PixelBuffer, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := newMarcher(q, p)
	halfW := float64(width) / 2
	halfH := float64(height) / 2

	buf := NewPixelBuffer(width, height)
	forEachRow(height, func(y int) {
		sy := (float64(y) - halfH) / halfH
		for x := 0; x < width; x++ {
			sx := (float64(x) - halfW) / halfW
			buf.Set(x, y, m.cast(sx, sy, true, nil).color())
		}
	})
	return buf, nil
}

// rotation holds the sines and cosines of the three Euler angles.
type rotation struct {
	sinX, cosX float64
	sinY, cosY float64
	sinZ, cosZ float64
}

func newRotation(x, y, z float64) rotation {
	return rotation{
		sinX: math.Sin(x), cosX: math.Cos(x),
		sinY: math.Sin(y), cosY: math.Cos(y),
		sinZ: math.Sin(z), cosZ: math.Cos(z),
	}
}

// apply rotates about X, then Y, then Z.
func (r rotation) apply(x, y, z float64) (float64, float64, float64) {
	// X: rotate in the y-z plane
	y1 := y*r.cosX - z*r.sinX
	z1 := y*r.sinX + z*r.cosX

	// Y: rotate in the x-z plane
	x2 := x*r.cosY + z1*r.sinY
	z2 := -x*r.sinY + z1*r.cosY

	// Z: rotate in the x-y plane
	x3 := x2*r.cosZ - y1*r.sinZ
	y3 := x2*r.sinZ + y1*r.cosZ

	return x3, y3, z2
}

// sample is the composited result of one ray.
type sample struct {
	r, g, b, alpha float64
}

// color blends the accumulated color over the black background and
// converts it to bytes.
func (s sample) color() colormap.RGB {
	const bg = 0.0
	return colormap.RGB{
		R: toByte(s.r + (1-s.alpha)*bg),
		G: toByte(s.g + (1-s.alpha)*bg),
		B: toByte(s.b + (1-s.alpha)*bg),
	}
}

func toByte(c float64) uint8 {
	return uint8(math.Min(255, c*255))
}

// marcher holds everything a ray needs that does not change per pixel.
type marcher struct {
	q          orbital.QuantumState
	rot        rotation
	extent     float64
	samples    int
	gain       float64
	worldScale float64
	clip       [3]float64
	cmap       colormap.Map
}

func newMarcher(q orbital.QuantumState, p VolumeParams) *marcher {
	samples := p.Samples
	if samples == 0 {
		samples = DefaultSamples
	}
	worldScale := p.WorldScale
	if worldScale == 0 {
		worldScale = 1
	}
	return &marcher{
		q:          q,
		rot:        newRotation(p.RotationX, p.RotationY, p.RotationZ),
		extent:     ExtentPerN * float64(q.N),
		samples:    samples,
		gain:       LightingScale * p.ColorScale,
		worldScale: worldScale,
		clip:       [3]float64{p.ClipX, p.ClipY, p.ClipZ},
		cmap:       p.Palette.Map(),
	}
}

// clipped reports whether a rotated coordinate lies in the cut-away part of
// the cube for the given clip fraction.
func (m *marcher) clipped(coord, fraction float64) bool {
	if fraction <= clipThreshold {
		return false
	}
	if fraction >= 1 {
		return true
	}
	return math.Abs(coord) > m.extent*(1-fraction)
}

// cast marches the ray through screen position (sx, sy) in [-1, 1]², nearest
// sample first. With earlyExit the ray stops once opacity saturates. trace,
// if non-nil, sees the accumulated alpha after every depth step.
func (m *marcher) cast(sx, sy float64, earlyExit bool, trace func(step int, alpha float64)) sample {
	var acc sample
	wx := sx * m.extent
	wy := sy * m.extent
	n := float64(m.samples)

	for step := 0; step < m.samples; step++ {
		t := (float64(step) + 0.5) / n
		wz := (t - 0.5) * 2 * m.extent

		x, y, z := m.rot.apply(wx, wy, wz)
		if m.clipped(x, m.clip[0]) || m.clipped(y, m.clip[1]) || m.clipped(z, m.clip[2]) {
			if trace != nil {
				trace(step, acc.alpha)
			}
			continue
		}

		r := math.Sqrt(x*x + y*y + z*z)
		if r < minSampleRadius {
			if trace != nil {
				trace(step, acc.alpha)
			}
			continue
		}
		theta := math.Acos(clamp(y/r, -1, 1))
		phi := math.Atan2(z, x)

		intensity := clamp01(m.q.RawIntensity(r*m.worldScale, theta, phi) * m.gain)
		if intensity > minSampleIntensity {
			c := m.cmap.At(intensity)
			sr := float64(c.R) / 255
			sg := float64(c.G) / 255
			sb := float64(c.B) / 255

			a := math.Min(intensity*alphaGain/n, 1)
			acc.r += (1 - acc.alpha) * sr * a
			acc.g += (1 - acc.alpha) * sg * a
			acc.b += (1 - acc.alpha) * sb * a
			acc.alpha += (1 - acc.alpha) * a
		}

		if trace != nil {
			trace(step, acc.alpha)
		}
		if earlyExit && acc.alpha > opacityCutoff {
			break
		}
	}
	return acc
}
