package orbital

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrNilRandSource is returned when Sample is called without a random source.
	ErrNilRandSource = errors.New("nil random source")

	// ErrNegativeCount is returned for a negative sample count.
	ErrNegativeCount = errors.New("sample count must be >= 0")

	// ErrDegenerateDensity is returned when the estimation pass saw no
	// positive density, so no acceptance threshold exists.
	ErrDegenerateDensity = errors.New("density vanished over all proposals")
)

// Point is a sampled electron position in Cartesian coordinates (z is the
// polar axis) together with |ψ|² at that position.
type Point struct {
	X, Y, Z float64
	Density float64
}

// Sample draws exactly count points distributed according to |ψ|² by
// rejection sampling. Proposals use an exponential radial prior
// r = -n²·ln(U) and an isotropic angular prior. A first pass over count
// proposals estimates the maximum density; the second pass accepts each
// proposal with probability density/max until count points are collected.
//
// The output is deterministic for a deterministic rng.
func Sample(q QuantumState, count int, rng *rand.Rand) ([]Point, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	if rng == nil {
		return nil, ErrNilRandSource
	}
	if count == 0 {
		return []Point{}, nil
	}

	maxDensity := 0.0
	for i := 0; i < count; i++ {
		p := propose(q, rng)
		if p.Density > maxDensity {
			maxDensity = p.Density
		}
	}
	if maxDensity <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateDensity, q)
	}

	points := make([]Point, 0, count)
	for len(points) < count {
		p := propose(q, rng)
		if rng.Float64() < p.Density/maxDensity {
			points = append(points, p)
		}
	}
	return points, nil
}

// propose draws one candidate from the prior.
func propose(q QuantumState, rng *rand.Rand) Point {
	nf := float64(q.N)
	// 1-U lies in (0, 1], keeping the log finite
	r := -nf * nf * math.Log(1-rng.Float64())
	theta := math.Acos(2*rng.Float64() - 1)
	phi := 2 * math.Pi * rng.Float64()

	sinT := math.Sin(theta)
	return Point{
		X:       r * sinT * math.Cos(phi),
		Y:       r * sinT * math.Sin(phi),
		Z:       r * math.Cos(theta),
		Density: q.ProbabilityDensity(r, theta, phi),
	}
}
