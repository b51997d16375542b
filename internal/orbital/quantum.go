// Package orbital evaluates hydrogen-atom wavefunctions and the scalar
// intensities derived from them.
package orbital

import (
	"errors"
	"fmt"
)

// ErrInvalidQuantumState is returned when (n, l, m) violates
// n >= 1, 0 <= l <= n-1, |m| <= l.
var ErrInvalidQuantumState = errors.New("invalid quantum state")

// RydbergEnergy is the hydrogen ground-state binding energy in eV.
const RydbergEnergy = 13.6

// subshellLetters are the spectroscopic letters for l = 0, 1, 2, ...
const subshellLetters = "spdfghiklmnoqrtuvwxyz"

// QuantumState identifies a hydrogen orbital.
type QuantumState struct {
	N int // principal
	L int // angular momentum
	M int // magnetic
}

// GroundState is the 1s orbital.
var GroundState = QuantumState{N: 1, L: 0, M: 0}

// Validate checks the range constraints on n, l and m.
// Invalid states are rejected, never clamped.
func Validate(n, l, m int) error {
	switch {
	case n < 1:
		return fmt.Errorf("%w: n=%d must be >= 1", ErrInvalidQuantumState, n)
	case l < 0 || l > n-1:
		return fmt.Errorf("%w: l=%d must be in [0, %d] for n=%d", ErrInvalidQuantumState, l, n-1, n)
	case absInt(m) > l:
		return fmt.Errorf("%w: m=%d must be in [-%d, %d]", ErrInvalidQuantumState, m, l, l)
	}
	return nil
}

// Validate checks the range constraints of q.
func (q QuantumState) Validate() error {
	return Validate(q.N, q.L, q.M)
}

// String returns e.g. "(n=2, l=1, m=0)".
func (q QuantumState) String() string {
	return fmt.Sprintf("(n=%d, l=%d, m=%d)", q.N, q.L, q.M)
}

// Label returns the spectroscopic name of the orbital, e.g. "2p" or "3d".
func (q QuantumState) Label() string {
	if q.L < 0 || q.L >= len(subshellLetters) {
		return fmt.Sprintf("%d[l=%d]", q.N, q.L)
	}
	return fmt.Sprintf("%d%c", q.N, subshellLetters[q.L])
}

// Energy returns the Bohr energy level of the state in eV.
func (q QuantumState) Energy() float64 {
	return Energy(q.N)
}

// RadialNodes is the number of spherical nodal surfaces, n-l-1.
func (q QuantumState) RadialNodes() int {
	return q.N - q.L - 1
}

// AngularNodes is the number of nodal cones/planes, l.
func (q QuantumState) AngularNodes() int {
	return q.L
}

// Energy returns -13.6/n² eV.
func Energy(n int) float64 {
	if n < 1 {
		return 0
	}
	return -RydbergEnergy / float64(n*n)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
