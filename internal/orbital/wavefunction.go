package orbital

import "math"

// BohrRadius is a₀ in atomic units.
const BohrRadius = 1.0

// RadialWave returns the normalized radial wavefunction R_{n,l}(r):
//
//	ρ    = 2r / (n·a₀)
//	norm = sqrt((2/(n·a₀))³ · Γ(n-l) / (2n·Γ(n+l+1)))
//	R    = norm · e^(-ρ/2) · ρ^l · L^{2l+1}_{n-l-1}(ρ)
func RadialWave(n, l int, r float64) float64 {
	nf := float64(n)
	rho := 2 * r / (nf * BohrRadius)

	norm := math.Sqrt(math.Pow(2/(nf*BohrRadius), 3) *
		Gamma(float64(n-l)) / (2 * nf * Gamma(float64(n+l+1))))

	lag := AssociatedLaguerre(n-l-1, float64(2*l+1), rho)
	return norm * math.Exp(-rho/2) * math.Pow(rho, float64(l)) * lag
}

// AngularFactor returns P_l^{|m|}(cos θ). It carries no azimuthal phase and
// no spherical-harmonic normalization.
func AngularFactor(l, m int, theta float64) float64 {
	return AssociatedLegendre(l, absInt(m), math.Cos(theta))
}

// HarmonicNorm is the squared spherical-harmonic normalization
// (2l+1)·Γ(l-|m|+1) / (4π·Γ(l+|m|+1)).
func HarmonicNorm(l, m int) float64 {
	am := absInt(m)
	return float64(2*l+1) * Gamma(float64(l-am+1)) / (4 * math.Pi * Gamma(float64(l+am+1)))
}

// RawIntensity returns R² · P_l^{|m|}(cos θ)². This is what the renderers
// draw: without the harmonic normalization relative contrast survives at
// large l and n. The density has no φ dependence.
//
// The caller must have validated (n, l, m).
func RawIntensity(n, l, m int, r, theta, phi float64) float64 {
	radial := RadialWave(n, l, r)
	angular := AngularFactor(l, m, theta)
	return radial * radial * angular * angular
}

// ProbabilityDensity returns |ψ|², i.e. RawIntensity scaled by the
// spherical-harmonic normalization. The caller must have validated (n, l, m).
func ProbabilityDensity(n, l, m int, r, theta, phi float64) float64 {
	return RawIntensity(n, l, m, r, theta, phi) * HarmonicNorm(l, m)
}

// RadialProbability returns r²·R_{n,l}(r)², the probability per unit radius.
func RadialProbability(n, l int, r float64) float64 {
	radial := RadialWave(n, l, r)
	return r * r * radial * radial
}

// RawIntensity evaluates the renderer intensity for q.
func (q QuantumState) RawIntensity(r, theta, phi float64) float64 {
	return RawIntensity(q.N, q.L, q.M, r, theta, phi)
}

// ProbabilityDensity evaluates |ψ|² for q.
func (q QuantumState) ProbabilityDensity(r, theta, phi float64) float64 {
	return ProbabilityDensity(q.N, q.L, q.M, r, theta, phi)
}
