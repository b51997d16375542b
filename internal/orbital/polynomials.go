package orbital

import "math"

// nearIntegerTolerance decides when Gamma takes the exact factorial path.
const nearIntegerTolerance = 1e-9

// AssociatedLaguerre evaluates the generalized Laguerre polynomial L^alpha_k(x)
// with the three-term recurrence
//
//	L_j = ((2j-1+alpha-x)·L_{j-1} - (j-1+alpha)·L_{j-2}) / j
//
// seeded with L_0 = 1 and L_1 = 1+alpha-x.
func AssociatedLaguerre(k int, alpha, x float64) float64 {
	if k <= 0 {
		return 1
	}
	prev := 1.0
	cur := 1 + alpha - x
	for j := 2; j <= k; j++ {
		jf := float64(j)
		next := ((2*jf-1+alpha-x)*cur - (jf-1+alpha)*prev) / jf
		prev, cur = cur, next
	}
	return cur
}

// AssociatedLegendre evaluates P_l^m(x) for 0 <= m and x in [-1, 1],
// including the Condon-Shortley phase. P_l^m is identically zero for m > l.
func AssociatedLegendre(l, m int, x float64) float64 {
	if m < 0 || m > l {
		return 0
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// P_m^m = (-1)^m (2m-1)!! (1-x²)^(m/2)
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt((1 - x) * (1 + x))
		fact := 1.0
		for i := 1; i <= m; i++ {
			pmm *= -fact * somx2
			fact += 2
		}
	}
	if l == m {
		return pmm
	}

	pmmp1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pmmp1
	}

	var pll float64
	for ll := m + 2; ll <= l; ll++ {
		pll = (float64(2*ll-1)*x*pmmp1 - float64(ll+m-1)*pmm) / float64(ll-m)
		pmm, pmmp1 = pmmp1, pll
	}
	return pll
}

// Gamma returns Γ(x). Near-integer arguments use the exact factorial
// Γ(k) = (k-1)!, anything else the Stirling series with its first correction.
// Non-positive arguments return 1; validated quantum states never produce them.
func Gamma(x float64) float64 {
	if x <= 0 {
		return 1
	}
	k := math.Round(x)
	if math.Abs(x-k) < nearIntegerTolerance {
		result := 1.0
		for i := 2; i < int(k); i++ {
			result *= float64(i)
		}
		return result
	}
	return math.Sqrt(2*math.Pi/x) * math.Pow(x/math.E, x) * (1 + 1/(12*x))
}
