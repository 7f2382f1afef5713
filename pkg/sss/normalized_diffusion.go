// Package sss holds the closed-form radial profiles used by the subsurface
// scattering models. All functions work in float64 regardless of how the
// callers store their spectral inputs.
//
// Normalized diffusion follows Christensen and Burley, "Approximate
// Reflectance Profiles for Efficient Subsurface Scattering" (2015), using the
// mean free path parameterization.
package sss

import "math"

// Radii below l*minRadiusFraction are clamped so that the 1/r profile keeps a
// finite maximum at the entry point.
const minRadiusFraction = 1e-5

// Newton polishing of the analytic inverse CDF.
const (
	sampleIterations = 4
	sampleTolerance  = 1e-12
)

// maxSampleU keeps the inverse CDF finite.
var maxSampleU = math.Nextafter(1, 0)

// NormalizedDiffusionS maps a surface albedo to the profile shape parameter
// (searchlight configuration fit).
func NormalizedDiffusionS(a float64) float64 {
	t := math.Abs(a - 0.8)
	return 1.85 - a + 7*t*t*t
}

// NormalizedDiffusionR returns the radial diffuse remittance at distance r for
// mean free path l, shape s and albedo a. 2π∫r·R(r)dr = a.
func NormalizedDiffusionR(r, l, s, a float64) float64 {
	return a * NormalizedDiffusionPDF(r, s, l)
}

// NormalizedDiffusionCDF is the fraction of remitted energy within radius r.
func NormalizedDiffusionCDF(r, s, l float64) float64 {
	d := l / s
	// -expm1 avoids cancellation for small radii
	return -0.25*math.Expm1(-r/d) - 0.75*math.Expm1(-r/(3*d))
}

// NormalizedDiffusionPDF is the area density of radii drawn by
// NormalizedDiffusionSample, i.e. the profile divided by the albedo.
func NormalizedDiffusionPDF(r, s, l float64) float64 {
	d := l / s
	r = math.Max(r, l*minRadiusFraction)
	return (math.Exp(-r/d) + math.Exp(-r/(3*d))) / (8 * math.Pi * d * r)
}

// NormalizedDiffusionSample inverts the radial CDF for u in [0, 1).
func NormalizedDiffusionSample(s, l, u float64) float64 {
	u = math.Min(math.Max(u, 0), maxSampleU)
	if u == 0 {
		return 0
	}

	d := l / s
	q := 1 - u

	// With x = exp(-r/3d) the CDF becomes the depressed cubic x³ + 3x - 4q = 0,
	// whose real root is t - 1/t with t = cbrt(2q + sqrt(4q² + 1)).
	t := math.Cbrt(2*q + math.Sqrt(4*q*q+1))
	x := t - 1/t
	var r float64
	switch {
	case x <= 0:
		r = -3 * d * math.Log(4*q/3) // tail dominated by the slow exponential
	case x >= 1:
		r = 2 * d * u // CDF'(0) = 1/(2d)
	default:
		r = -3 * d * math.Log(x)
	}

	for i := 0; i < sampleIterations; i++ {
		e1 := math.Exp(-r / d)
		e3 := math.Exp(-r / (3 * d))
		deriv := (e1 + e3) / (4 * d)
		if deriv <= 0 {
			break
		}

		var f float64
		if u < 0.5 {
			f = NormalizedDiffusionCDF(r, s, l) - u
		} else {
			f = q - (0.25*e1 + 0.75*e3)
		}

		step := f / deriv
		r = math.Max(r-step, 0)
		if math.Abs(step) <= sampleTolerance*math.Max(r, d) {
			break
		}
	}
	return r
}

// NormalizedDiffusionMaxRadius returns the radius enclosing 99.9% of the
// remitted energy.
func NormalizedDiffusionMaxRadius(l, s float64) float64 {
	return NormalizedDiffusionSample(s, l, 0.999)
}
