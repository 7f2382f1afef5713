package sss

import "math"

// Truncation of the gaussian profile: rmax² = RMax2Constant·v encloses 99.8%
// of the untruncated energy.
const RMax2Constant = 12.46

// GaussianV maps a mean free path to the profile variance.
func GaussianV(l float64) float64 {
	return l * l
}

// GaussianRMax2 returns the squared radius of the profile's support.
func GaussianRMax2(v float64) float64 {
	return RMax2Constant * v
}

// GaussianR returns the remittance at radius r of a gaussian profile with
// variance v and albedo a, truncated to rmax² and renormalized so that it
// integrates to a over its disk.
func GaussianR(r, v, a float64) float64 {
	return a * GaussianPDF(r, v)
}

// GaussianPDF is the area density of radii drawn by GaussianSample.
func GaussianPDF(r, v float64) float64 {
	if v <= 0 {
		return 0
	}
	rmax2 := GaussianRMax2(v)
	r2 := r * r
	if r2 > rmax2 {
		return 0
	}
	norm := -math.Expm1(-rmax2 / (2 * v))
	return math.Exp(-r2/(2*v)) / (2 * math.Pi * v * norm)
}

// GaussianSample draws a radius in [0, rmax] for u in [0, 1).
func GaussianSample(v, u float64) float64 {
	rmax2 := GaussianRMax2(v)
	norm := -math.Expm1(-rmax2 / (2 * v))
	r2 := -2 * v * math.Log1p(-u*norm)
	return math.Sqrt(math.Min(r2, rmax2))
}

// GaussianCDF is the fraction of the truncated profile's energy within radius r.
func GaussianCDF(r, v float64) float64 {
	if v <= 0 {
		return 1
	}
	rmax2 := GaussianRMax2(v)
	r2 := math.Min(r*r, rmax2)
	return math.Expm1(-r2/(2*v)) / math.Expm1(-rmax2/(2*v))
}
