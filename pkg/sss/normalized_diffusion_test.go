package sss

import (
	"math"
	"sort"
	"testing"

	"github.com/df07/go-scattering/pkg/core"
)

// integrateRadial computes 2π∫ r·f(r) dr over [0, rmax] with Simpson's rule
func integrateRadial(f func(r float64) float64, rmax float64, steps int) float64 {
	h := rmax / float64(steps)
	sum := 0.0
	for i := 0; i <= steps; i++ {
		r := float64(i) * h
		w := 2.0
		if i == 0 || i == steps {
			w = 1
		} else if i%2 == 1 {
			w = 4
		}
		sum += w * r * f(r)
	}
	return 2 * math.Pi * sum * h / 3
}

var profileCases = []struct {
	name string
	a    float64
	l    float64
}{
	{"dark short", 0.05, 0.1},
	{"mid unit", 0.5, 1.0},
	{"bright long", 0.95, 4.0},
	{"skin-like", 0.8, 0.25},
}

func TestNormalizedDiffusionS_Monotonic(t *testing.T) {
	prev := NormalizedDiffusionS(0.01)
	for a := 0.02; a < 0.8; a += 0.01 {
		s := NormalizedDiffusionS(a)
		if s >= prev {
			t.Fatalf("Shape parameter should decrease with albedo below 0.8: s(%f)=%f, previous %f", a, s, prev)
		}
		if s <= 0 {
			t.Fatalf("Shape parameter must be positive, got %f at a=%f", s, a)
		}
		prev = s
	}
}

func TestNormalizedDiffusionR_EnergyConservation(t *testing.T) {
	for _, tc := range profileCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NormalizedDiffusionS(tc.a)
			d := tc.l / s
			integral := integrateRadial(func(r float64) float64 {
				return NormalizedDiffusionR(r, tc.l, s, tc.a)
			}, 80*d, 400000)

			if rel := math.Abs(integral-tc.a) / tc.a; rel > 1e-3 {
				t.Errorf("Profile integrates to %f, expected albedo %f (rel err %e)", integral, tc.a, rel)
			}
		})
	}
}

func TestNormalizedDiffusionPDF_Normalized(t *testing.T) {
	for _, tc := range profileCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NormalizedDiffusionS(tc.a)
			d := tc.l / s
			integral := integrateRadial(func(r float64) float64 {
				return NormalizedDiffusionPDF(r, s, tc.l)
			}, 80*d, 400000)

			if math.Abs(integral-1) > 1e-3 {
				t.Errorf("PDF integrates to %f, expected 1", integral)
			}
		})
	}
}

func TestNormalizedDiffusionR_Shape(t *testing.T) {
	const a, l = 0.5, 1.0
	s := NormalizedDiffusionS(a)

	peak := NormalizedDiffusionR(0, l, s, a)
	if math.IsInf(peak, 0) || math.IsNaN(peak) || peak <= 0 {
		t.Fatalf("Profile at r=0 must be finite and positive, got %f", peak)
	}

	prev := peak
	for r := 0.001; r < 50; r *= 1.5 {
		v := NormalizedDiffusionR(r, l, s, a)
		if v > prev {
			t.Fatalf("Profile increases at r=%f: %e > %e", r, v, prev)
		}
		prev = v
	}
	if far := NormalizedDiffusionR(1000, l, s, a); far > 1e-100 {
		t.Errorf("Profile should vanish far from the entry point, got %e", far)
	}

	mid := NormalizedDiffusionR(0.5, l, s, a)
	if !(mid > 0 && mid < peak) {
		t.Errorf("Profile at r=0.5 (%e) should lie strictly between 0 and the peak %e", mid, peak)
	}
}

func TestNormalizedDiffusionSample_InvertsCDF(t *testing.T) {
	for _, tc := range profileCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NormalizedDiffusionS(tc.a)
			for _, u := range []float64{1e-9, 1e-4, 0.01, 0.1, 0.3, 0.5, 0.7, 0.9, 0.99, 0.999999} {
				r := NormalizedDiffusionSample(s, tc.l, u)
				if r < 0 || math.IsInf(r, 0) || math.IsNaN(r) {
					t.Fatalf("Invalid radius %f for u=%g", r, u)
				}
				got := NormalizedDiffusionCDF(r, s, tc.l)
				if math.Abs(got-u) > 1e-9*math.Max(1, u) && math.Abs(got-u)/u > 1e-6 {
					t.Errorf("CDF(sample(%g)) = %.12g", u, got)
				}
			}
		})
	}
}

func TestNormalizedDiffusionSample_Edges(t *testing.T) {
	s := NormalizedDiffusionS(0.5)
	if r := NormalizedDiffusionSample(s, 1, 0); r != 0 {
		t.Errorf("u=0 should map to r=0, got %f", r)
	}
	if r := NormalizedDiffusionSample(s, 1, 1); math.IsInf(r, 0) || math.IsNaN(r) {
		t.Errorf("u=1 should stay finite, got %f", r)
	}
}

func TestNormalizedDiffusionSample_MatchesPDF(t *testing.T) {
	const a, l = 0.5, 1.0
	const n = 200000
	s := NormalizedDiffusionS(a)
	ctx := core.NewSamplingContext(42, 0)

	radii := make([]float64, n)
	for i := range radii {
		radii[i] = NormalizedDiffusionSample(s, l, ctx.Next1D())
	}
	sort.Float64s(radii)

	// Kolmogorov-Smirnov statistic against the CDF implied by the PDF
	maxDiff := 0.0
	for i, r := range radii {
		cdf := NormalizedDiffusionCDF(r, s, l)
		lo := math.Abs(cdf - float64(i)/n)
		hi := math.Abs(cdf - float64(i+1)/n)
		maxDiff = math.Max(maxDiff, math.Max(lo, hi))
	}
	// Critical value at alpha=0.001 is 1.95/sqrt(n)
	if limit := 1.95 / math.Sqrt(n); maxDiff > limit {
		t.Errorf("KS statistic %f exceeds %f", maxDiff, limit)
	}

	// Radial density check in a few bins: 2π r pdf integrated over the bin
	bins := []float64{0, 0.05, 0.2, 0.5, 1, 2, 5}
	for b := 0; b+1 < len(bins); b++ {
		lo, hi := bins[b], bins[b+1]
		count := sort.SearchFloat64s(radii, hi) - sort.SearchFloat64s(radii, lo)
		expected := integrateRadial(func(r float64) float64 {
			if r < lo {
				return 0
			}
			return NormalizedDiffusionPDF(r, s, l)
		}, hi, 20000) * n
		if math.Abs(float64(count)-expected) > 5*math.Sqrt(expected)+1e-3*n {
			t.Errorf("Bin [%g,%g): %d samples, expected %.0f", lo, hi, count, expected)
		}
	}
}

func TestNormalizedDiffusionMaxRadius(t *testing.T) {
	s := NormalizedDiffusionS(0.5)
	rmax := NormalizedDiffusionMaxRadius(1, s)
	if got := NormalizedDiffusionCDF(rmax, s, 1); math.Abs(got-0.999) > 1e-9 {
		t.Errorf("CDF at max radius = %f, expected 0.999", got)
	}
}
