package sss

import (
	"math"
	"testing"

	"github.com/df07/go-scattering/pkg/core"
)

func TestGaussianR_EnergyConservation(t *testing.T) {
	for _, l := range []float64{0.1, 1, 3} {
		v := GaussianV(l)
		rmax := math.Sqrt(GaussianRMax2(v))
		integral := integrateRadial(func(r float64) float64 {
			return GaussianR(r, v, 0.7)
		}, rmax, 200000)
		if math.Abs(integral-0.7) > 1e-3 {
			t.Errorf("l=%f: profile integrates to %f, expected 0.7", l, integral)
		}
	}
}

func TestGaussian_BoundedSupport(t *testing.T) {
	v := GaussianV(1)
	rmax := math.Sqrt(GaussianRMax2(v))
	if GaussianPDF(rmax*1.01, v) != 0 {
		t.Error("PDF should be zero outside the support disk")
	}
	if GaussianPDF(0, 0) != 0 {
		t.Error("Degenerate variance should have zero density")
	}

	ctx := core.NewSamplingContext(7, 0)
	for i := 0; i < 10000; i++ {
		r := GaussianSample(v, ctx.Next1D())
		if r < 0 || r > rmax {
			t.Fatalf("Sampled radius %f outside [0, %f]", r, rmax)
		}
	}
}

func TestGaussianSample_MatchesPDF(t *testing.T) {
	v := GaussianV(0.5)
	const n = 100000
	ctx := core.NewSamplingContext(3, 0)

	// Mean radius from samples vs. 2π∫ r² pdf dr
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += GaussianSample(v, ctx.Next1D())
	}
	mean := sum / n
	rmax := math.Sqrt(GaussianRMax2(v))
	expected := integrateRadial(func(r float64) float64 {
		return r * GaussianPDF(r, v)
	}, rmax, 100000)

	if math.Abs(mean-expected)/expected > 0.01 {
		t.Errorf("Mean sampled radius %f, expected %f", mean, expected)
	}
}

func TestGaussianCDF(t *testing.T) {
	v := GaussianV(0.8)
	rmax := math.Sqrt(GaussianRMax2(v))

	if GaussianCDF(0, v) != 0 {
		t.Errorf("Expected CDF(0) = 0, got %f", GaussianCDF(0, v))
	}
	if c := GaussianCDF(rmax*2, v); math.Abs(c-1) > 1e-12 {
		t.Errorf("Expected CDF beyond the support to be 1, got %f", c)
	}

	// Sampling inverts the CDF
	for _, u := range []float64{0.05, 0.3, 0.5, 0.9, 0.999} {
		r := GaussianSample(v, u)
		if c := GaussianCDF(r, v); math.Abs(c-u) > 1e-9 {
			t.Errorf("CDF(Sample(%f)) = %f", u, c)
		}
	}

	// And matches the integrated density
	half := rmax / 2
	integral := integrateRadial(func(r float64) float64 {
		return GaussianPDF(r, v)
	}, half, 20000)
	if math.Abs(integral-GaussianCDF(half, v)) > 1e-6 {
		t.Errorf("Integrated pdf %f, CDF %f", integral, GaussianCDF(half, v))
	}
}
