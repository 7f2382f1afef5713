package furnace

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/df07/go-scattering/pkg/bssrdf"
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/material"
	"github.com/df07/go-scattering/pkg/microfacet"
	"github.com/df07/go-scattering/pkg/modeling"
	"github.com/df07/go-scattering/pkg/spectrum"
	"github.com/google/go-cmp/cmp"
)

var testConfig = Config{Workers: 4, Tasks: 16, SamplesPerTask: 2000, Seed: 42}

func prepare(t *testing.T, model string, params modeling.Params) (bssrdf.BSSRDF, *bssrdf.InputValues) {
	t.Helper()
	factory, err := bssrdf.NewRegistry().Lookup(model)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	m, err := factory.Create("furnace", params)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	values := &bssrdf.InputValues{}
	m.EvaluateInputs(&core.ShadingPoint{}, values)
	return m, values
}

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator(spectrum.RGBSize)
	for _, v := range []float32{1, 2, 3, 4} {
		acc.AddSample(spectrum.NewRGB(v, 2*v, 0))
	}
	acc.AddFailure()

	if acc.Count() != 5 || acc.Failures() != 1 {
		t.Fatalf("Expected 5 samples with 1 failure, got %d/%d", acc.Count(), acc.Failures())
	}

	want := []float64{2, 4, 0}
	if diff := cmp.Diff(want, acc.Mean()); diff != "" {
		t.Errorf("Mean mismatch (-want +got):\n%s", diff)
	}

	// Samples 1,2,3,4,0: variance = (30 - 5*4)/4
	if v := acc.Variance()[0]; math.Abs(v-2.5) > 1e-12 {
		t.Errorf("Expected variance 2.5, got %f", v)
	}
	if se := acc.StdErr()[0]; math.Abs(se-math.Sqrt(0.5)) > 1e-12 {
		t.Errorf("Expected standard error %f, got %f", math.Sqrt(0.5), se)
	}

	other := NewAccumulator(spectrum.RGBSize)
	other.AddSample(spectrum.NewRGB(10, 0, 0))
	acc.Merge(other)
	if acc.Count() != 6 || math.Abs(acc.Mean()[0]-20.0/6) > 1e-12 {
		t.Errorf("Unexpected merge result: count %d mean %v", acc.Count(), acc.Mean())
	}
}

func TestBSSRDFAlbedo(t *testing.T) {
	params := modeling.Params{
		"reflectance":    "0.3 0.5 0.8",
		"mean_free_path": "0.5 1 2",
		"from_ior":       "1",
		"to_ior":         "1.3",
	}

	for _, model := range []string{bssrdf.NormalizedDiffusionModel, bssrdf.GaussianModel} {
		t.Run(model, func(t *testing.T) {
			m, values := prepare(t, model, params)
			result, err := EstimateBSSRDFAlbedo(context.Background(), m, values, testConfig)
			if err != nil {
				t.Fatalf("Estimate failed: %v", err)
			}
			if result.Samples != testConfig.Tasks*testConfig.SamplesPerTask {
				t.Errorf("Expected %d samples, got %d", testConfig.Tasks*testConfig.SamplesPerTask, result.Samples)
			}
			if result.Failures != 0 {
				t.Errorf("Expected no failures, got %d", result.Failures)
			}

			for c := 0; c < spectrum.RGBSize; c++ {
				albedo := float64(values.Reflectance.At(c))
				tolerance := 5*result.StdErr[c] + 2e-3
				if math.Abs(result.Mean[c]-albedo) > tolerance {
					t.Errorf("Channel %d: estimated %f ± %f, expected albedo %f", c, result.Mean[c], result.StdErr[c], albedo)
				}
			}
		})
	}
}

func TestBSSRDFAlbedoUniformInputs(t *testing.T) {
	m, values := prepare(t, bssrdf.NormalizedDiffusionModel, modeling.Params{
		"reflectance":    "0.5",
		"mean_free_path": "1.0",
		"from_ior":       "1.0",
		"to_ior":         "1.3",
	})

	// With identical channels the MIS weight cancels the profile exactly
	result, err := EstimateBSSRDFAlbedo(context.Background(), m, values, Config{Workers: 2, Tasks: 4, SamplesPerTask: 500, Seed: 1})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	for c, mean := range result.Mean {
		if math.Abs(mean-0.5) > 1e-5 {
			t.Errorf("Channel %d: expected 0.5, got %f", c, mean)
		}
	}
}

func TestDeterministicAcrossWorkers(t *testing.T) {
	m, values := prepare(t, bssrdf.NormalizedDiffusionModel, modeling.Params{
		"reflectance":    "0.2 0.6 0.9",
		"mean_free_path": "1 0.25 3",
		"from_ior":       "1",
		"to_ior":         "1.3",
	})

	var results []Result
	for _, workers := range []int{1, 3, 16} {
		cfg := testConfig
		cfg.Workers = workers
		cfg.SamplesPerTask = 300
		result, err := EstimateBSSRDFAlbedo(context.Background(), m, values, cfg)
		if err != nil {
			t.Fatalf("Estimate with %d workers failed: %v", workers, err)
		}
		results = append(results, result)
	}

	for i := 1; i < len(results); i++ {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Errorf("Results differ between worker counts (-first +other):\n%s", diff)
		}
	}

	cfg := testConfig
	cfg.Seed = 7
	cfg.SamplesPerTask = 300
	other, _ := EstimateBSSRDFAlbedo(context.Background(), m, values, cfg)
	if cmp.Equal(results[0].Mean, other.Mean) {
		t.Error("A different seed should change the estimate")
	}
}

func TestGaussianFailuresAreCounted(t *testing.T) {
	m, values := prepare(t, bssrdf.GaussianModel, modeling.Params{
		"reflectance":    "0.5 0 0.5",
		"mean_free_path": "1",
		"from_ior":       "1",
		"to_ior":         "1.3",
	})

	result, err := EstimateBSSRDFAlbedo(context.Background(), m, values, testConfig)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	rate := float64(result.Failures) / float64(result.Samples)
	if math.Abs(rate-1.0/3) > 0.02 {
		t.Errorf("Expected a third of the samples to fail, got %f", rate)
	}
	if result.Mean[1] != 0 {
		t.Errorf("Dark channel should estimate zero, got %f", result.Mean[1])
	}
}

func TestClosureEnergy(t *testing.T) {
	n := core.NewVec3(0, 0, 1)
	sp := &core.ShadingPoint{Normal: n, MediumIOR: 1, HasMediumIOR: true}

	tests := []struct {
		name     string
		glass    *material.Glass
		wo       core.Vec3
		min, max float64
	}{
		{"specular normal incidence", material.NewDefaultGlass(), n, 1 - 1e-5, 1 + 1e-5},
		{"specular oblique", material.NewDefaultGlass(), core.NewVec3(0.6, 0, 0.8), 1 - 1e-5, 1 + 1e-5},
		{"rough ggx", material.NewGlass(microfacet.GGX, 0.3, 1.5), core.NewVec3(0.3, 0, 0.95).Normalize(), 0.85, 1.01},
		{"rough beckmann", material.NewGlass(microfacet.Beckmann, 0.3, 1.5), core.NewVec3(0.3, 0, 0.95).Normalize(), 0.85, 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closure := tt.glass.Closure(sp, tt.wo)
			result, err := EstimateClosureEnergy(context.Background(), &closure, tt.wo, Config{Workers: 4, Tasks: 8, SamplesPerTask: 2000, Seed: 3})
			if err != nil {
				t.Fatalf("Estimate failed: %v", err)
			}
			for c, mean := range result.Mean {
				if mean < tt.min || mean > tt.max {
					t.Errorf("Channel %d: energy %f outside [%f, %f]", c, mean, tt.min, tt.max)
				}
			}
		})
	}
}

func TestCancellation(t *testing.T) {
	m, values := prepare(t, bssrdf.NormalizedDiffusionModel, modeling.Params{
		"reflectance": "0.5", "mean_free_path": "1", "from_ior": "1", "to_ior": "1.3",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := EstimateBSSRDFAlbedo(ctx, m, values, testConfig); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no tasks", Config{Tasks: 0, SamplesPerTask: 10}},
		{"no samples", Config{Tasks: 4, SamplesPerTask: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}
