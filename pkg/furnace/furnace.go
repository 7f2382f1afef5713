// Package furnace verifies scattering models the way an integrator consumes
// them: by Monte Carlo estimating the energy they return under uniform
// illumination.
package furnace

import (
	"context"

	"github.com/df07/go-scattering/pkg/bssrdf"
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/material"
	"github.com/df07/go-scattering/pkg/spectrum"
)

// EstimateBSSRDFAlbedo integrates the model's remittance over the tangent
// plane of an entry point. Exit points are importance sampled by the model and
// weighted with the one-sample MIS density over all channels, so each channel
// of the mean converges to that channel's albedo.
//
// values must have been prepared with EvaluateInputs; it is shared read-only
// by the workers.
func EstimateBSSRDFAlbedo(ctx context.Context, model bssrdf.BSSRDF, values *bssrdf.InputValues, cfg Config) (Result, error) {
	channels := values.Reflectance.Size()
	up := core.NewVec3(0, 0, 1)
	frame := core.NewFrame(up)
	entry := core.ShadingPoint{Normal: up}

	return runTasks(ctx, cfg, channels, func(sc *core.SamplingContext, stats *Accumulator) {
		s, ok := model.Sample(values, sc)
		if !ok {
			stats.AddFailure()
			return
		}

		exit := core.ShadingPoint{Point: frame.PointOnPlane(entry.Point, s.Point), Normal: up}
		r := s.Point.Length()

		pdf := 0.0
		for c := 0; c < channels; c++ {
			pdf += model.PDF(values, c, r)
		}
		pdf /= float64(channels)
		if pdf <= 0 {
			stats.AddFailure()
			return
		}

		value := model.Evaluate(values, &entry, &exit, up, up)
		stats.AddSample(value.Scale(float32(1 / pdf)))
	})
}

// EstimateClosureEnergy returns the mean sampled throughput of a closure for
// the view direction wo. For a lossless closure this approaches the total
// component weight.
func EstimateClosureEnergy(ctx context.Context, closure *material.Closure, wo core.Vec3, cfg Config) (Result, error) {
	return runTasks(ctx, cfg, spectrum.RGBSize, func(sc *core.SamplingContext, stats *Accumulator) {
		result, ok := closure.Sample(wo, sc.Next3D())
		if !ok {
			stats.AddFailure()
			return
		}
		stats.AddSample(result.Weight)
	})
}
