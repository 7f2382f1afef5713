package bssrdf

import (
	"math"

	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/spectrum"
	"github.com/df07/go-scattering/pkg/sss"
)

// NormalizedDiffusionModel is the identifier of the normalized diffusion BSSRDF
const NormalizedDiffusionModel = "normalized_diffusion_bssrdf"

// NormalizedDiffusion is a purely spatial BSSRDF built on the Christensen-Burley
// profile. Sampling never fails.
type NormalizedDiffusion struct {
	base
}

// NewNormalizedDiffusion creates a model with unbound inputs
func NewNormalizedDiffusion(name string) *NormalizedDiffusion {
	return &NormalizedDiffusion{base: newBase(name)}
}

// Model implements BSSRDF
func (m *NormalizedDiffusion) Model() string {
	return NormalizedDiffusionModel
}

// Evaluate implements BSSRDF
func (m *NormalizedDiffusion) Evaluate(values *InputValues, outgoing, incoming *core.ShadingPoint, wo, wi core.Vec3) spectrum.Spectrum {
	checkReady(values)

	dist := incoming.Point.Subtract(outgoing.Point).Length()
	size := values.Reflectance.Size()
	value := spectrum.Constant(size, 0)
	for i := 0; i < size; i++ {
		a := float64(values.Reflectance.At(i))
		l := float64(values.MeanFreePath.At(i))
		value.Set(i, float32(sss.NormalizedDiffusionR(dist, l, sss.NormalizedDiffusionS(a), a)))
	}
	return value
}

// Sample implements BSSRDF
func (m *NormalizedDiffusion) Sample(values *InputValues, ctx *core.SamplingContext) (Sample, bool) {
	checkReady(values)

	u := forkSample(ctx)
	channel := pickChannel(u.X, values.Reflectance.Size())

	a := float64(values.Reflectance.At(channel))
	l := float64(values.MeanFreePath.At(channel))
	radius := sss.NormalizedDiffusionSample(sss.NormalizedDiffusionS(a), l, u.Y)
	phi := 2 * math.Pi * u.Z

	return Sample{
		IsDirectional: false,
		Eta:           eta(values),
		Channel:       channel,
		Point:         core.NewVec2(radius*math.Cos(phi), radius*math.Sin(phi)),
	}, true
}

// PDF implements BSSRDF
func (m *NormalizedDiffusion) PDF(values *InputValues, channel int, dist float64) float64 {
	checkReady(values)
	assert(channel >= 0 && channel < values.Reflectance.Size(), "bssrdf: channel out of range")

	a := float64(values.Reflectance.At(channel))
	l := float64(values.MeanFreePath.At(channel))
	return sss.NormalizedDiffusionPDF(dist, sss.NormalizedDiffusionS(a), l)
}

// MaxRadius returns the radius enclosing nearly all of the channel's energy,
// for bounding probe rays.
func (m *NormalizedDiffusion) MaxRadius(values *InputValues, channel int) float64 {
	a := float64(values.Reflectance.At(channel))
	l := float64(values.MeanFreePath.At(channel))
	return sss.NormalizedDiffusionMaxRadius(l, sss.NormalizedDiffusionS(a))
}
