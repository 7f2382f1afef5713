package bssrdf

import (
	"math"

	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/spectrum"
	"github.com/df07/go-scattering/pkg/sss"
)

// GaussianModel is the identifier of the gaussian BSSRDF
const GaussianModel = "gaussian_bssrdf"

// Gaussian is a BSSRDF with a truncated gaussian profile. Its support is a
// finite disk, so sampling can fail.
type Gaussian struct {
	base
}

// NewGaussian creates a model with unbound inputs
func NewGaussian(name string) *Gaussian {
	return &Gaussian{base: newBase(name)}
}

// Model implements BSSRDF
func (m *Gaussian) Model() string {
	return GaussianModel
}

// Evaluate implements BSSRDF
func (m *Gaussian) Evaluate(values *InputValues, outgoing, incoming *core.ShadingPoint, wo, wi core.Vec3) spectrum.Spectrum {
	checkReady(values)

	dist := incoming.Point.Subtract(outgoing.Point).Length()
	size := values.Reflectance.Size()
	value := spectrum.Constant(size, 0)
	for i := 0; i < size; i++ {
		v := sss.GaussianV(float64(values.MeanFreePath.At(i)))
		value.Set(i, float32(sss.GaussianR(dist, v, float64(values.Reflectance.At(i)))))
	}
	return value
}

// Sample implements BSSRDF. It fails for channels without remittance.
func (m *Gaussian) Sample(values *InputValues, ctx *core.SamplingContext) (Sample, bool) {
	checkReady(values)

	u := forkSample(ctx)
	channel := pickChannel(u.X, values.Reflectance.Size())

	if values.Reflectance.At(channel) <= 0 {
		return Sample{}, false
	}
	v := sss.GaussianV(float64(values.MeanFreePath.At(channel)))
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return Sample{}, false
	}

	radius := sss.GaussianSample(v, u.Y)
	phi := 2 * math.Pi * u.Z

	return Sample{
		IsDirectional: false,
		Eta:           eta(values),
		Channel:       channel,
		Point:         core.NewVec2(radius*math.Cos(phi), radius*math.Sin(phi)),
	}, true
}

// PDF implements BSSRDF
func (m *Gaussian) PDF(values *InputValues, channel int, dist float64) float64 {
	checkReady(values)
	assert(channel >= 0 && channel < values.Reflectance.Size(), "bssrdf: channel out of range")

	return sss.GaussianPDF(dist, sss.GaussianV(float64(values.MeanFreePath.At(channel))))
}

// MaxRadius returns the radius of the profile's support
func (m *Gaussian) MaxRadius(values *InputValues, channel int) float64 {
	v := sss.GaussianV(float64(values.MeanFreePath.At(channel)))
	return math.Sqrt(sss.GaussianRMax2(v))
}
