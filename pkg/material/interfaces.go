package material

import (
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/microfacet"
	"github.com/df07/go-scattering/pkg/spectrum"
)

// Lobe is one scattering component of a closure. Directions point away from
// the surface. Weights exclude Fresnel; the closure applies it.
type Lobe interface {
	Sample(wo core.Vec3, u core.Vec2) (microfacet.Sample, bool)

	// Evaluate returns f·|cos θi| and the pdf of sampling wi. Delta lobes return zeros.
	Evaluate(wo, wi core.Vec3) (value, pdf float64)

	IsDelta() bool
}

// ScatterResult contains the result of sampling a closure
type ScatterResult struct {
	Direction core.Vec3         // Sampled incoming direction
	Weight    spectrum.Spectrum // Throughput weight f·|cos|/pdf, Fresnel included
	PDF       float64           // Probability density function (0 for specular lobes)
	Component int               // Index of the closure component that was sampled
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}
