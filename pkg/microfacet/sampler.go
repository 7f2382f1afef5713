package microfacet

import (
	"math"

	"github.com/df07/go-scattering/pkg/core"
)

// Sample is a sampled incoming direction and its throughput weight
// (f·|cos|/pdf, Fresnel excluded).
type Sample struct {
	Direction core.Vec3
	Weight    float64
	PDF       float64 // Solid-angle density; zero for delta samples
	Delta     bool
}

// localFrame builds a frame around n flipped to the side of wo, and returns wo in it.
func localFrame(wo, n core.Vec3) (core.Frame, core.Vec3) {
	if wo.Dot(n) < 0 {
		n = n.Negate()
	}
	frame := core.NewFrame(n)
	return frame, frame.ToLocal(wo)
}

// SampleReflection samples a reflected direction around normal n.
// wo points away from the surface.
func SampleReflection(dist Distribution, wo, n core.Vec3, roughness float64, u core.Vec2) (Sample, bool) {
	if dist.IsDelta() {
		return Sample{Direction: core.Reflect(wo, n), Weight: 1, Delta: true}, true
	}

	frame, lo := localFrame(wo, n)
	if lo.Z <= 0 {
		return Sample{}, false
	}

	alpha := Alpha(roughness)
	h := dist.SampleHalf(u, alpha)
	oh := lo.Dot(h)
	if oh <= 0 {
		return Sample{}, false
	}

	li := core.Reflect(lo, h)
	if li.Z <= 0 {
		return Sample{}, false
	}

	return Sample{
		Direction: frame.ToWorld(li),
		Weight:    oh * dist.G(lo, li, alpha) / (lo.Z * h.Z),
		PDF:       dist.HalfPDF(h, alpha) / (4 * oh),
	}, true
}

// SampleRefraction samples a transmitted direction through normal n.
// eta is the IOR on wo's side over the IOR on the transmitted side.
func SampleRefraction(dist Distribution, wo, n core.Vec3, roughness, eta float64, u core.Vec2) (Sample, bool) {
	if dist.IsDelta() {
		wi, ok := core.Refract(wo, n, eta)
		if !ok {
			return Sample{}, false
		}
		return Sample{Direction: wi, Weight: 1, Delta: true}, true
	}

	frame, lo := localFrame(wo, n)
	if lo.Z <= 0 {
		return Sample{}, false
	}

	alpha := Alpha(roughness)
	h := dist.SampleHalf(u, alpha)
	oh := lo.Dot(h)
	if oh <= 0 {
		return Sample{}, false
	}

	li, ok := core.Refract(lo, h, eta)
	if !ok || li.Z >= 0 {
		return Sample{}, false
	}

	ih := li.Dot(h)
	denom := eta*oh + ih
	pdf := 0.0
	if denom != 0 {
		pdf = dist.HalfPDF(h, alpha) * math.Abs(ih) / (denom * denom)
	}

	return Sample{
		Direction: frame.ToWorld(li),
		Weight:    oh * dist.G(lo, li, alpha) / (lo.Z * h.Z),
		PDF:       pdf,
	}, true
}

// EvaluateReflection returns f·|cos θi| and the solid-angle pdf of sampling wi
// with SampleReflection. Delta distributions evaluate to zero.
func EvaluateReflection(dist Distribution, wo, wi, n core.Vec3, roughness float64) (value, pdf float64) {
	if dist.IsDelta() {
		return 0, 0
	}

	frame, lo := localFrame(wo, n)
	li := frame.ToLocal(wi)
	if lo.Z <= 0 || li.Z <= 0 {
		return 0, 0
	}

	h := lo.Add(li).Normalize()
	oh := lo.Dot(h)
	if oh <= 0 {
		return 0, 0
	}

	alpha := Alpha(roughness)
	d := dist.D(h, alpha)
	value = d * dist.G(lo, li, alpha) / (4 * lo.Z)
	pdf = d * h.Z / (4 * oh)
	return value, pdf
}

// EvaluateRefraction returns f·|cos θi| and the solid-angle pdf of sampling wi
// with SampleRefraction. Delta distributions evaluate to zero.
func EvaluateRefraction(dist Distribution, wo, wi, n core.Vec3, roughness, eta float64) (value, pdf float64) {
	if dist.IsDelta() || math.Abs(eta-1) < 1e-6 {
		return 0, 0
	}

	frame, lo := localFrame(wo, n)
	li := frame.ToLocal(wi)
	if lo.Z <= 0 || li.Z >= 0 {
		return 0, 0
	}

	// Generalized half vector, oriented to wo's side
	h := lo.Multiply(eta).Add(li).Normalize()
	if h.Z < 0 {
		h = h.Negate()
	}
	oh := lo.Dot(h)
	ih := li.Dot(h)
	if oh <= 0 || ih >= 0 {
		return 0, 0
	}

	denom := eta*oh + ih
	if denom == 0 {
		return 0, 0
	}

	alpha := Alpha(roughness)
	d := dist.D(h, alpha)
	value = math.Abs(ih) * oh * d * dist.G(lo, li, alpha) / (lo.Z * denom * denom)
	pdf = d * h.Z * math.Abs(ih) / (denom * denom)
	return value, pdf
}
