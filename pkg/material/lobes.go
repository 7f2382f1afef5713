package material

import (
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/microfacet"
)

// Reflection is a reflective lobe; the specular distribution makes it a mirror.
type Reflection struct {
	Distribution microfacet.Distribution
	Normal       core.Vec3
	Roughness    float64
}

// MirrorReflection creates an ideal mirror lobe
func MirrorReflection(normal core.Vec3) Reflection {
	return Reflection{Distribution: microfacet.Specular, Normal: normal}
}

// MicrofacetReflection creates a glossy reflection lobe
func MicrofacetReflection(dist microfacet.Distribution, normal core.Vec3, roughness float64) Reflection {
	return Reflection{Distribution: dist, Normal: normal, Roughness: roughness}
}

// Sample implements Lobe
func (r Reflection) Sample(wo core.Vec3, u core.Vec2) (microfacet.Sample, bool) {
	return microfacet.SampleReflection(r.Distribution, wo, r.Normal, r.Roughness, u)
}

// Evaluate implements Lobe
func (r Reflection) Evaluate(wo, wi core.Vec3) (float64, float64) {
	return microfacet.EvaluateReflection(r.Distribution, wo, wi, r.Normal, r.Roughness)
}

// IsDelta implements Lobe
func (r Reflection) IsDelta() bool {
	return r.Distribution.IsDelta()
}

// Refraction is a transmissive lobe; the specular distribution makes it a
// Snell refraction.
type Refraction struct {
	Distribution microfacet.Distribution
	Normal       core.Vec3
	Roughness    float64
	Eta          float64 // IOR on the outgoing side over the IOR on the far side
}

// SpecularRefraction creates an ideal refraction lobe
func SpecularRefraction(normal core.Vec3, eta float64) Refraction {
	return Refraction{Distribution: microfacet.Specular, Normal: normal, Eta: eta}
}

// MicrofacetRefraction creates a rough transmission lobe
func MicrofacetRefraction(dist microfacet.Distribution, normal core.Vec3, roughness, eta float64) Refraction {
	return Refraction{Distribution: dist, Normal: normal, Roughness: roughness, Eta: eta}
}

// Sample implements Lobe
func (r Refraction) Sample(wo core.Vec3, u core.Vec2) (microfacet.Sample, bool) {
	return microfacet.SampleRefraction(r.Distribution, wo, r.Normal, r.Roughness, r.Eta, u)
}

// Evaluate implements Lobe
func (r Refraction) Evaluate(wo, wi core.Vec3) (float64, float64) {
	return microfacet.EvaluateRefraction(r.Distribution, wo, wi, r.Normal, r.Roughness, r.Eta)
}

// IsDelta implements Lobe
func (r Refraction) IsDelta() bool {
	return r.Distribution.IsDelta()
}
