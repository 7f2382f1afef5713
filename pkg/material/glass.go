package material

import (
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/microfacet"
	"github.com/df07/go-scattering/pkg/spectrum"
)

// Glass defaults
const (
	DefaultGlassRoughness = 0.025
	DefaultGlassIOR       = 1.5
)

// Glass is a rough dielectric: Fresnel-weighted reflection plus refraction
type Glass struct {
	Name         string
	Distribution microfacet.Distribution
	Roughness    float64 // Ignored by the specular distribution
	IOR          float64
}

// NewGlass creates a glass material
func NewGlass(dist microfacet.Distribution, roughness, ior float64) *Glass {
	return &Glass{
		Distribution: dist,
		Roughness:    roughness,
		IOR:          ior,
	}
}

// NewDefaultGlass creates clear specular glass with IOR 1.5
func NewDefaultGlass() *Glass {
	return NewGlass(microfacet.Specular, DefaultGlassRoughness, DefaultGlassIOR)
}

// Fresnel returns (Kr, Kt) and the relative IOR for a view direction wo at sp
func (g *Glass) Fresnel(sp *core.ShadingPoint, wo core.Vec3) (kr, kt, eta float64) {
	from, to := ResolveIORs(sp, g.IOR)
	eta = from / to
	kr, kt = Fresnel(wo, sp.Normal, eta)
	return kr, kt, eta
}

// Closure builds Kr·reflection + Kt·refraction for the view direction wo
func (g *Glass) Closure(sp *core.ShadingPoint, wo core.Vec3) Closure {
	kr, kt, eta := g.Fresnel(sp, wo)

	var reflection, refraction Lobe
	if g.Distribution.IsDelta() {
		reflection = MirrorReflection(sp.Normal)
		refraction = SpecularRefraction(sp.Normal, eta)
	} else {
		reflection = MicrofacetReflection(g.Distribution, sp.Normal, g.Roughness)
		refraction = MicrofacetRefraction(g.Distribution, sp.Normal, g.Roughness, eta)
	}

	var c Closure
	c.Add(spectrum.Constant(spectrum.RGBSize, float32(kr)), reflection)
	c.Add(spectrum.Constant(spectrum.RGBSize, float32(kt)), refraction)
	return c
}

// Scatter builds the closure at sp and samples it
func (g *Glass) Scatter(sp *core.ShadingPoint, wo core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	c := g.Closure(sp, wo)
	return c.Sample(wo, sampler.Get3D())
}
