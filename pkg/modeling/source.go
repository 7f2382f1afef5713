package modeling

import (
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/spectrum"
	"github.com/df07/go-scattering/pkg/texture"
)

// Value is the result of evaluating an input binding. Scalar inputs read
// Scalar; spectral inputs read Spectrum.
type Value struct {
	Scalar   float64
	Spectrum spectrum.Spectrum
}

// Source resolves an input at a shading point. Sources are immutable once
// bound and may be evaluated concurrently.
type Source interface {
	Evaluate(sp *core.ShadingPoint) Value
}

// ConstantScalar binds a fixed number
type ConstantScalar float64

// Evaluate implements Source
func (c ConstantScalar) Evaluate(sp *core.ShadingPoint) Value {
	return Value{Scalar: float64(c), Spectrum: spectrum.Constant(spectrum.RGBSize, float32(c))}
}

// ConstantSpectrum binds a fixed color or spectral curve
type ConstantSpectrum struct {
	Value spectrum.Spectrum
}

// Evaluate implements Source
func (c ConstantSpectrum) Evaluate(sp *core.ShadingPoint) Value {
	return Value{Scalar: float64(c.Value.Average()), Spectrum: c.Value}
}

// TextureSource binds a texture looked up at the shading point's UV
type TextureSource struct {
	Texture texture.ColorSource
}

// Evaluate implements Source. Scalar inputs receive the channel average.
func (t TextureSource) Evaluate(sp *core.ShadingPoint) Value {
	c := t.Texture.Evaluate(sp.UV, sp.Point)
	return Value{
		Scalar:   (c.X + c.Y + c.Z) / 3,
		Spectrum: spectrum.NewRGB(float32(c.X), float32(c.Y), float32(c.Z)),
	}
}
