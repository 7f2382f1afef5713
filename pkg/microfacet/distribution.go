// Package microfacet implements the named microfacet distributions used by
// glossy closures, and the reflection/refraction samplers built on them.
//
// Returned weights include the distribution's Jacobian and shadowing terms but
// not the Fresnel factor; the closure that composes lobes applies Fresnel.
package microfacet

import (
	"errors"
	"math"

	"github.com/df07/go-scattering/pkg/core"
	"golang.org/x/xerrors"
)

// Distribution selects a microfacet normal distribution.
type Distribution int

const (
	// Specular is the ideal smooth interface (a delta distribution).
	Specular Distribution = iota
	Beckmann
	GGX
)

// MinAlpha is the smallest slope parameter used by rough distributions.
const MinAlpha = 1e-4

// ErrUnknownDistribution is returned by ParseDistribution.
var ErrUnknownDistribution = errors.New("unknown microfacet distribution")

// ParseDistribution looks up a distribution by its name.
func ParseDistribution(name string) (Distribution, error) {
	switch name {
	case "specular":
		return Specular, nil
	case "beckmann":
		return Beckmann, nil
	case "ggx":
		return GGX, nil
	}
	return Specular, xerrors.Errorf("%q: %w", name, ErrUnknownDistribution)
}

func (d Distribution) String() string {
	switch d {
	case Specular:
		return "specular"
	case Beckmann:
		return "beckmann"
	case GGX:
		return "ggx"
	}
	return "invalid"
}

// Names lists the accepted distribution names.
func Names() []string {
	return []string{Specular.String(), Beckmann.String(), GGX.String()}
}

// IsDelta reports whether the distribution produces deterministic directions.
func (d Distribution) IsDelta() bool {
	return d == Specular
}

// Alpha converts a user-facing roughness in [0, 1] to a slope parameter.
func Alpha(roughness float64) float64 {
	return math.Max(roughness*roughness, MinAlpha)
}

// D evaluates the normal distribution for a local-frame half vector (z = normal).
func (d Distribution) D(h core.Vec3, alpha float64) float64 {
	if h.Z <= 0 {
		return 0
	}
	cos2 := h.Z * h.Z
	tan2 := (1 - cos2) / cos2
	a2 := alpha * alpha

	switch d {
	case Beckmann:
		return math.Exp(-tan2/a2) / (math.Pi * a2 * cos2 * cos2)
	case GGX:
		k := 1 + tan2/a2
		return 1 / (math.Pi * a2 * cos2 * cos2 * k * k)
	}
	return 0
}

// Lambda is the Smith auxiliary function for a local-frame direction.
func (d Distribution) Lambda(v core.Vec3, alpha float64) float64 {
	cos2 := v.Z * v.Z
	if cos2 >= 1 {
		return 0
	}
	if cos2 == 0 {
		return math.Inf(1)
	}
	tan2 := (1 - cos2) / cos2

	switch d {
	case Beckmann:
		a := 1 / (alpha * math.Sqrt(tan2))
		if a >= 1.6 {
			return 0
		}
		return (1 - 1.259*a + 0.396*a*a) / (3.535*a + 2.181*a*a)
	case GGX:
		return (-1 + math.Sqrt(1+alpha*alpha*tan2)) / 2
	}
	return 0
}

// G1 is the Smith masking term for one direction.
func (d Distribution) G1(v core.Vec3, alpha float64) float64 {
	return 1 / (1 + d.Lambda(v, alpha))
}

// G is the height-correlated masking-shadowing term.
func (d Distribution) G(wo, wi core.Vec3, alpha float64) float64 {
	return 1 / (1 + d.Lambda(wo, alpha) + d.Lambda(wi, alpha))
}

// SampleHalf draws a local-frame half vector with density D(h)·cosθh.
func (d Distribution) SampleHalf(u core.Vec2, alpha float64) core.Vec3 {
	var tan2 float64
	switch d {
	case Beckmann:
		tan2 = -alpha * alpha * math.Log1p(-u.X)
	case GGX:
		tan2 = alpha * alpha * u.X / (1 - u.X)
	default:
		return core.NewVec3(0, 0, 1)
	}

	cosTheta := 1 / math.Sqrt(1+tan2)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// HalfPDF is the density of SampleHalf.
func (d Distribution) HalfPDF(h core.Vec3, alpha float64) float64 {
	return d.D(h, alpha) * h.Z
}
