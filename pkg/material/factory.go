package material

import (
	"github.com/df07/go-scattering/pkg/log"
	"github.com/df07/go-scattering/pkg/microfacet"
	"github.com/df07/go-scattering/pkg/modeling"
	"golang.org/x/xerrors"
)

var logger = log.New("material")

// GlassModel is the identifier of the glass closure
const GlassModel = "glass"

// ClosureFactory creates surface closures from a parameter array
type ClosureFactory interface {
	modeling.Factory
	Create(name string, params modeling.Params) (*Glass, error)
}

// GlassFactory creates Glass closures
type GlassFactory struct{}

// Model implements modeling.Factory
func (GlassFactory) Model() string {
	return GlassModel
}

// ModelMetadata implements modeling.Factory
func (GlassFactory) ModelMetadata() modeling.ModelMetadata {
	return modeling.ModelMetadata{Name: GlassModel, Label: "Glass"}
}

// InputMetadata implements modeling.Factory
func (GlassFactory) InputMetadata() []modeling.InputMetadata {
	return []modeling.InputMetadata{
		{
			Name:    "mdf",
			Label:   "Microfacet Distribution Function",
			Type:    modeling.TypeEnumeration,
			Items:   microfacet.Names(),
			Use:     modeling.UseRequired,
			Default: microfacet.Specular.String(),
		},
		{
			Name:    "roughness",
			Label:   "Roughness",
			Type:    modeling.TypeNumeric,
			Use:     modeling.UseOptional,
			Default: "0.025",
			Range:   &modeling.Range{Min: 0, Max: 1},
		},
		{
			Name:    "ior",
			Label:   "Index of Refraction",
			Type:    modeling.TypeNumeric,
			Use:     modeling.UseRequired,
			Default: "1.5",
			Range:   &modeling.Range{Min: 1, Max: 2.5},
		},
	}
}

// Create builds a glass closure, validating its parameters
func (GlassFactory) Create(name string, params modeling.Params) (*Glass, error) {
	dist, err := microfacet.ParseDistribution(params.String("mdf", microfacet.Specular.String()))
	if err != nil {
		return nil, xerrors.Errorf("glass %q: %w", name, err)
	}

	roughness, err := params.Float("roughness", DefaultGlassRoughness)
	if err != nil {
		return nil, xerrors.Errorf("glass %q: %w", name, err)
	}
	if roughness < 0 || roughness > 1 {
		return nil, xerrors.Errorf("glass %q: roughness %g out of [0, 1]: %w", name, roughness, modeling.ErrInvalidParam)
	}

	ior, err := params.Float("ior", DefaultGlassIOR)
	if err != nil {
		return nil, xerrors.Errorf("glass %q: %w", name, err)
	}
	if ior <= 0 {
		return nil, xerrors.Errorf("glass %q: ior %g must be positive: %w", name, ior, modeling.ErrInvalidParam)
	}

	g := NewGlass(dist, roughness, ior)
	g.Name = name
	logger.Debugf("created glass %q (%s, roughness %g, ior %g)", name, dist, roughness, ior)
	return g, nil
}

// NewClosureRegistry returns a registry holding every surface closure model
func NewClosureRegistry() *modeling.Registry[ClosureFactory] {
	r := modeling.NewRegistry[ClosureFactory]("closure")
	if err := r.Register(GlassFactory{}); err != nil {
		panic(err)
	}
	return r
}
