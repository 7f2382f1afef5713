package bssrdf

import (
	"github.com/df07/go-scattering/pkg/modeling"
	"golang.org/x/xerrors"
)

// Factory creates BSSRDF instances of one model
type Factory interface {
	modeling.Factory
	Create(name string, params modeling.Params) (BSSRDF, error)

	// CreateBound is Create with some inputs bound to sources up front;
	// params fill the rest.
	CreateBound(name string, sources map[string]modeling.Source, params modeling.Params) (BSSRDF, error)
}

func commonInputMetadata() []modeling.InputMetadata {
	colormap := []string{"color", "texture_instance"}
	return []modeling.InputMetadata{
		{
			Name:        InputReflectance,
			Label:       "Reflectance",
			Type:        modeling.TypeColormap,
			EntityTypes: colormap,
			Use:         modeling.UseRequired,
			Default:     "0.5",
		},
		{
			Name:        InputMeanFreePath,
			Label:       "Mean Free Path",
			Type:        modeling.TypeColormap,
			EntityTypes: colormap,
			Use:         modeling.UseRequired,
			Default:     "0.5",
		},
		{
			Name:        InputMeanFreePathMultiplier,
			Label:       "Mean Free Path Multiplier",
			Type:        modeling.TypeColormap,
			EntityTypes: []string{"texture_instance"},
			Use:         modeling.UseOptional,
			Default:     "1.0",
		},
		{
			Name:    InputFromIOR,
			Label:   "From Index of Refraction",
			Type:    modeling.TypeNumeric,
			Use:     modeling.UseRequired,
			Default: "1.0",
			Range:   &modeling.Range{Min: 0, Max: 5},
		},
		{
			Name:    InputToIOR,
			Label:   "To Index of Refraction",
			Type:    modeling.TypeNumeric,
			Use:     modeling.UseRequired,
			Default: "1.3",
			Range:   &modeling.Range{Min: 0, Max: 5},
		},
	}
}

// bind attaches sources to m, fills the remaining inputs from params and
// checks that every input ends up bound.
func bind(m BSSRDF, sources map[string]modeling.Source, params modeling.Params) (BSSRDF, error) {
	inputs := m.Inputs()
	for name, src := range sources {
		if err := inputs.Bind(name, src); err != nil {
			return nil, xerrors.Errorf("%s %q: %w", m.Model(), m.Name(), err)
		}
	}
	if err := inputs.BindParams(params); err != nil {
		return nil, xerrors.Errorf("%s %q: %w", m.Model(), m.Name(), err)
	}
	if err := inputs.Validate(); err != nil {
		return nil, xerrors.Errorf("%s %q: %w", m.Model(), m.Name(), err)
	}
	logger.Debugf("created %s %q", m.Model(), m.Name())
	return m, nil
}

// NormalizedDiffusionFactory creates NormalizedDiffusion models
type NormalizedDiffusionFactory struct{}

// Model implements modeling.Factory
func (NormalizedDiffusionFactory) Model() string {
	return NormalizedDiffusionModel
}

// ModelMetadata implements modeling.Factory
func (NormalizedDiffusionFactory) ModelMetadata() modeling.ModelMetadata {
	return modeling.ModelMetadata{Name: NormalizedDiffusionModel, Label: "Normalized Diffusion BSSRDF"}
}

// InputMetadata implements modeling.Factory
func (NormalizedDiffusionFactory) InputMetadata() []modeling.InputMetadata {
	return commonInputMetadata()
}

// Create implements Factory
func (NormalizedDiffusionFactory) Create(name string, params modeling.Params) (BSSRDF, error) {
	return bind(NewNormalizedDiffusion(name), nil, params)
}

// CreateBound implements Factory
func (NormalizedDiffusionFactory) CreateBound(name string, sources map[string]modeling.Source, params modeling.Params) (BSSRDF, error) {
	return bind(NewNormalizedDiffusion(name), sources, params)
}

// GaussianFactory creates Gaussian models
type GaussianFactory struct{}

// Model implements modeling.Factory
func (GaussianFactory) Model() string {
	return GaussianModel
}

// ModelMetadata implements modeling.Factory
func (GaussianFactory) ModelMetadata() modeling.ModelMetadata {
	return modeling.ModelMetadata{Name: GaussianModel, Label: "Gaussian BSSRDF"}
}

// InputMetadata implements modeling.Factory
func (GaussianFactory) InputMetadata() []modeling.InputMetadata {
	return commonInputMetadata()
}

// Create implements Factory
func (GaussianFactory) Create(name string, params modeling.Params) (BSSRDF, error) {
	return bind(NewGaussian(name), nil, params)
}

// CreateBound implements Factory
func (GaussianFactory) CreateBound(name string, sources map[string]modeling.Source, params modeling.Params) (BSSRDF, error) {
	return bind(NewGaussian(name), sources, params)
}

// NewRegistry returns a registry holding every BSSRDF model
func NewRegistry() *modeling.Registry[Factory] {
	r := modeling.NewRegistry[Factory]("bssrdf")
	for _, f := range []Factory{NormalizedDiffusionFactory{}, GaussianFactory{}} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}
