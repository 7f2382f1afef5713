package modeling

import (
	"strconv"

	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/spectrum"
	"golang.org/x/xerrors"
)

// InputFormat is the representation an input is evaluated to
type InputFormat int

const (
	Scalar InputFormat = iota
	SpectralReflectance
)

func (f InputFormat) String() string {
	switch f {
	case Scalar:
		return "scalar"
	case SpectralReflectance:
		return "spectral_reflectance"
	}
	return "invalid"
}

// Input is one declared model input and its binding
type Input struct {
	Name       string
	Format     InputFormat
	Default    string
	HasDefault bool
	source     Source
}

// InputArray is a model's input schema. Declaration order is the order in
// which Evaluate writes values, and models read them back positionally.
type InputArray struct {
	inputs []Input
}

// Declare appends an input. An optional default is used by BindParams when
// the parameter array has no entry for the input.
func (a *InputArray) Declare(name string, format InputFormat, def ...string) {
	in := Input{Name: name, Format: format}
	if len(def) > 0 {
		in.Default = def[0]
		in.HasDefault = true
	}
	a.inputs = append(a.inputs, in)
}

// Len returns the number of declared inputs
func (a *InputArray) Len() int {
	return len(a.inputs)
}

// Inputs returns a copy of the declarations
func (a *InputArray) Inputs() []Input {
	out := make([]Input, len(a.inputs))
	copy(out, a.inputs)
	return out
}

// Index returns the position of the named input, or -1
func (a *InputArray) Index(name string) int {
	for i := range a.inputs {
		if a.inputs[i].Name == name {
			return i
		}
	}
	return -1
}

// Bind attaches a source to the named input
func (a *InputArray) Bind(name string, src Source) error {
	i := a.Index(name)
	if i < 0 {
		return xerrors.Errorf("input %q: %w", name, ErrUnknownInput)
	}
	a.inputs[i].source = src
	return nil
}

// IsBound reports whether the named input has a source
func (a *InputArray) IsBound(name string) bool {
	i := a.Index(name)
	return i >= 0 && a.inputs[i].source != nil
}

// BindParams binds constants for every input that is not bound yet, taking
// values from params or from the declared default.
func (a *InputArray) BindParams(params Params) error {
	for i := range a.inputs {
		in := &a.inputs[i]
		if in.source != nil {
			continue
		}

		text, ok := params[in.Name]
		if !ok {
			if !in.HasDefault {
				continue
			}
			text = in.Default
		}

		src, err := constantSource(in.Format, text)
		if err != nil {
			return xerrors.Errorf("input %q: %w", in.Name, err)
		}
		in.source = src
	}
	return nil
}

func constantSource(format InputFormat, text string) (Source, error) {
	if format == Scalar {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, xerrors.Errorf("%q: %w", text, ErrInvalidParam)
		}
		return ConstantScalar(v), nil
	}

	s, err := spectrum.Parse(text)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrInvalidParam)
	}
	return ConstantSpectrum{Value: s}, nil
}

// Validate reports the first input that has no source
func (a *InputArray) Validate() error {
	for _, in := range a.inputs {
		if in.source == nil {
			return xerrors.Errorf("input %q: %w", in.Name, ErrMissingInput)
		}
	}
	return nil
}

// Evaluate resolves every input at sp into values, in declaration order.
// values must hold at least Len() entries; unbound inputs evaluate to zero.
func (a *InputArray) Evaluate(sp *core.ShadingPoint, values []Value) {
	for i := range a.inputs {
		if src := a.inputs[i].source; src != nil {
			values[i] = src.Evaluate(sp)
		} else {
			values[i] = Value{}
		}
	}
}
