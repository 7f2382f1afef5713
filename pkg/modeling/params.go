package modeling

import (
	"strconv"

	"github.com/df07/go-scattering/pkg/spectrum"
	"golang.org/x/xerrors"
)

// Params is the textual parameter array a model is created from
type Params map[string]string

// String returns the named parameter or def when absent
func (p Params) String(name, def string) string {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Float parses the named parameter, returning def when absent
func (p Params) Float(name string, def float64) (float64, error) {
	v, ok := p[name]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, xerrors.Errorf("parameter %q = %q: %w", name, v, ErrInvalidParam)
	}
	return f, nil
}

// Spectrum parses the named parameter as a spectrum. ok is false when absent.
func (p Params) Spectrum(name string) (value spectrum.Spectrum, ok bool, err error) {
	v, ok := p[name]
	if !ok {
		return spectrum.Spectrum{}, false, nil
	}
	value, err = spectrum.Parse(v)
	if err != nil {
		return spectrum.Spectrum{}, true, xerrors.Errorf("parameter %q: %v: %w", name, err, ErrInvalidParam)
	}
	return value, true, nil
}
