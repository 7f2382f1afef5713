package spectrum

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// ErrMalformed is returned when a textual spectrum cannot be parsed.
var ErrMalformed = errors.New("malformed spectrum")

// Parse reads a whitespace or comma separated list of samples. One value
// yields a uniform RGB spectrum, three values an RGB spectrum and NumBands
// values a spectral one.
func Parse(text string) (Spectrum, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	values := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Spectrum{}, xerrors.Errorf("spectrum %q: %w", text, ErrMalformed)
		}
		values[i] = float32(v)
	}

	switch len(values) {
	case 1:
		return Constant(RGBSize, values[0]), nil
	case RGBSize:
		return NewRGB(values[0], values[1], values[2]), nil
	case NumBands:
		return NewSpectral(values...), nil
	}
	return Spectrum{}, xerrors.Errorf("spectrum %q has %d samples, expected 1, %d or %d: %w",
		text, len(values), RGBSize, NumBands, ErrMalformed)
}
