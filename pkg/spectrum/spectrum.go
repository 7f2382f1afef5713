// Package spectrum implements the radiometric value type shared by the
// scattering models: either an RGB triple or a fixed set of spectral bands.
package spectrum

import (
	"fmt"
	"strings"
)

const (
	// RGBSize is the number of samples of an RGB value.
	RGBSize = 3

	// NumBands is the number of samples of a spectral value (400nm-700nm, 10nm step).
	NumBands = 31

	// FirstWavelength and WavelengthStep describe the band centers in nanometers.
	FirstWavelength = 400
	WavelengthStep  = 10
)

// Band ranges used by RGB <-> spectral conversion. Each RGB channel owns a
// contiguous group of bands, so Upgrade followed by ToRGB is lossless.
var bandGroups = [RGBSize][2]int{
	{20, NumBands}, // red: 600nm - 700nm
	{10, 20},       // green: 500nm - 590nm
	{0, 10},        // blue: 400nm - 490nm
}

// Spectrum is a value type holding either RGBSize or NumBands samples. It is
// copied by value; storage precision is float32.
type Spectrum struct {
	n int
	s [NumBands]float32
}

// NewRGB creates an RGB spectrum
func NewRGB(r, g, b float32) Spectrum {
	return Spectrum{n: RGBSize, s: [NumBands]float32{r, g, b}}
}

// NewSpectral creates a spectral value. Missing bands are zero; extra values are ignored.
func NewSpectral(values ...float32) Spectrum {
	sp := Spectrum{n: NumBands}
	copy(sp.s[:], values)
	return sp
}

// Constant creates a spectrum of the given size with every sample set to v.
// Sizes other than RGBSize are treated as spectral.
func Constant(size int, v float32) Spectrum {
	if size != RGBSize {
		size = NumBands
	}
	sp := Spectrum{n: size}
	for i := 0; i < size; i++ {
		sp.s[i] = v
	}
	return sp
}

// Size returns the number of samples
func (sp Spectrum) Size() int {
	return sp.n
}

// IsRGB reports whether the value holds three RGB samples
func (sp Spectrum) IsRGB() bool {
	return sp.n == RGBSize
}

// IsSpectral reports whether the value holds spectral bands
func (sp Spectrum) IsSpectral() bool {
	return sp.n == NumBands
}

// At returns sample i
func (sp Spectrum) At(i int) float32 {
	return sp.s[i]
}

// Set assigns sample i
func (sp *Spectrum) Set(i int, v float32) {
	sp.s[i] = v
}

// Resize changes the number of samples, zeroing any new ones. Resizing to the
// other representation does not convert; use Upgrade or ToRGB for that.
func (sp *Spectrum) Resize(size int) {
	if size != RGBSize {
		size = NumBands
	}
	for i := sp.n; i < size; i++ {
		sp.s[i] = 0
	}
	sp.n = size
}

// Samples returns a copy of the samples as a slice
func (sp Spectrum) Samples() []float32 {
	out := make([]float32, sp.n)
	copy(out, sp.s[:sp.n])
	return out
}

// Upgrade converts an RGB value to its spectral representation. Spectral values
// are returned unchanged.
func (sp Spectrum) Upgrade() Spectrum {
	if sp.IsSpectral() {
		return sp
	}
	out := Spectrum{n: NumBands}
	for c, group := range bandGroups {
		for i := group[0]; i < group[1]; i++ {
			out.s[i] = sp.s[c]
		}
	}
	return out
}

// ToRGB converts a spectral value to RGB by averaging each channel's band group.
// RGB values are returned unchanged.
func (sp Spectrum) ToRGB() Spectrum {
	if sp.IsRGB() {
		return sp
	}
	out := Spectrum{n: RGBSize}
	for c, group := range bandGroups {
		var sum float64
		for i := group[0]; i < group[1]; i++ {
			sum += float64(sp.s[i])
		}
		out.s[c] = float32(sum / float64(group[1]-group[0]))
	}
	return out
}

// Reconcile brings value to the representation of reference: upgraded to
// spectral if reference is spectral, converted to RGB otherwise.
func Reconcile(value, reference Spectrum) Spectrum {
	if value.n == reference.n {
		return value
	}
	if reference.IsSpectral() {
		return value.Upgrade()
	}
	return value.ToRGB()
}

// match returns both operands in a common representation. Mixing
// representations is a programmer error; release builds upgrade the RGB side.
func match(a, b Spectrum) (Spectrum, Spectrum) {
	if a.n == b.n {
		return a, b
	}
	assert(false, "spectrum: mixing RGB and spectral operands")
	return a.Upgrade(), b.Upgrade()
}

// Add returns the elementwise sum
func (sp Spectrum) Add(other Spectrum) Spectrum {
	a, b := match(sp, other)
	for i := 0; i < a.n; i++ {
		a.s[i] += b.s[i]
	}
	return a
}

// Sub returns the elementwise difference
func (sp Spectrum) Sub(other Spectrum) Spectrum {
	a, b := match(sp, other)
	for i := 0; i < a.n; i++ {
		a.s[i] -= b.s[i]
	}
	return a
}

// Mul returns the elementwise product
func (sp Spectrum) Mul(other Spectrum) Spectrum {
	a, b := match(sp, other)
	for i := 0; i < a.n; i++ {
		a.s[i] *= b.s[i]
	}
	return a
}

// Div returns the elementwise quotient; division by a zero sample yields zero
func (sp Spectrum) Div(other Spectrum) Spectrum {
	a, b := match(sp, other)
	for i := 0; i < a.n; i++ {
		if b.s[i] == 0 {
			a.s[i] = 0
		} else {
			a.s[i] /= b.s[i]
		}
	}
	return a
}

// Scale returns the spectrum multiplied by a scalar
func (sp Spectrum) Scale(f float32) Spectrum {
	for i := 0; i < sp.n; i++ {
		sp.s[i] *= f
	}
	return sp
}

// Average returns the mean of the samples
func (sp Spectrum) Average() float32 {
	if sp.n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < sp.n; i++ {
		sum += float64(sp.s[i])
	}
	return float32(sum / float64(sp.n))
}

// Max returns the largest sample
func (sp Spectrum) Max() float32 {
	if sp.n == 0 {
		return 0
	}
	m := sp.s[0]
	for i := 1; i < sp.n; i++ {
		m = max(m, sp.s[i])
	}
	return m
}

// IsZero reports whether every sample is zero
func (sp Spectrum) IsZero() bool {
	for i := 0; i < sp.n; i++ {
		if sp.s[i] != 0 {
			return false
		}
	}
	return true
}

func (sp Spectrum) String() string {
	parts := make([]string, sp.n)
	for i := 0; i < sp.n; i++ {
		parts[i] = fmt.Sprintf("%g", sp.s[i])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
