package material

import (
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/spectrum"
)

// MaxComponents bounds the number of lobes in a closure
const MaxComponents = 8

// Component is one weighted lobe of a closure
type Component struct {
	Weight spectrum.Spectrum
	Lobe   Lobe
}

// Closure is a weighted sum of lobes. Storage is inline so building a closure
// on the shading path does not allocate. For energy conservation the weights
// of a closure should sum to at most one per channel.
type Closure struct {
	components [MaxComponents]Component
	n          int
}

// Add appends a weighted lobe. Zero weights are dropped. Returns false when
// the closure is full.
func (c *Closure) Add(weight spectrum.Spectrum, lobe Lobe) bool {
	if weight.IsZero() {
		return true
	}
	if c.n == MaxComponents {
		return false
	}
	c.components[c.n] = Component{Weight: weight, Lobe: lobe}
	c.n++
	return true
}

// Components returns the lobes in insertion order
func (c *Closure) Components() []Component {
	return c.components[:c.n]
}

// TotalWeight returns the sum of the component weights
func (c *Closure) TotalWeight() spectrum.Spectrum {
	total := spectrum.Constant(spectrum.RGBSize, 0)
	for i := 0; i < c.n; i++ {
		total = total.Add(c.components[i].Weight)
	}
	return total
}

// selectionWeight is the unnormalized probability of picking component i
func (c *Closure) selectionWeight(i int) float64 {
	return float64(c.components[i].Weight.Average())
}

// Sample picks a component with probability proportional to its average
// weight using u.X, then samples its lobe with (u.Y, u.Z).
func (c *Closure) Sample(wo core.Vec3, u core.Vec3) (ScatterResult, bool) {
	total := 0.0
	for i := 0; i < c.n; i++ {
		total += c.selectionWeight(i)
	}
	if total <= 0 {
		return ScatterResult{}, false
	}

	// Pick the component
	target := u.X * total
	k := c.n - 1
	for i := 0; i < c.n; i++ {
		target -= c.selectionWeight(i)
		if target < 0 {
			k = i
			break
		}
	}
	p := c.selectionWeight(k) / total
	comp := c.components[k]

	s, ok := comp.Lobe.Sample(wo, core.NewVec2(u.Y, u.Z))
	if !ok {
		return ScatterResult{}, false
	}

	pdf := 0.0
	if !s.Delta {
		pdf = p * s.PDF
	}
	return ScatterResult{
		Direction: s.Direction,
		Weight:    comp.Weight.Scale(float32(s.Weight / p)),
		PDF:       pdf,
		Component: k,
	}, true
}

// Evaluate returns the closure value f·|cos θi| for the pair and the
// one-sample pdf Sample would have produced wi with. Delta lobes contribute
// nothing.
func (c *Closure) Evaluate(wo, wi core.Vec3) (spectrum.Spectrum, float64) {
	value := spectrum.Constant(spectrum.RGBSize, 0)
	total := 0.0
	for i := 0; i < c.n; i++ {
		total += c.selectionWeight(i)
	}
	if total <= 0 {
		return value, 0
	}

	pdf := 0.0
	for i := 0; i < c.n; i++ {
		comp := c.components[i]
		if comp.Lobe.IsDelta() {
			continue
		}
		f, lobePDF := comp.Lobe.Evaluate(wo, wi)
		value = value.Add(comp.Weight.Scale(float32(f)))
		pdf += c.selectionWeight(i) / total * lobePDF
	}
	return value, pdf
}
