package core

import "math/rand/v2"

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// SamplingContext is a path-local cursor into a reproducible random sequence.
// A context must never be shared between goroutines. Two contexts created with
// the same seed and stream produce the same sequence.
type SamplingContext struct {
	pcg rand.PCG
}

// NewSamplingContext creates a cursor at the start of the (seed, stream) sequence
func NewSamplingContext(seed, stream uint64) SamplingContext {
	var c SamplingContext
	c.pcg.Seed(seed, stream)
	return c
}

// Next1D returns the next value in [0, 1)
func (c *SamplingContext) Next1D() float64 {
	return float64(c.pcg.Uint64()>>11) * 0x1p-53
}

// Next2D returns the next two values in [0, 1)
func (c *SamplingContext) Next2D() Vec2 {
	x := c.Next1D()
	return NewVec2(x, c.Next1D())
}

// Next3D returns the next three values in [0, 1)
func (c *SamplingContext) Next3D() Vec3 {
	x := c.Next1D()
	y := c.Next1D()
	return NewVec3(x, y, c.Next1D())
}

// Fork returns n independent sub-cursors. The parent advances by exactly n
// draws, so the parent sequence after a fork is the same regardless of how the
// children are consumed.
func (c *SamplingContext) Fork(n int) []SamplingContext {
	children := make([]SamplingContext, n)
	c.ForkInto(children)
	return children
}

// ForkInto is Fork writing into caller-owned storage; len(dst) sub-cursors are produced.
func (c *SamplingContext) ForkInto(dst []SamplingContext) {
	for i := range dst {
		dst[i].pcg.Seed(c.pcg.Uint64(), uint64(i))
	}
}

// Get1D implements Sampler
func (c *SamplingContext) Get1D() float64 { return c.Next1D() }

// Get2D implements Sampler
func (c *SamplingContext) Get2D() Vec2 { return c.Next2D() }

// Get3D implements Sampler
func (c *SamplingContext) Get3D() Vec3 { return c.Next3D() }
