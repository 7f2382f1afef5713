// Package bssrdf implements the subsurface scattering models. A model is
// created once during scene setup and is then shared read-only; per shading
// point state lives in a caller-owned InputValues.
//
// Per invocation the caller runs EvaluateInputs, then any number of
// Evaluate, Sample and PDF calls against the same values.
package bssrdf

import (
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/log"
	"github.com/df07/go-scattering/pkg/material"
	"github.com/df07/go-scattering/pkg/modeling"
	"github.com/df07/go-scattering/pkg/spectrum"
)

var logger = log.New("bssrdf")

// Input names shared by every model, in declaration order
const (
	InputReflectance            = "reflectance"
	InputMeanFreePath           = "mean_free_path"
	InputMeanFreePathMultiplier = "mean_free_path_multiplier"
	InputFromIOR                = "from_ior"
	InputToIOR                  = "to_ior"
)

const numInputs = 5

// InputValues holds the evaluated inputs of a model at one shading point.
// After EvaluateInputs, Reflectance and MeanFreePath share a representation
// and MeanFreePath already includes the multiplier.
type InputValues struct {
	Reflectance            spectrum.Spectrum
	MeanFreePath           spectrum.Spectrum
	MeanFreePathMultiplier float64
	FromIOR                float64
	ToIOR                  float64

	ready bool
}

// Sample is the result of sampling an exit point
type Sample struct {
	IsDirectional bool
	Eta           float64   // Relative IOR of the sampled event (to/from)
	Channel       int       // Spectral channel the radius was drawn for
	Point         core.Vec2 // Exit point offset in the entry point's tangent plane
}

// BSSRDF is the contract shared by the subsurface scattering models
type BSSRDF interface {
	Name() string
	Model() string

	// Inputs returns the declared input schema, for binding during scene setup
	Inputs() *modeling.InputArray

	// EvaluateInputs resolves the bound inputs at sp into values
	EvaluateInputs(sp *core.ShadingPoint, values *InputValues)

	// Evaluate returns the per-channel remittance between two surface points.
	// Directions are unused by non-directional models.
	Evaluate(values *InputValues, outgoing, incoming *core.ShadingPoint, wo, wi core.Vec3) spectrum.Spectrum

	// Sample draws an exit point. It fails when the model has no valid point.
	Sample(values *InputValues, ctx *core.SamplingContext) (Sample, bool)

	// PDF returns the area density of dist for a channel returned by Sample
	PDF(values *InputValues, channel int, dist float64) float64

	// MaxRadius bounds the distance of exit points drawn for a channel
	MaxRadius(values *InputValues, channel int) float64
}

// base holds the input schema common to all models
type base struct {
	name   string
	inputs modeling.InputArray
}

func newBase(name string) base {
	b := base{name: name}
	b.inputs.Declare(InputReflectance, modeling.SpectralReflectance)
	b.inputs.Declare(InputMeanFreePath, modeling.SpectralReflectance)
	b.inputs.Declare(InputMeanFreePathMultiplier, modeling.Scalar, "1.0")
	b.inputs.Declare(InputFromIOR, modeling.Scalar)
	b.inputs.Declare(InputToIOR, modeling.Scalar)
	return b
}

// Name returns the instance name
func (b *base) Name() string {
	return b.name
}

// Inputs returns the input schema
func (b *base) Inputs() *modeling.InputArray {
	return &b.inputs
}

// EvaluateInputs binds the inputs, scales the mean free path by its
// multiplier and brings reflectance to the mean free path's representation.
func (b *base) EvaluateInputs(sp *core.ShadingPoint, values *InputValues) {
	var raw [numInputs]modeling.Value
	b.inputs.Evaluate(sp, raw[:])

	values.Reflectance = raw[0].Spectrum
	values.MeanFreePath = raw[1].Spectrum
	values.MeanFreePathMultiplier = raw[2].Scalar
	values.FromIOR = material.ResolveIOR(raw[3].Scalar)
	values.ToIOR = material.ResolveIOR(raw[4].Scalar)

	values.MeanFreePath = values.MeanFreePath.Scale(float32(values.MeanFreePathMultiplier))
	values.Reflectance = spectrum.Reconcile(values.Reflectance, values.MeanFreePath)
	values.ready = true
}

// eta returns the relative IOR reported with samples
func eta(values *InputValues) float64 {
	return values.ToIOR / values.FromIOR
}

// forkSample splits ctx into the channel, radius and angle streams and
// returns one variate of each.
func forkSample(ctx *core.SamplingContext) core.Vec3 {
	var streams [3]core.SamplingContext
	ctx.ForkInto(streams[:])
	return core.NewVec3(streams[0].Next1D(), streams[1].Next1D(), streams[2].Next1D())
}

// pickChannel maps u in [0, 1) uniformly to a channel index
func pickChannel(u float64, size int) int {
	c := int(u * float64(size))
	if c >= size {
		c = size - 1
	}
	return c
}

func checkReady(values *InputValues) {
	assert(values.ready, "bssrdf: input values read before EvaluateInputs")
	assert(values.Reflectance.Size() == values.MeanFreePath.Size(), "bssrdf: unreconciled input values")
}
