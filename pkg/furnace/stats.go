package furnace

import (
	"math"

	"github.com/df07/go-scattering/pkg/spectrum"
)

// Accumulator tracks per-channel sample statistics of an estimator
type Accumulator struct {
	sum      []float64
	sumSq    []float64
	count    int
	failures int
}

// NewAccumulator creates an accumulator for the given number of channels
func NewAccumulator(channels int) *Accumulator {
	return &Accumulator{
		sum:   make([]float64, channels),
		sumSq: make([]float64, channels),
	}
}

// AddSample adds one estimate. Channels beyond the accumulator's are ignored.
func (a *Accumulator) AddSample(value spectrum.Spectrum) {
	n := min(value.Size(), len(a.sum))
	for i := 0; i < n; i++ {
		v := float64(value.At(i))
		a.sum[i] += v
		a.sumSq[i] += v * v
	}
	a.count++
}

// AddFailure counts a sample that contributed nothing
func (a *Accumulator) AddFailure() {
	a.count++
	a.failures++
}

// Merge folds other into a
func (a *Accumulator) Merge(other *Accumulator) {
	for i := range a.sum {
		a.sum[i] += other.sum[i]
		a.sumSq[i] += other.sumSq[i]
	}
	a.count += other.count
	a.failures += other.failures
}

// Count returns the number of samples, failures included
func (a *Accumulator) Count() int {
	return a.count
}

// Failures returns the number of failed samples
func (a *Accumulator) Failures() int {
	return a.failures
}

// Mean returns the per-channel sample mean
func (a *Accumulator) Mean() []float64 {
	out := make([]float64, len(a.sum))
	if a.count == 0 {
		return out
	}
	for i := range a.sum {
		out[i] = a.sum[i] / float64(a.count)
	}
	return out
}

// Variance returns the per-channel unbiased sample variance
func (a *Accumulator) Variance() []float64 {
	out := make([]float64, len(a.sum))
	if a.count < 2 {
		return out
	}
	n := float64(a.count)
	for i := range a.sum {
		mean := a.sum[i] / n
		out[i] = math.Max(0, (a.sumSq[i]-n*mean*mean)/(n-1))
	}
	return out
}

// StdErr returns the per-channel standard error of the mean
func (a *Accumulator) StdErr() []float64 {
	out := a.Variance()
	for i := range out {
		out[i] = math.Sqrt(out[i] / float64(max(a.count, 1)))
	}
	return out
}
