// Package stats computes descriptive statistics of 1-D signals in a single
// pass, with a streaming accumulator for blockwise processing.
package stats

import (
	"math"
	"sort"
)

// Stats holds signal statistics.
type Stats struct {
	Length        int
	Sum           float64
	Mean          float64
	Median        float64
	Variance      float64 // population variance
	Std           float64
	Skewness      float64
	Kurtosis      float64 // excess kurtosis
	Min           float64
	MinPos        int
	Max           float64
	MaxPos        int
	PeakToPeak    float64
	Energy        float64 // sum of squares
	RMS           float64
	ZeroCrossings int
}

// Calculate computes all statistics of the signal. Higher-order moments use
// Welford's online algorithm for numerical stability.
func Calculate(signal []float64) Stats {
	var acc Accumulator
	acc.Update(signal)
	s := acc.Result()
	s.Median = Median(signal)
	return s
}

// Median returns the median of the signal, 0 for empty input.
// The input slice is not modified.
func Median(signal []float64) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, signal)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return 0.5 * (sorted[n/2-1] + sorted[n/2])
}

// Accumulator collects statistics incrementally across blocks of samples.
// Results are bit-for-bit identical to a single [Calculate] call over the
// concatenated blocks, except for Median which needs the full signal.
type Accumulator struct {
	n          int
	mean       float64
	m2         float64
	m3         float64
	m4         float64
	sum        float64
	sumSq      float64
	minVal     float64
	minPos     int
	maxVal     float64
	maxPos     int
	crossings  int
	hasData    bool
	lastSample float64
}

// Update adds a block of samples to the running statistics.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		a.n++
		ni := float64(a.n)

		// Welford update; M4 before M3 before M2.
		delta := x - a.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(a.n-1)

		a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
		a.m3 += term1*deltaN*(float64(a.n-1)-1) - 3*deltaN*a.m2
		a.m2 += term1
		a.mean += deltaN

		a.sum += x
		a.sumSq += x * x

		if !a.hasData {
			a.minVal, a.maxVal = x, x
			a.minPos, a.maxPos = a.n-1, a.n-1
			a.hasData = true
		} else {
			if x < a.minVal {
				a.minVal = x
				a.minPos = a.n - 1
			}
			if x > a.maxVal {
				a.maxVal = x
				a.maxPos = a.n - 1
			}
		}

		if a.n > 1 && a.lastSample*x < 0 {
			a.crossings++
		}
		a.lastSample = x
	}
}

// Result computes the final statistics from accumulated data.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{}
	}

	nf := float64(a.n)
	variance := a.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (a.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:        a.n,
		Sum:           a.sum,
		Mean:          a.mean,
		Variance:      variance,
		Std:           math.Sqrt(variance),
		Skewness:      skewness,
		Kurtosis:      kurtosis,
		Min:           a.minVal,
		MinPos:        a.minPos,
		Max:           a.maxVal,
		MaxPos:        a.maxPos,
		PeakToPeak:    a.maxVal - a.minVal,
		Energy:        a.sumSq,
		RMS:           math.Sqrt(a.sumSq / nf),
		ZeroCrossings: a.crossings,
	}
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
