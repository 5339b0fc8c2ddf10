// Package window provides window functions for spectral estimation.
//
// Only the windows the spectral estimators actually use are provided:
// rectangular, Hann, Hamming, and Blackman. Both symmetric and periodic
// forms are supported; spectral estimation uses the periodic form.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	// TypeRectangular is the all-ones window.
	TypeRectangular Type = iota + 1

	// TypeHann is the raised-cosine window.
	TypeHann

	// TypeHamming is the Hamming window.
	TypeHamming

	// TypeBlackman is the classic three-term Blackman window.
	TypeBlackman
)

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic (FFT) form instead of the symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns the window coefficients for the given type and size.
func Generate(typ Type, size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	denom := float64(size - 1)
	if cfg.periodic {
		denom = float64(size)
	}

	switch typ {
	case TypeRectangular:
		for i := range out {
			out[i] = 1
		}
	case TypeHann:
		for i := range out {
			out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/denom)
		}
	case TypeHamming:
		for i := range out {
			out[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/denom)
		}
	case TypeBlackman:
		for i := range out {
			x := 2 * math.Pi * float64(i) / denom
			out[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
		}
	default:
		return nil, fmt.Errorf("window: unknown type %d", typ)
	}

	return out, nil
}

// Apply multiplies samples by coeffs into a new slice.
func Apply(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// ApplyInPlace multiplies samples by coeffs in place.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// CoherentGain returns the mean of the window coefficients.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, w := range coeffs {
		sum += w
	}
	return sum / float64(len(coeffs))
}

// PowerGain returns the mean of the squared window coefficients.
// PSD estimators divide by this to remove the window's power loss.
func PowerGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, w := range coeffs {
		sum += w * w
	}
	return sum / float64(len(coeffs))
}
