// Package spectrum provides frequency-domain analysis of 1-D signals:
// magnitude and phase spectra, and power spectral density estimation.
//
// Signals are sampled on a uniform x axis. Two-sided spectra are returned
// fftshifted (negative frequencies first), matching the usual scientific
// plotting convention. PSD estimates are one-sided.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sciproc/core"
)

// Errors returned by spectral estimation functions.
var (
	ErrEmptyInput        = errors.New("spectrum: empty input")
	ErrLengthMismatch    = errors.New("spectrum: x/y length mismatch")
	ErrNonUniformX       = errors.New("spectrum: x axis must be uniformly spaced")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
)

// FloorDB is the lower bound applied to log-scaled spectra.
const FloorDB = -140.0

// FrequencyAxis returns the FFT bin frequencies for n samples spaced dx
// apart, in natural (unshifted) FFT order: 0, positive, then negative.
func FrequencyAxis(n int, dx float64) []float64 {
	out := make([]float64, n)
	if n == 0 || dx == 0 {
		return out
	}

	df := 1 / (float64(n) * dx)
	half := (n + 1) / 2
	for i := 0; i < half; i++ {
		out[i] = float64(i) * df
	}
	for i := half; i < n; i++ {
		out[i] = float64(i-n) * df
	}
	return out
}

// FFTShift reorders a slice so the zero-frequency bin moves to the center.
func FFTShift(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	half := n - n/2
	copy(out, in[half:])
	copy(out[n/2:], in[:half])
	return out
}

// IFFTShift undoes [FFTShift].
func IFFTShift(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	half := n / 2
	copy(out, in[half:])
	copy(out[n-half:], in[:half])
	return out
}

// sampleSpacing validates that x is uniform and returns the spacing.
func sampleSpacing(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, ErrEmptyInput
	}

	dx := x[1] - x[0]
	if dx <= 0 {
		return 0, ErrNonUniformX
	}

	for i := 2; i < len(x); i++ {
		if !core.NearlyEqual(x[i]-x[i-1], dx, 1e-9) {
			return 0, ErrNonUniformX
		}
	}
	return dx, nil
}

// fftPadded computes the FFT of y zero-padded to the next power of two.
// Returns the complex spectrum and the FFT size used.
func fftPadded(y []float64) ([]complex128, int, error) {
	n := core.NextPowerOf2(len(y))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, 0, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range y {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("spectrum: forward fft: %w", err)
	}
	return out, n, nil
}

// magnitude computes |X[k]| for all bins using vecmath.
func magnitude(bins []complex128) []float64 {
	n := len(bins)
	out := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(out, re, im)
	return out
}

// power computes |X[k]|^2 for all bins using vecmath.
func power(bins []complex128) []float64 {
	n := len(bins)
	out := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(out, re, im)
	return out
}

// toLogScale converts linear amplitudes to dB in place, flooring at FloorDB.
func toLogScale(values []float64, powerScale bool) {
	for i, v := range values {
		var db float64
		if powerScale {
			db = core.LinearPowerToDB(v)
		} else {
			db = core.LinearToDB(v)
		}
		if db < FloorDB || math.IsNaN(db) {
			db = FloorDB
		}
		values[i] = db
	}
}

// MagnitudeSpectrum computes the two-sided, fftshifted magnitude spectrum
// of y sampled on the uniform axis x.
//
// The signal is zero-padded to the next power of two; the returned frequency
// axis accounts for the padding. With logScale the magnitudes are returned
// in dB (20*log10), floored at [FloorDB].
func MagnitudeSpectrum(x, y []float64, logScale bool) (freqs, mag []float64, err error) {
	if len(y) == 0 {
		return nil, nil, ErrEmptyInput
	}
	if len(x) != len(y) {
		return nil, nil, ErrLengthMismatch
	}

	dx, err := sampleSpacing(x)
	if err != nil {
		return nil, nil, err
	}

	bins, n, err := fftPadded(y)
	if err != nil {
		return nil, nil, err
	}

	mag = FFTShift(magnitude(bins))
	if logScale {
		toLogScale(mag, false)
	}

	freqs = FFTShift(FrequencyAxis(n, dx))
	return freqs, mag, nil
}

// PhaseSpectrum computes the two-sided, fftshifted phase spectrum in radians
// of y sampled on the uniform axis x.
func PhaseSpectrum(x, y []float64) (freqs, phase []float64, err error) {
	if len(y) == 0 {
		return nil, nil, ErrEmptyInput
	}
	if len(x) != len(y) {
		return nil, nil, ErrLengthMismatch
	}

	dx, err := sampleSpacing(x)
	if err != nil {
		return nil, nil, err
	}

	bins, n, err := fftPadded(y)
	if err != nil {
		return nil, nil, err
	}

	phase = make([]float64, n)
	for i, c := range bins {
		phase[i] = cmplx.Phase(c)
	}

	return FFTShift(FrequencyAxis(n, dx)), FFTShift(phase), nil
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}
