package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-sciproc/core"
	"github.com/cwbudde/algo-sciproc/sig/window"
)

const defaultSegmentSize = 256

// Option configures PSD estimation.
type Option func(*psdConfig)

type psdConfig struct {
	segmentSize int
	windowType  window.Type
	logScale    bool
}

// WithSegmentSize sets the Welch segment size. It is rounded up to the next
// power of two and clamped to the signal length.
func WithSegmentSize(n int) Option {
	return func(c *psdConfig) {
		c.segmentSize = n
	}
}

// WithWindowType selects the analysis window (default Hann).
func WithWindowType(typ window.Type) Option {
	return func(c *psdConfig) {
		c.windowType = typ
	}
}

// WithLogScale returns the PSD in dB (10*log10), floored at [FloorDB].
func WithLogScale() Option {
	return func(c *psdConfig) {
		c.logScale = true
	}
}

func applyPSDOptions(opts []Option) psdConfig {
	cfg := psdConfig{
		segmentSize: defaultSegmentSize,
		windowType:  window.TypeHann,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// largestPow2AtMost returns the largest power of two <= n (minimum 2).
func largestPow2AtMost(n int) int {
	p := core.NextPowerOf2(n)
	if p > n {
		p /= 2
	}
	if p < 2 {
		p = 2
	}
	return p
}

// segmentPSD accumulates the one-sided PSD of one windowed segment into acc.
func segmentPSD(acc []float64, plan *algofft.Plan[complex128], seg, coeffs []float64, sampleRate float64) error {
	n := len(seg)
	in := make([]complex128, n)
	for i := range seg {
		in[i] = complex(seg[i]*coeffs[i], 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return fmt.Errorf("spectrum: forward fft: %w", err)
	}

	pw := power(out[:len(acc)])
	scale := 1 / (sampleRate * float64(n) * window.PowerGain(coeffs))
	last := len(acc) - 1
	for k := range acc {
		v := pw[k] * scale
		// One-sided: double everything except DC and Nyquist.
		if k > 0 && k < last {
			v *= 2
		}
		acc[k] += v
	}
	return nil
}

// Periodogram computes a one-sided single-segment PSD estimate of y.
//
// The whole signal forms one segment, zero-padded to a power of two; scaling
// uses the original sample count so Parseval consistency holds for the
// unpadded signal. The default window is Hann; use
// WithWindowType(window.TypeRectangular) for the raw periodogram.
func Periodogram(y []float64, sampleRate float64, opts ...Option) (freqs, psd []float64, err error) {
	if len(y) < 2 {
		return nil, nil, ErrEmptyInput
	}
	if sampleRate <= 0 {
		return nil, nil, ErrInvalidSampleRate
	}

	cfg := applyPSDOptions(opts)

	n := core.NextPowerOf2(len(y))
	coeffs, err := window.Generate(cfg.windowType, len(y), window.WithPeriodic())
	if err != nil {
		return nil, nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range y {
		in[i] = complex(v*coeffs[i], 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	bins := n/2 + 1
	psd = power(out[:bins])
	scale := 1 / (sampleRate * float64(len(y)) * window.PowerGain(coeffs))
	for k := range psd {
		psd[k] *= scale
		if k > 0 && k < bins-1 {
			psd[k] *= 2
		}
	}

	if cfg.logScale {
		toLogScale(psd, true)
	}

	freqs = make([]float64, bins)
	df := sampleRate / float64(n)
	for k := range freqs {
		freqs[k] = float64(k) * df
	}
	return freqs, psd, nil
}

// WelchPSD computes a one-sided Welch PSD estimate of y.
//
// Segments of the configured size (default 256, power of two, clamped to the
// signal length) overlap by 50% and are averaged after Hann windowing.
func WelchPSD(y []float64, sampleRate float64, opts ...Option) (freqs, psd []float64, err error) {
	if len(y) < 2 {
		return nil, nil, ErrEmptyInput
	}
	if sampleRate <= 0 {
		return nil, nil, ErrInvalidSampleRate
	}

	cfg := applyPSDOptions(opts)

	segSize := core.NextPowerOf2(cfg.segmentSize)
	if segSize > len(y) {
		segSize = largestPow2AtMost(len(y))
	}
	if segSize < 2 {
		return nil, nil, ErrEmptyInput
	}

	coeffs, err := window.Generate(cfg.windowType, segSize, window.WithPeriodic())
	if err != nil {
		return nil, nil, err
	}

	plan, err := algofft.NewPlan64(segSize)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	bins := segSize/2 + 1
	acc := make([]float64, bins)
	hop := segSize / 2

	segments := 0
	for start := 0; start+segSize <= len(y); start += hop {
		if err := segmentPSD(acc, plan, y[start:start+segSize], coeffs, sampleRate); err != nil {
			return nil, nil, err
		}
		segments++
	}

	if segments == 0 {
		return nil, nil, ErrEmptyInput
	}

	inv := 1 / float64(segments)
	for k := range acc {
		acc[k] *= inv
	}

	if cfg.logScale {
		toLogScale(acc, true)
	}

	freqs = make([]float64, bins)
	df := sampleRate / float64(segSize)
	for k := range freqs {
		freqs[k] = float64(k) * df
	}
	return freqs, acc, nil
}
