package filtering

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sciproc/img"
	"github.com/cwbudde/algo-sciproc/img/fourier"
)

// ResultType selects how the inverse FFT of a frequency-domain filter is
// reduced to a real image.
type ResultType int

const (
	// ResultReal keeps the real part of the inverse transform.
	ResultReal ResultType = iota + 1

	// ResultAbs keeps the modulus of the inverse transform.
	ResultAbs
)

// normalizedFreq returns the normalized frequency (cycles/pixel, in
// [-0.5, 0.5)) of bin i in an unshifted FFT of size n.
func normalizedFreq(i, n int) float64 {
	if i <= n/2 {
		return float64(i) / float64(n)
	}
	return float64(i-n) / float64(n)
}

// applyRadialTransfer multiplies FFT coefficients by a radial transfer
// function h(r), with r the normalized radial frequency.
func applyRadialTransfer(coefs []complex128, nw, nh int, h func(r float64) float64) {
	for iy := 0; iy < nh; iy++ {
		fy := normalizedFreq(iy, nh)
		for ix := 0; ix < nw; ix++ {
			fx := normalizedFreq(ix, nw)
			r := math.Sqrt(fx*fx + fy*fy)
			coefs[iy*nw+ix] *= complex(h(r), 0)
		}
	}
}

// Butterworth applies a frequency-domain Butterworth filter.
//
// cutoffRatio is the cutoff as a fraction of the sampling frequency, in
// (0, 0.5]. The lowpass transfer is 1/(1+(r/c)^(2*order)); with highPass
// the complement is used. The image is zero-padded to power-of-two
// dimensions for the transform and cropped back.
func Butterworth(src *img.Image, cutoffRatio float64, highPass bool, order int) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if cutoffRatio <= 0 || cutoffRatio > 0.5 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidCutoff, cutoffRatio)
	}
	if order < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	coefs, nw, nh, err := fourier.ForwardPadded(src)
	if err != nil {
		return nil, err
	}

	exp := 2 * float64(order)
	applyRadialTransfer(coefs, nw, nh, func(r float64) float64 {
		lp := 1 / (1 + math.Pow(r/cutoffRatio, exp))
		if highPass {
			return 1 - lp
		}
		return lp
	})

	data, err := fourier.InverseCropReal(coefs, nw, nh, src.Width, src.Height)
	if err != nil {
		return nil, err
	}

	dst := src.CloneShape()
	dst.Data = data
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// FreqFFT applies a 2-D Gaussian bandpass filter in the frequency domain,
// centered at radial frequency f0 (cycles/pixel) with standard deviation
// sigma. resultType selects the inverse-FFT reduction.
func FreqFFT(src *img.Image, f0, sigma float64, resultType ResultType) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSigma, sigma)
	}
	if f0 < 0 {
		return nil, fmt.Errorf("filtering: center frequency must be >= 0: %f", f0)
	}

	coefs, nw, nh, err := fourier.ForwardPadded(src)
	if err != nil {
		return nil, err
	}

	inv := 1 / (2 * sigma * sigma)
	applyRadialTransfer(coefs, nw, nh, func(r float64) float64 {
		d := r - f0
		return math.Exp(-d * d * inv)
	})

	var data []float64
	switch resultType {
	case ResultAbs:
		data, err = fourier.InverseCropAbs(coefs, nw, nh, src.Width, src.Height)
	case ResultReal:
		data, err = fourier.InverseCropReal(coefs, nw, nh, src.Width, src.Height)
	default:
		return nil, fmt.Errorf("filtering: unknown result type %d", resultType)
	}
	if err != nil {
		return nil, err
	}

	dst := src.CloneShape()
	dst.Data = data
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
