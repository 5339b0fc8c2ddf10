// Package fourier provides 2-D Fourier transforms and frequency-domain
// spectra of images.
//
// Transforms run as row-column passes of 1-D FFT plans, so direct FFT2 calls
// require power-of-two dimensions. The padded entry points accept any size
// and zero-pad to the next power of two per axis.
package fourier

import (
	"errors"
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-sciproc/core"
	"github.com/cwbudde/algo-sciproc/img"
)

// Errors returned by transform functions.
var (
	ErrNilImage     = errors.New("fourier: nil image")
	ErrNotPowerOf2  = errors.New("fourier: dimensions must be powers of two")
	ErrSizeMismatch = errors.New("fourier: data length does not match dimensions")
)

// Plan2 performs 2-D FFTs of a fixed size using cached 1-D plans.
type Plan2 struct {
	width  int
	height int

	rowPlan *algofft.Plan[complex128]
	colPlan *algofft.Plan[complex128]

	colBuf []complex128
}

// NewPlan2 creates a 2-D FFT plan. Both dimensions must be powers of two.
func NewPlan2(width, height int) (*Plan2, error) {
	if !core.IsPowerOf2(width) || !core.IsPowerOf2(height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotPowerOf2, width, height)
	}

	rowPlan, err := algofft.NewPlan64(width)
	if err != nil {
		return nil, fmt.Errorf("fourier: row plan: %w", err)
	}

	colPlan := rowPlan
	if height != width {
		colPlan, err = algofft.NewPlan64(height)
		if err != nil {
			return nil, fmt.Errorf("fourier: column plan: %w", err)
		}
	}

	return &Plan2{
		width:   width,
		height:  height,
		rowPlan: rowPlan,
		colPlan: colPlan,
		colBuf:  make([]complex128, height),
	}, nil
}

// Width returns the plan width.
func (p *Plan2) Width() int { return p.width }

// Height returns the plan height.
func (p *Plan2) Height() int { return p.height }

func (p *Plan2) transform(data []complex128, inverse bool) error {
	if len(data) != p.width*p.height {
		return ErrSizeMismatch
	}

	apply := p.rowPlan.Forward
	applyCol := p.colPlan.Forward
	if inverse {
		apply = p.rowPlan.Inverse
		applyCol = p.colPlan.Inverse
	}

	for iy := 0; iy < p.height; iy++ {
		row := data[iy*p.width : (iy+1)*p.width]
		if err := apply(row, row); err != nil {
			return fmt.Errorf("fourier: row transform: %w", err)
		}
	}

	for ix := 0; ix < p.width; ix++ {
		for iy := 0; iy < p.height; iy++ {
			p.colBuf[iy] = data[iy*p.width+ix]
		}
		if err := applyCol(p.colBuf, p.colBuf); err != nil {
			return fmt.Errorf("fourier: column transform: %w", err)
		}
		for iy := 0; iy < p.height; iy++ {
			data[iy*p.width+ix] = p.colBuf[iy]
		}
	}
	return nil
}

// Forward computes the in-place 2-D FFT of row-major data.
func (p *Plan2) Forward(data []complex128) error {
	return p.transform(data, false)
}

// Inverse computes the in-place 2-D inverse FFT of row-major data.
func (p *Plan2) Inverse(data []complex128) error {
	return p.transform(data, true)
}

// FFT2 computes the 2-D FFT of an image with power-of-two dimensions.
func FFT2(im *img.Image) ([]complex128, error) {
	if im == nil {
		return nil, ErrNilImage
	}

	plan, err := NewPlan2(im.Width, im.Height)
	if err != nil {
		return nil, err
	}

	data := make([]complex128, len(im.Data))
	for i, v := range im.Data {
		data[i] = complex(v, 0)
	}

	if err := plan.Forward(data); err != nil {
		return nil, err
	}
	return data, nil
}

// IFFT2 computes the 2-D inverse FFT of row-major coefficients.
func IFFT2(coefs []complex128, width, height int) ([]complex128, error) {
	plan, err := NewPlan2(width, height)
	if err != nil {
		return nil, err
	}

	data := make([]complex128, len(coefs))
	copy(data, coefs)
	if err := plan.Inverse(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ForwardPadded computes the 2-D FFT of an arbitrary-size image, zero-padded
// to the next power of two per axis. Returns the coefficients and the padded
// dimensions.
func ForwardPadded(im *img.Image) (coefs []complex128, nw, nh int, err error) {
	if im == nil {
		return nil, 0, 0, ErrNilImage
	}

	nw = core.NextPowerOf2(im.Width)
	nh = core.NextPowerOf2(im.Height)

	plan, err := NewPlan2(nw, nh)
	if err != nil {
		return nil, 0, 0, err
	}

	data := make([]complex128, nw*nh)
	for iy := 0; iy < im.Height; iy++ {
		for ix := 0; ix < im.Width; ix++ {
			data[iy*nw+ix] = complex(im.At(ix, iy), 0)
		}
	}

	if err := plan.Forward(data); err != nil {
		return nil, 0, 0, err
	}
	return data, nw, nh, nil
}

// InverseCropReal inverse-transforms padded coefficients and returns the
// real part cropped to width x height.
func InverseCropReal(coefs []complex128, nw, nh, width, height int) ([]float64, error) {
	data, err := IFFT2(coefs, nw, nh)
	if err != nil {
		return nil, err
	}

	out := make([]float64, width*height)
	for iy := 0; iy < height; iy++ {
		for ix := 0; ix < width; ix++ {
			out[iy*width+ix] = real(data[iy*nw+ix])
		}
	}
	return out, nil
}

// InverseCropAbs inverse-transforms padded coefficients and returns the
// modulus cropped to width x height.
func InverseCropAbs(coefs []complex128, nw, nh, width, height int) ([]float64, error) {
	data, err := IFFT2(coefs, nw, nh)
	if err != nil {
		return nil, err
	}

	out := make([]float64, width*height)
	for iy := 0; iy < height; iy++ {
		for ix := 0; ix < width; ix++ {
			out[iy*width+ix] = cmplx.Abs(data[iy*nw+ix])
		}
	}
	return out, nil
}

// FFTShift2 moves the zero-frequency coefficient to the center of the grid.
func FFTShift2(data []complex128, width, height int) []complex128 {
	out := make([]complex128, len(data))
	for iy := 0; iy < height; iy++ {
		oy := (iy + height/2) % height
		for ix := 0; ix < width; ix++ {
			ox := (ix + width/2) % width
			out[oy*width+ox] = data[iy*width+ix]
		}
	}
	return out
}

// IFFTShift2 undoes [FFTShift2].
func IFFTShift2(data []complex128, width, height int) []complex128 {
	out := make([]complex128, len(data))
	for iy := 0; iy < height; iy++ {
		sy := (iy + height/2) % height
		for ix := 0; ix < width; ix++ {
			sx := (ix + width/2) % width
			out[iy*width+ix] = data[sy*width+sx]
		}
	}
	return out
}
