package fourier

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sciproc/core"
	"github.com/cwbudde/algo-sciproc/img"
)

// FloorDB is the lower bound applied to log-scaled spectra.
const FloorDB = -140.0

// ErrInvalidPadding is returned for negative padding amounts.
var ErrInvalidPadding = errors.New("fourier: padding must be >= 0")

// spectrumImage builds the output image for a shifted 2-D spectrum,
// with frequency geometry derived from the padded size and pixel spacing.
func spectrumImage(src *img.Image, values []float64, nw, nh int) *img.Image {
	out := &img.Image{
		Data:   values,
		Width:  nw,
		Height: nh,
	}

	dfx := 1 / (float64(nw) * src.DX)
	dfy := 1 / (float64(nh) * src.DY)
	out.DX, out.DY = dfx, dfy
	out.X0 = -float64(nw/2) * dfx
	out.Y0 = -float64(nh/2) * dfy
	return out
}

func magnitude2(coefs []complex128) []float64 {
	n := len(coefs)
	out := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range coefs {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(out, re, im)
	return out
}

func power2(coefs []complex128) []float64 {
	n := len(coefs)
	out := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range coefs {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(out, re, im)
	return out
}

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

// MagnitudeSpectrum computes the fftshifted 2-D magnitude spectrum of an
// image as a new image with frequency geometry. With logScale the values
// are in dB (20*log10), floored at [FloorDB].
func MagnitudeSpectrum(im *img.Image, logScale bool) (*img.Image, error) {
	coefs, nw, nh, err := ForwardPadded(im)
	if err != nil {
		return nil, err
	}

	mag := magnitude2(FFTShift2(coefs, nw, nh))
	if logScale {
		toLogScale(mag, false)
	}
	return spectrumImage(im, mag, nw, nh), nil
}

// PhaseSpectrum computes the fftshifted 2-D phase spectrum in radians.
func PhaseSpectrum(im *img.Image) (*img.Image, error) {
	coefs, nw, nh, err := ForwardPadded(im)
	if err != nil {
		return nil, err
	}

	shifted := FFTShift2(coefs, nw, nh)
	phase := make([]float64, len(shifted))
	for i, c := range shifted {
		phase[i] = cmplx.Phase(c)
	}
	return spectrumImage(im, phase, nw, nh), nil
}

// PSD computes the fftshifted 2-D power spectral density |X|^2 / (W*H),
// normalized by the unpadded pixel count. With logScale the values are in
// dB (10*log10), floored at [FloorDB].
func PSD(im *img.Image, logScale bool) (*img.Image, error) {
	coefs, nw, nh, err := ForwardPadded(im)
	if err != nil {
		return nil, err
	}

	psd := power2(FFTShift2(coefs, nw, nh))
	scale := 1 / float64(im.Width*im.Height)
	for i := range psd {
		psd[i] *= scale
	}

	if logScale {
		toLogScale(psd, true)
	}
	return spectrumImage(im, psd, nw, nh), nil
}

// PadPosition selects where [ZeroPad2] places the original pixels.
type PadPosition int

const (
	// PadBottomRight keeps the image in the top-left corner.
	PadBottomRight PadPosition = iota + 1

	// PadCenter centers the image inside the padded frame.
	PadCenter
)

// ZeroPad2 adds rows and cols zero pixels around an image. The world origin
// is adjusted so existing pixels keep their world coordinates.
func ZeroPad2(im *img.Image, rows, cols int, position PadPosition) (*img.Image, error) {
	if im == nil {
		return nil, ErrNilImage
	}
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidPadding
	}

	out, err := img.New(im.Width+cols, im.Height+rows)
	if err != nil {
		return nil, err
	}
	out.DX, out.DY = im.DX, im.DY

	offX, offY := 0, 0
	if position == PadCenter {
		offX = cols / 2
		offY = rows / 2
	}

	out.X0 = im.X0 - float64(offX)*im.DX
	out.Y0 = im.Y0 - float64(offY)*im.DY

	for iy := 0; iy < im.Height; iy++ {
		copy(out.Row(iy+offY)[offX:offX+im.Width], im.Row(iy))
	}
	return out, nil
}
