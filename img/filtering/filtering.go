// Package filtering provides spatial and frequency-domain image filters:
// Gaussian, moving average/median, adaptive Wiener, Butterworth, and a
// Gaussian bandpass FFT filter.
//
// Every filter returns a new image with the source geometry. When the source
// carries a region of interest, the filter result applies inside the ROI
// only and the remaining pixels are restored from the source.
package filtering

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-sciproc/img"
)

// Errors returned by filters.
var (
	ErrNilImage      = errors.New("filtering: nil image")
	ErrInvalidSigma  = errors.New("filtering: sigma must be > 0")
	ErrInvalidWindow = errors.New("filtering: window size must be odd and >= 1")
	ErrInvalidMode   = errors.New("filtering: unknown boundary mode")
	ErrInvalidCutoff = errors.New("filtering: cutoff ratio must be in (0, 0.5]")
	ErrInvalidOrder  = errors.New("filtering: order must be >= 1")
)

// gaussianKernel returns a normalized 1-D Gaussian kernel truncated at
// 4 sigma.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	inv := 1 / (2 * sigma * sigma)
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d * inv)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// convolveRows convolves every row with the kernel using the boundary mode.
func convolveRows(dst, src *img.Image, kernel []float64, mode BoundaryMode) {
	radius := len(kernel) / 2
	for iy := 0; iy < src.Height; iy++ {
		row := src.Row(iy)
		out := dst.Row(iy)
		for ix := 0; ix < src.Width; ix++ {
			acc := 0.0
			for k, w := range kernel {
				j, ok := resolveIndex(ix+k-radius, src.Width, mode)
				if ok {
					acc += w * row[j]
				}
			}
			out[ix] = acc
		}
	}
}

// convolveCols convolves every column with the kernel using the boundary mode.
func convolveCols(dst, src *img.Image, kernel []float64, mode BoundaryMode) {
	radius := len(kernel) / 2
	for ix := 0; ix < src.Width; ix++ {
		for iy := 0; iy < src.Height; iy++ {
			acc := 0.0
			for k, w := range kernel {
				j, ok := resolveIndex(iy+k-radius, src.Height, mode)
				if ok {
					acc += w * src.At(ix, j)
				}
			}
			dst.Set(ix, iy, acc)
		}
	}
}

// Gaussian applies a Gaussian smoothing filter with the given sigma in
// pixels, computed separably with the reflect boundary.
func Gaussian(src *img.Image, sigma float64) (*img.Image, error) {
	return GaussianMode(src, sigma, ModeReflect)
}

// GaussianMode applies a Gaussian smoothing filter with an explicit
// boundary mode.
func GaussianMode(src *img.Image, sigma float64, mode BoundaryMode) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSigma, sigma)
	}
	if !validMode(mode) {
		return nil, ErrInvalidMode
	}

	kernel := gaussianKernel(sigma)
	tmp := src.CloneShape()
	convolveRows(tmp, src, kernel, mode)

	dst := src.CloneShape()
	convolveCols(dst, tmp, kernel, mode)

	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// MovingAverage applies an n x n uniform mean filter. n must be odd.
func MovingAverage(src *img.Image, n int, mode BoundaryMode) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if n < 1 || n%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, n)
	}
	if !validMode(mode) {
		return nil, ErrInvalidMode
	}

	kernel := make([]float64, n)
	for i := range kernel {
		kernel[i] = 1 / float64(n)
	}

	tmp := src.CloneShape()
	convolveRows(tmp, src, kernel, mode)

	dst := src.CloneShape()
	convolveCols(dst, tmp, kernel, mode)

	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// MovingMedian applies an n x n median filter. n must be odd.
func MovingMedian(src *img.Image, n int, mode BoundaryMode) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if n < 1 || n%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, n)
	}
	if !validMode(mode) {
		return nil, ErrInvalidMode
	}

	radius := n / 2
	dst := src.CloneShape()
	window := make([]float64, 0, n*n)

	for iy := 0; iy < src.Height; iy++ {
		for ix := 0; ix < src.Width; ix++ {
			window = window[:0]
			for dy := -radius; dy <= radius; dy++ {
				jy, okY := resolveIndex(iy+dy, src.Height, mode)
				for dx := -radius; dx <= radius; dx++ {
					jx, okX := resolveIndex(ix+dx, src.Width, mode)
					if okX && okY {
						window = append(window, src.At(jx, jy))
					} else {
						window = append(window, 0)
					}
				}
			}
			sort.Float64s(window)
			dst.Set(ix, iy, window[len(window)/2])
		}
	}

	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// Wiener applies an adaptive local-statistics noise filter over a 3x3
// neighborhood. The noise power is estimated as the mean local variance.
func Wiener(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	// Local mean and mean square over 3x3 windows with zero boundary.
	kernel := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

	mean := src.CloneShape()
	tmp := src.CloneShape()
	convolveRows(tmp, src, kernel, ModeConstant)
	convolveCols(mean, tmp, kernel, ModeConstant)

	squared := src.CloneShape()
	for i, v := range src.Data {
		squared.Data[i] = v * v
	}
	meanSq := src.CloneShape()
	convolveRows(tmp, squared, kernel, ModeConstant)
	convolveCols(meanSq, tmp, kernel, ModeConstant)

	variance := make([]float64, len(src.Data))
	noise := 0.0
	for i := range variance {
		v := meanSq.Data[i] - mean.Data[i]*mean.Data[i]
		if v < 0 {
			v = 0
		}
		variance[i] = v
		noise += v
	}
	noise /= float64(len(variance))

	dst := src.CloneShape()
	for i, v := range variance {
		m := mean.Data[i]
		if v <= noise {
			dst.Data[i] = m
			continue
		}
		dst.Data[i] = m + (v-noise)/v*(src.Data[i]-m)
	}

	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
