// Package exposure provides intensity rescaling operations: normalization,
// clipping, gamma and logarithmic adjustment, linear calibration, background
// offset correction, and histograms.
package exposure

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-sciproc/img"
)

// Errors returned by intensity operations.
var (
	ErrNilImage     = errors.New("exposure: nil image")
	ErrInvalidRange = errors.New("exposure: lo must be < hi")
	ErrInvalidGamma = errors.New("exposure: gamma must be > 0")
	ErrInvalidGain  = errors.New("exposure: gain must be > 0")
	ErrInvalidBins  = errors.New("exposure: bin count must be >= 1")
	ErrEmptyROI     = errors.New("exposure: region of interest selects no pixels")
)

// Normalize rescales the image range linearly onto [lo, hi]. A flat image
// maps to lo.
func Normalize(src *img.Image, lo, hi float64) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if lo >= hi {
		return nil, fmt.Errorf("%w: [%f, %f]", ErrInvalidRange, lo, hi)
	}

	min, max := src.Data[0], src.Data[0]
	for _, v := range src.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	dst := src.CloneShape()
	if max == min {
		dst.Fill(lo)
		return dst, nil
	}

	scale := (hi - lo) / (max - min)
	for i, v := range src.Data {
		dst.Data[i] = lo + (v-min)*scale
	}
	return dst, nil
}

// Clip limits pixel values to [lo, hi].
func Clip(src *img.Image, lo, hi float64) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if lo >= hi {
		return nil, fmt.Errorf("%w: [%f, %f]", ErrInvalidRange, lo, hi)
	}

	dst := src.CloneShape()
	for i, v := range src.Data {
		switch {
		case v < lo:
			dst.Data[i] = lo
		case v > hi:
			dst.Data[i] = hi
		default:
			dst.Data[i] = v
		}
	}
	return dst, nil
}

// AdjustGamma applies the power-law correction gain * z^gamma to the image
// normalized onto [0, 1], then restores the original range.
func AdjustGamma(src *img.Image, gamma, gain float64) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if gamma <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidGamma, gamma)
	}
	if gain <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidGain, gain)
	}

	min, max := src.Data[0], src.Data[0]
	for _, v := range src.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	dst := src.CloneShape()
	if max == min {
		copy(dst.Data, src.Data)
		return dst, nil
	}

	span := max - min
	for i, v := range src.Data {
		z := (v - min) / span
		dst.Data[i] = min + gain*math.Pow(z, gamma)*span
	}
	return dst, nil
}

// AdjustLog applies the logarithmic correction gain * log2(1 + z) on the
// image normalized onto [0, 1], then restores the original range.
func AdjustLog(src *img.Image, gain float64) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if gain <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidGain, gain)
	}

	min, max := src.Data[0], src.Data[0]
	for _, v := range src.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	dst := src.CloneShape()
	if max == min {
		copy(dst.Data, src.Data)
		return dst, nil
	}

	span := max - min
	for i, v := range src.Data {
		z := (v - min) / span
		dst.Data[i] = min + gain*math.Log2(1+z)*span
	}
	return dst, nil
}

// Calibrate applies the linear intensity calibration z -> a*z + b.
func Calibrate(src *img.Image, a, b float64) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := src.CloneShape()
	for i, v := range src.Data {
		dst.Data[i] = a*v + b
	}
	return dst, nil
}

// OffsetCorrection subtracts the mean value of the background region from
// every pixel.
func OffsetCorrection(src *img.Image, background img.ROI) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if background == nil {
		return nil, errors.New("exposure: nil background region")
	}

	sum := 0.0
	count := 0
	for iy := 0; iy < src.Height; iy++ {
		for ix := 0; ix < src.Width; ix++ {
			if background.Contains(ix, iy) {
				sum += src.At(ix, iy)
				count++
			}
		}
	}
	if count == 0 {
		return nil, ErrEmptyROI
	}

	offset := sum / float64(count)
	dst := src.CloneShape()
	for i, v := range src.Data {
		dst.Data[i] = v - offset
	}
	return dst, nil
}

// Histogram counts pixel values into bins equally spaced over [lo, hi].
// Values outside the range are ignored; the upper edge is inclusive. The
// returned edges slice has bins+1 entries.
func Histogram(src *img.Image, bins int, lo, hi float64) (counts []int, edges []float64, err error) {
	if src == nil {
		return nil, nil, ErrNilImage
	}
	if bins < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}
	if lo >= hi {
		return nil, nil, fmt.Errorf("%w: [%f, %f]", ErrInvalidRange, lo, hi)
	}

	counts = make([]int, bins)
	edges = make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	for _, v := range src.Data {
		if v < lo || v > hi {
			continue
		}
		bin := int((v - lo) / width)
		if bin == bins {
			bin--
		}
		counts[bin]++
	}
	return counts, edges, nil
}
