// Package measure computes scalar measurements on images: intensity
// statistics, centroid positions, and the minimum enclosing circle of the
// bright region. All positions are reported in world coordinates and every
// measurement honors the image region of interest.
package measure

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-sciproc/img"
)

// Errors returned by measurements.
var (
	ErrNilImage = errors.New("measure: nil image")
	ErrEmptyROI = errors.New("measure: region of interest selects no pixels")
)

// Stats holds intensity statistics over the selected pixels.
type Stats struct {
	Count  int
	Min    float64
	Max    float64
	Sum    float64
	Mean   float64
	Median float64
	Std    float64
}

// selectedValues returns the pixel values inside the ROI (all pixels when no
// ROI is attached).
func selectedValues(im *img.Image) []float64 {
	mask := im.Mask()
	if mask == nil {
		out := make([]float64, len(im.Data))
		copy(out, im.Data)
		return out
	}

	out := make([]float64, 0, len(im.Data))
	for i, inside := range mask {
		if inside {
			out = append(out, im.Data[i])
		}
	}
	return out
}

// Calculate computes intensity statistics over the image ROI.
func Calculate(im *img.Image) (Stats, error) {
	if im == nil {
		return Stats{}, ErrNilImage
	}

	values := selectedValues(im)
	if len(values) == 0 {
		return Stats{}, ErrEmptyROI
	}

	s := Stats{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}
	for _, v := range values {
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Sum / float64(s.Count)

	m2 := 0.0
	for _, v := range values {
		d := v - s.Mean
		m2 += d * d
	}
	s.Std = math.Sqrt(m2 / float64(s.Count))

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		s.Median = values[mid]
	} else {
		s.Median = 0.5 * (values[mid-1] + values[mid])
	}
	return s, nil
}

// Centroid locates the intensity centroid with the Fourier phase method:
// each axis position is the circular mean of the pixel index weighted by
// intensity, which makes the estimate robust for structures that touch the
// image edges. The result is in world coordinates.
func Centroid(im *img.Image) (x, y float64, err error) {
	if im == nil {
		return 0, 0, ErrNilImage
	}

	mask := im.Mask()
	wx := 2 * math.Pi / float64(im.Width)
	wy := 2 * math.Pi / float64(im.Height)

	var sinX, cosX, sinY, cosY float64
	selected := 0
	for iy := 0; iy < im.Height; iy++ {
		for ix := 0; ix < im.Width; ix++ {
			i := iy*im.Width + ix
			if mask != nil && !mask[i] {
				continue
			}
			selected++

			v := im.Data[i]
			sinX += v * math.Sin(wx*float64(ix))
			cosX += v * math.Cos(wx*float64(ix))
			sinY += v * math.Sin(wy*float64(iy))
			cosY += v * math.Cos(wy*float64(iy))
		}
	}
	if selected == 0 {
		return 0, 0, ErrEmptyROI
	}

	cx := math.Atan2(sinX, cosX) / wx
	if cx < 0 {
		cx += float64(im.Width)
	}
	cy := math.Atan2(sinY, cosY) / wy
	if cy < 0 {
		cy += float64(im.Height)
	}

	x, y = im.PixelToWorld(cx, cy)
	return x, y, nil
}

// CentroidMoments locates the center of mass from first-order intensity
// moments. Pixel values are shifted by the selected minimum so the weights
// stay non-negative; a flat selection yields its geometric center. The
// result is in world coordinates.
func CentroidMoments(im *img.Image) (x, y float64, err error) {
	if im == nil {
		return 0, 0, ErrNilImage
	}

	mask := im.Mask()

	min := math.Inf(1)
	selected := 0
	for i, v := range im.Data {
		if mask != nil && !mask[i] {
			continue
		}
		selected++
		if v < min {
			min = v
		}
	}
	if selected == 0 {
		return 0, 0, ErrEmptyROI
	}

	var total, mx, my, gx, gy float64
	for iy := 0; iy < im.Height; iy++ {
		for ix := 0; ix < im.Width; ix++ {
			i := iy*im.Width + ix
			if mask != nil && !mask[i] {
				continue
			}

			w := im.Data[i] - min
			total += w
			mx += w * float64(ix)
			my += w * float64(iy)
			gx += float64(ix)
			gy += float64(iy)
		}
	}

	var cx, cy float64
	if total > 0 {
		cx, cy = mx/total, my/total
	} else {
		cx, cy = gx/float64(selected), gy/float64(selected)
	}

	x, y = im.PixelToWorld(cx, cy)
	return x, y, nil
}

// EnclosingCircle returns the minimum circle enclosing the pixels brighter
// than half the selected dynamic range (min + (max-min)/2). The center is in
// world coordinates and the radius in world units of the X axis.
func EnclosingCircle(im *img.Image) (x, y, radius float64, err error) {
	if im == nil {
		return 0, 0, 0, ErrNilImage
	}

	mask := im.Mask()

	min, max := math.Inf(1), math.Inf(-1)
	for i, v := range im.Data {
		if mask != nil && !mask[i] {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if math.IsInf(min, 1) {
		return 0, 0, 0, ErrEmptyROI
	}

	threshold := min + (max-min)/2
	var points []point
	for iy := 0; iy < im.Height; iy++ {
		for ix := 0; ix < im.Width; ix++ {
			i := iy*im.Width + ix
			if mask != nil && !mask[i] {
				continue
			}
			if im.Data[i] > threshold {
				points = append(points, point{float64(ix), float64(iy)})
			}
		}
	}
	if len(points) == 0 {
		return 0, 0, 0, ErrEmptyROI
	}

	c := enclosingCircle(points)
	x, y = im.PixelToWorld(c.center.x, c.center.y)
	return x, y, c.radius * im.DX, nil
}
