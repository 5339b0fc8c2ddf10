// Package geometry provides axis-aligned image transforms: flips, quarter
// rotations, transposition, pixel binning, and bilinear resampling.
package geometry

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sciproc/img"
)

// Errors returned by transforms.
var (
	ErrNilImage      = errors.New("geometry: nil image")
	ErrInvalidFactor = errors.New("geometry: binning factor must be >= 1")
	ErrNotDivisible  = errors.New("geometry: image dimensions not divisible by binning factor")
	ErrInvalidSize   = errors.New("geometry: target dimensions must be > 0")
)

// FlipH mirrors the image horizontally (left-right).
func FlipH(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := src.CloneShape()
	for iy := 0; iy < src.Height; iy++ {
		row := src.Row(iy)
		out := dst.Row(iy)
		for ix := 0; ix < src.Width; ix++ {
			out[ix] = row[src.Width-1-ix]
		}
	}
	return dst, nil
}

// FlipV mirrors the image vertically (top-bottom).
func FlipV(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := src.CloneShape()
	for iy := 0; iy < src.Height; iy++ {
		copy(dst.Row(iy), src.Row(src.Height-1-iy))
	}
	return dst, nil
}

// transposedShape returns a zero image with swapped dimensions, pixel sizes,
// and axis origins.
func transposedShape(src *img.Image) *img.Image {
	dst, _ := img.New(src.Height, src.Width)
	dst.X0, dst.Y0 = src.Y0, src.X0
	dst.DX, dst.DY = src.DY, src.DX
	return dst
}

// Transpose swaps rows and columns.
func Transpose(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := transposedShape(src)
	for iy := 0; iy < src.Height; iy++ {
		for ix := 0; ix < src.Width; ix++ {
			dst.Set(iy, ix, src.At(ix, iy))
		}
	}
	return dst, nil
}

// Rotate90 rotates the image 90 degrees counterclockwise.
func Rotate90(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := transposedShape(src)
	for iy := 0; iy < src.Height; iy++ {
		for ix := 0; ix < src.Width; ix++ {
			dst.Set(iy, src.Width-1-ix, src.At(ix, iy))
		}
	}
	return dst, nil
}

// Rotate270 rotates the image 90 degrees clockwise.
func Rotate270(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := transposedShape(src)
	for iy := 0; iy < src.Height; iy++ {
		for ix := 0; ix < src.Width; ix++ {
			dst.Set(src.Height-1-iy, ix, src.At(ix, iy))
		}
	}
	return dst, nil
}

// Rotate180 rotates the image half a turn.
func Rotate180(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := src.CloneShape()
	n := len(src.Data)
	for i, v := range src.Data {
		dst.Data[n-1-i] = v
	}
	return dst, nil
}

// BinOperation selects how pixels inside a bin are reduced.
type BinOperation int

const (
	// BinSum adds the pixels of each bin.
	BinSum BinOperation = iota + 1

	// BinMean averages the pixels of each bin.
	BinMean

	// BinMin keeps the smallest pixel of each bin.
	BinMin

	// BinMax keeps the largest pixel of each bin.
	BinMax
)

// Binning reduces the image by grouping factor x factor pixel blocks with
// the given reduction. Both dimensions must be divisible by the factor; the
// pixel size grows accordingly.
func Binning(src *img.Image, factor int, op BinOperation) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if factor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}
	if src.Width%factor != 0 || src.Height%factor != 0 {
		return nil, fmt.Errorf("%w: %dx%d by %d", ErrNotDivisible, src.Width, src.Height, factor)
	}

	dst, err := img.New(src.Width/factor, src.Height/factor)
	if err != nil {
		return nil, err
	}
	dst.X0, dst.Y0 = src.X0, src.Y0
	dst.DX = src.DX * float64(factor)
	dst.DY = src.DY * float64(factor)

	count := float64(factor * factor)
	for by := 0; by < dst.Height; by++ {
		for bx := 0; bx < dst.Width; bx++ {
			first := src.At(bx*factor, by*factor)
			sum, min, max := 0.0, first, first
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					v := src.At(bx*factor+dx, by*factor+dy)
					sum += v
					if v < min {
						min = v
					}
					if v > max {
						max = v
					}
				}
			}

			switch op {
			case BinSum:
				dst.Set(bx, by, sum)
			case BinMean:
				dst.Set(bx, by, sum/count)
			case BinMin:
				dst.Set(bx, by, min)
			case BinMax:
				dst.Set(bx, by, max)
			default:
				return nil, fmt.Errorf("geometry: unknown binning operation %d", op)
			}
		}
	}
	return dst, nil
}

// Resize resamples the image to the target dimensions with bilinear
// interpolation. World extents are preserved: the pixel sizes scale by the
// resampling ratio.
func Resize(src *img.Image, width, height int) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	dst, err := img.New(width, height)
	if err != nil {
		return nil, err
	}

	sx := float64(src.Width) / float64(width)
	sy := float64(src.Height) / float64(height)
	dst.X0, dst.Y0 = src.X0, src.Y0
	dst.DX = src.DX * sx
	dst.DY = src.DY * sy

	for iy := 0; iy < height; iy++ {
		fy := (float64(iy)+0.5)*sy - 0.5
		y0 := int(fy)
		if fy < 0 {
			fy, y0 = 0, 0
		}
		if y0 >= src.Height-1 {
			y0 = src.Height - 1
		}
		y1 := y0
		if y0 < src.Height-1 {
			y1 = y0 + 1
		}
		wy := fy - float64(y0)

		for ix := 0; ix < width; ix++ {
			fx := (float64(ix)+0.5)*sx - 0.5
			x0 := int(fx)
			if fx < 0 {
				fx, x0 = 0, 0
			}
			if x0 >= src.Width-1 {
				x0 = src.Width - 1
			}
			x1 := x0
			if x0 < src.Width-1 {
				x1 = x0 + 1
			}
			wx := fx - float64(x0)

			top := (1-wx)*src.At(x0, y0) + wx*src.At(x1, y0)
			bottom := (1-wx)*src.At(x0, y1) + wx*src.At(x1, y1)
			dst.Set(ix, iy, (1-wy)*top+wy*bottom)
		}
	}
	return dst, nil
}
