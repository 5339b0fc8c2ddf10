// Package morphology provides grayscale morphological operators over a disk
// structuring element: erosion, dilation, opening, closing, and top-hat
// transforms.
package morphology

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-sciproc/img"
)

// Errors returned by morphological operators.
var (
	ErrNilImage      = errors.New("morphology: nil image")
	ErrInvalidRadius = errors.New("morphology: radius must be >= 1")
)

type offset struct {
	dx, dy int
}

// diskOffsets returns the pixel offsets of a disk footprint of the given
// radius (the skimage disk: dx^2+dy^2 <= r^2).
func diskOffsets(radius int) []offset {
	var out []offset
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				out = append(out, offset{dx, dy})
			}
		}
	}
	return out
}

// clampIndex repeats the edge pixel outside the image.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// rank applies a moving extremum over the disk footprint. maximum selects
// dilation; otherwise erosion.
func rank(src *img.Image, offsets []offset, maximum bool) *img.Image {
	dst := src.CloneShape()
	for iy := 0; iy < src.Height; iy++ {
		for ix := 0; ix < src.Width; ix++ {
			best := math.Inf(1)
			if maximum {
				best = math.Inf(-1)
			}
			for _, o := range offsets {
				v := src.At(clampIndex(ix+o.dx, src.Width), clampIndex(iy+o.dy, src.Height))
				if maximum {
					if v > best {
						best = v
					}
				} else if v < best {
					best = v
				}
			}
			dst.Set(ix, iy, best)
		}
	}
	return dst
}

func validate(src *img.Image, radius int) error {
	if src == nil {
		return ErrNilImage
	}
	if radius < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}
	return nil
}

// Erosion replaces each pixel by the minimum over the disk footprint.
func Erosion(src *img.Image, radius int) (*img.Image, error) {
	if err := validate(src, radius); err != nil {
		return nil, err
	}

	dst := rank(src, diskOffsets(radius), false)
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// Dilation replaces each pixel by the maximum over the disk footprint.
func Dilation(src *img.Image, radius int) (*img.Image, error) {
	if err := validate(src, radius); err != nil {
		return nil, err
	}

	dst := rank(src, diskOffsets(radius), true)
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// Opening erodes then dilates, removing bright features smaller than the
// disk.
func Opening(src *img.Image, radius int) (*img.Image, error) {
	if err := validate(src, radius); err != nil {
		return nil, err
	}

	offsets := diskOffsets(radius)
	dst := rank(rank(src, offsets, false), offsets, true)
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// Closing dilates then erodes, removing dark features smaller than the disk.
func Closing(src *img.Image, radius int) (*img.Image, error) {
	if err := validate(src, radius); err != nil {
		return nil, err
	}

	offsets := diskOffsets(radius)
	dst := rank(rank(src, offsets, true), offsets, false)
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// WhiteTophat returns src minus its opening: the bright features smaller
// than the disk.
func WhiteTophat(src *img.Image, radius int) (*img.Image, error) {
	if err := validate(src, radius); err != nil {
		return nil, err
	}

	offsets := diskOffsets(radius)
	opened := rank(rank(src, offsets, false), offsets, true)
	dst := src.CloneShape()
	for i, v := range src.Data {
		dst.Data[i] = v - opened.Data[i]
	}
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// BlackTophat returns the closing minus src: the dark features smaller than
// the disk.
func BlackTophat(src *img.Image, radius int) (*img.Image, error) {
	if err := validate(src, radius); err != nil {
		return nil, err
	}

	offsets := diskOffsets(radius)
	closed := rank(rank(src, offsets, true), offsets, false)
	dst := src.CloneShape()
	for i, v := range src.Data {
		dst.Data[i] = closed.Data[i] - v
	}
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
