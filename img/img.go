// Package img defines the 2-D image object shared by the image processing
// packages: a row-major float64 pixel grid with world-coordinate geometry
// (origin and pixel size) and an optional region of interest.
package img

import (
	"errors"
	"fmt"
)

// Errors returned by image constructors and helpers.
var (
	ErrInvalidSize   = errors.New("img: width and height must be > 0")
	ErrShapeMismatch = errors.New("img: image dimensions mismatch")
	ErrRaggedRows    = errors.New("img: rows must have equal length")
)

// Image is a 2-D scalar field sampled on a regular grid.
//
// Data is stored row-major: the pixel at column ix, row iy lives at
// Data[iy*Width+ix]. X0/Y0 locate the first pixel in world coordinates and
// DX/DY are the pixel sizes (1 by default).
type Image struct {
	Data   []float64
	Width  int
	Height int

	X0, Y0 float64
	DX, DY float64

	roi ROI
}

// New creates a zero-filled image with unit pixel size.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Image{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
		DX:     1,
		DY:     1,
	}, nil
}

// NewFromRows creates an image from row slices (rows[iy][ix]).
func NewFromRows(rows [][]float64) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidSize
	}

	width := len(rows[0])
	im, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}

	for iy, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedRows
		}
		copy(im.Row(iy), row)
	}
	return im, nil
}

// At returns the pixel value at column ix, row iy.
func (im *Image) At(ix, iy int) float64 {
	return im.Data[iy*im.Width+ix]
}

// Set stores a pixel value at column ix, row iy.
func (im *Image) Set(ix, iy int, v float64) {
	im.Data[iy*im.Width+ix] = v
}

// Row returns the backing slice for row iy.
func (im *Image) Row(iy int) []float64 {
	return im.Data[iy*im.Width : (iy+1)*im.Width]
}

// Clone returns a deep copy including geometry and ROI.
func (im *Image) Clone() *Image {
	out := *im
	out.Data = make([]float64, len(im.Data))
	copy(out.Data, im.Data)
	return &out
}

// CloneShape returns a zero-filled image with the same dimensions, geometry,
// and ROI as im.
func (im *Image) CloneShape() *Image {
	out := *im
	out.Data = make([]float64, len(im.Data))
	return &out
}

// Fill sets every pixel to v.
func (im *Image) Fill(v float64) {
	for i := range im.Data {
		im.Data[i] = v
	}
}

// SameShape reports whether other has the same pixel dimensions.
func (im *Image) SameShape(other *Image) bool {
	return other != nil && im.Width == other.Width && im.Height == other.Height
}

// PixelToWorld converts pixel indices to world coordinates.
func (im *Image) PixelToWorld(ix, iy float64) (x, y float64) {
	return im.X0 + ix*im.DX, im.Y0 + iy*im.DY
}

// ROI restricts an operation to a subset of pixels.
type ROI interface {
	// Contains reports whether the pixel at column ix, row iy is inside.
	Contains(ix, iy int) bool
}

// RectROI is an axis-aligned rectangular region in pixel coordinates.
type RectROI struct {
	X, Y          int
	Width, Height int
}

// Contains implements [ROI].
func (r RectROI) Contains(ix, iy int) bool {
	return ix >= r.X && ix < r.X+r.Width && iy >= r.Y && iy < r.Y+r.Height
}

// CircleROI is a circular region in pixel coordinates.
type CircleROI struct {
	CX, CY float64
	R      float64
}

// Contains implements [ROI].
func (c CircleROI) Contains(ix, iy int) bool {
	dx := float64(ix) - c.CX
	dy := float64(iy) - c.CY
	return dx*dx+dy*dy <= c.R*c.R
}

// SetROI attaches a region of interest to the image.
func (im *Image) SetROI(roi ROI) {
	im.roi = roi
}

// ROI returns the attached region of interest, or nil.
func (im *Image) ROI() ROI {
	return im.roi
}

// ClearROI removes the region of interest.
func (im *Image) ClearROI() {
	im.roi = nil
}

// Mask returns a row-major boolean mask of the ROI, or nil when the whole
// image is selected.
func (im *Image) Mask() []bool {
	if im.roi == nil {
		return nil
	}

	mask := make([]bool, len(im.Data))
	for iy := 0; iy < im.Height; iy++ {
		for ix := 0; ix < im.Width; ix++ {
			mask[iy*im.Width+ix] = im.roi.Contains(ix, iy)
		}
	}
	return mask
}

// RestoreOutsideROI copies src pixels into dst wherever the source ROI does
// not apply, so an operation only takes effect inside the region of
// interest. Without an ROI this is a no-op.
func RestoreOutsideROI(dst, src *Image) error {
	if !dst.SameShape(src) {
		return ErrShapeMismatch
	}

	mask := src.Mask()
	if mask == nil {
		return nil
	}

	for i, inside := range mask {
		if !inside {
			dst.Data[i] = src.Data[i]
		}
	}
	return nil
}
