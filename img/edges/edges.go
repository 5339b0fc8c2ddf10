// Package edges provides first and second derivative edge operators built
// on 3x3 kernel convolutions: Sobel, Prewitt, Scharr, and the Laplacian.
package edges

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-sciproc/img"
)

// ErrNilImage is returned when the source image is nil.
var ErrNilImage = errors.New("edges: nil image")

type kernel3 [9]float64

var (
	sobelX = kernel3{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
	sobelY = kernel3{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
	prewittX = kernel3{
		-1, 0, 1,
		-1, 0, 1,
		-1, 0, 1,
	}
	prewittY = kernel3{
		-1, -1, -1,
		0, 0, 0,
		1, 1, 1,
	}
	scharrX = kernel3{
		-3, 0, 3,
		-10, 0, 10,
		-3, 0, 3,
	}
	scharrY = kernel3{
		-3, -10, -3,
		0, 0, 0,
		3, 10, 3,
	}
	laplace = kernel3{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}
)

// reflect maps an out-of-range index back into [0, n) by reflection about
// the edge.
func reflect(i, n int) int {
	if i < 0 {
		return -i - 1
	}
	if i >= n {
		return 2*n - 1 - i
	}
	return i
}

// convolve3 applies a 3x3 kernel with the reflect boundary.
func convolve3(src *img.Image, k kernel3) *img.Image {
	dst := src.CloneShape()
	for iy := 0; iy < src.Height; iy++ {
		for ix := 0; ix < src.Width; ix++ {
			acc := 0.0
			for dy := -1; dy <= 1; dy++ {
				jy := reflect(iy+dy, src.Height)
				for dx := -1; dx <= 1; dx++ {
					jx := reflect(ix+dx, src.Width)
					acc += k[(dy+1)*3+dx+1] * src.At(jx, jy)
				}
			}
			dst.Set(ix, iy, acc)
		}
	}
	return dst
}

// magnitude combines two directional responses into the gradient magnitude.
func magnitude(gx, gy *img.Image) *img.Image {
	out := gx.CloneShape()
	for i := range out.Data {
		out.Data[i] = math.Hypot(gx.Data[i], gy.Data[i])
	}
	return out
}

func directional(src *img.Image, k kernel3) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := convolve3(src, k)
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

func combined(src *img.Image, kx, ky kernel3) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	dst := magnitude(convolve3(src, kx), convolve3(src, ky))
	if err := img.RestoreOutsideROI(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// Sobel returns the Sobel gradient magnitude.
func Sobel(src *img.Image) (*img.Image, error) { return combined(src, sobelX, sobelY) }

// SobelH returns the horizontal Sobel response (vertical edges).
func SobelH(src *img.Image) (*img.Image, error) { return directional(src, sobelX) }

// SobelV returns the vertical Sobel response (horizontal edges).
func SobelV(src *img.Image) (*img.Image, error) { return directional(src, sobelY) }

// Prewitt returns the Prewitt gradient magnitude.
func Prewitt(src *img.Image) (*img.Image, error) { return combined(src, prewittX, prewittY) }

// PrewittH returns the horizontal Prewitt response.
func PrewittH(src *img.Image) (*img.Image, error) { return directional(src, prewittX) }

// PrewittV returns the vertical Prewitt response.
func PrewittV(src *img.Image) (*img.Image, error) { return directional(src, prewittY) }

// Scharr returns the Scharr gradient magnitude.
func Scharr(src *img.Image) (*img.Image, error) { return combined(src, scharrX, scharrY) }

// Laplace returns the 4-neighbor Laplacian.
func Laplace(src *img.Image) (*img.Image, error) { return directional(src, laplace) }
