// Package threshold converts images to binary masks (0/1 pixel values).
package threshold

import (
	"errors"

	"github.com/cwbudde/algo-sciproc/img"
)

// ErrNilImage is returned when the source image is nil.
var ErrNilImage = errors.New("threshold: nil image")

const otsuBins = 256

// binarize returns a 0/1 image where source pixels exceed the threshold.
func binarize(src *img.Image, value float64) *img.Image {
	dst := src.CloneShape()
	for i, v := range src.Data {
		if v > value {
			dst.Data[i] = 1
		}
	}
	return dst
}

// Manual thresholds the image at the given value.
func Manual(src *img.Image, value float64) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	return binarize(src, value), nil
}

// Mean thresholds the image at its mean intensity.
func Mean(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	sum := 0.0
	for _, v := range src.Data {
		sum += v
	}
	return binarize(src, sum/float64(len(src.Data))), nil
}

// Otsu thresholds the image at the value maximizing the between-class
// variance of a 256-bin histogram of the image range.
func Otsu(src *img.Image) (*img.Image, error) {
	if src == nil {
		return nil, ErrNilImage
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
	if max == min {
		return binarize(src, min), nil
	}

	hist := make([]int, otsuBins)
	scale := float64(otsuBins-1) / (max - min)
	for _, v := range src.Data {
		hist[int((v-min)*scale)]++
	}

	total := float64(len(src.Data))
	sumAll := 0.0
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}

	var sumBelow, countBelow, best float64
	bestBin := 0
	for i := 0; i < otsuBins-1; i++ {
		countBelow += float64(hist[i])
		if countBelow == 0 {
			continue
		}
		countAbove := total - countBelow
		if countAbove == 0 {
			break
		}

		sumBelow += float64(i) * float64(hist[i])
		meanBelow := sumBelow / countBelow
		meanAbove := (sumAll - sumBelow) / countAbove
		d := meanBelow - meanAbove
		between := countBelow * countAbove * d * d
		if between > best {
			best = between
			bestBin = i
		}
	}

	value := min + (float64(bestBin)+0.5)/scale
	return binarize(src, value), nil
}
