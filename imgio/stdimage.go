package imgio

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/cwbudde/algo-sciproc/img"
)

// readStd decodes any registered image format and converts it to a
// grayscale float image using the ITU-R 601 luma weights, on the 8-bit
// scale.
func readStd(r io.Reader) (*img.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	im, err := img.New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for iy := 0; iy < im.Height; iy++ {
		for ix := 0; ix < im.Width; ix++ {
			cr, cg, cb, _ := src.At(bounds.Min.X+ix, bounds.Min.Y+iy).RGBA()
			lum := 0.299*float64(cr) + 0.587*float64(cg) + 0.114*float64(cb)
			im.Set(ix, iy, lum/257)
		}
	}
	return im, nil
}

// toGray8 rescales the image range onto [0, 255] and converts to an 8-bit
// grayscale image. A flat image maps to black.
func toGray8(im *img.Image) *image.Gray {
	min, max := im.Data[0], im.Data[0]
	for _, v := range im.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	scale := 0.0
	if max > min {
		scale = 255 / (max - min)
	}

	out := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
	for iy := 0; iy < im.Height; iy++ {
		for ix := 0; ix < im.Width; ix++ {
			out.Pix[iy*out.Stride+ix] = uint8((im.At(ix, iy)-min)*scale + 0.5)
		}
	}
	return out
}

func writePNG(w io.Writer, im *img.Image) error {
	return png.Encode(w, toGray8(im))
}

func writeJPEG(w io.Writer, im *img.Image) error {
	return jpeg.Encode(w, toGray8(im), &jpeg.Options{Quality: 95})
}

func writeGIF(w io.Writer, im *img.Image) error {
	return gif.Encode(w, toGray8(im), &gif.Options{NumColors: 256})
}

func writeBMP(w io.Writer, im *img.Image) error {
	return bmp.Encode(w, toGray8(im))
}

func writeTIFF(w io.Writer, im *img.Image) error {
	return tiff.Encode(w, toGray8(im), nil)
}
