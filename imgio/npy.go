package imgio

import (
	"errors"
	"io"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-sciproc/img"
)

// readNpy loads a 2-D float NumPy array.
func readNpy(r io.Reader) (*img.Image, error) {
	var m mat.Dense
	if err := npyio.Read(r, &m); err != nil {
		return nil, err
	}

	rows, cols := m.Dims()
	if rows < 1 || cols < 1 {
		return nil, errors.New("imgio: empty npy array")
	}

	im, err := img.New(cols, rows)
	if err != nil {
		return nil, err
	}
	for iy := 0; iy < rows; iy++ {
		out := im.Row(iy)
		for ix := 0; ix < cols; ix++ {
			out[ix] = m.At(iy, ix)
		}
	}
	return im, nil
}

// writeNpy stores the image as a 2-D float64 NumPy array.
func writeNpy(w io.Writer, im *img.Image) error {
	data := make([]float64, len(im.Data))
	copy(data, im.Data)
	return npyio.Write(w, mat.NewDense(im.Height, im.Width, data))
}
