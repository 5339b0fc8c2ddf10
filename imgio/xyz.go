package imgio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/cwbudde/algo-sciproc/img"
)

// ErrValueRange is returned when a pixel does not fit the 16-bit payload of
// the XYZ format.
var ErrValueRange = errors.New("imgio: pixel value outside uint16 range")

// readXYZ loads an XYZ binary image: little-endian uint16 column count,
// uint16 row count, then row-major uint16 pixels. Columns are stored
// right-to-left and flipped on read.
func readXYZ(r io.Reader) (*img.Image, error) {
	br := bufio.NewReader(r)

	var cols, rows uint16
	if err := binary.Read(br, binary.LittleEndian, &cols); err != nil {
		return nil, err
	}
	if err := binary.Read(br, binary.LittleEndian, &rows); err != nil {
		return nil, err
	}
	if cols == 0 || rows == 0 {
		return nil, errors.New("imgio: empty xyz image")
	}

	payload := make([]uint16, int(cols)*int(rows))
	if err := binary.Read(br, binary.LittleEndian, payload); err != nil {
		return nil, err
	}

	im, err := img.New(int(cols), int(rows))
	if err != nil {
		return nil, err
	}
	for iy := 0; iy < im.Height; iy++ {
		src := payload[iy*im.Width : (iy+1)*im.Width]
		out := im.Row(iy)
		for ix := range out {
			out[ix] = float64(src[im.Width-1-ix])
		}
	}
	return im, nil
}

// writeXYZ stores the image in the XYZ binary layout. Pixels are rounded
// and must fit in uint16.
func writeXYZ(w io.Writer, im *img.Image) error {
	if im.Width > math.MaxUint16 || im.Height > math.MaxUint16 {
		return errors.New("imgio: image too large for xyz format")
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint16(im.Width)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint16(im.Height)); err != nil {
		return err
	}

	payload := make([]uint16, len(im.Data))
	for iy := 0; iy < im.Height; iy++ {
		row := im.Row(iy)
		for ix, v := range row {
			r := math.Round(v)
			if r < 0 || r > math.MaxUint16 || math.IsNaN(r) {
				return ErrValueRange
			}
			payload[iy*im.Width+im.Width-1-ix] = uint16(r)
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, payload); err != nil {
		return err
	}
	return bw.Flush()
}
