package imgio

import (
	"bufio"
	"errors"
	"io"

	"github.com/cwbudde/algo-sciproc/img"
	"github.com/cwbudde/algo-sciproc/internal/textdata"
)

// ErrNoData is returned when a text file holds no numeric rows.
var ErrNoData = errors.New("imgio: no numeric data")

// readText parses a delimited text image: one image row per line. Field
// separators and decimal commas are handled leniently.
func readText(r io.Reader) (*img.Image, error) {
	rows, err := textdata.ReadRows(r)
	if err != nil {
		if errors.Is(err, textdata.ErrNoData) {
			return nil, ErrNoData
		}
		return nil, err
	}
	return img.NewFromRows(rows)
}

// writeText stores the image as tab-separated text, one row per line.
func writeText(w io.Writer, im *img.Image) error {
	bw := bufio.NewWriter(w)
	for iy := 0; iy < im.Height; iy++ {
		row := im.Row(iy)
		for ix, v := range row {
			if ix > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(textdata.FormatValue(v)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
