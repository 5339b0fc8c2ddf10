// Package sigio reads and writes 1-D signals as two-column numeric text
// (x, y per line), with lenient delimiter and decimal-comma handling.
package sigio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-sciproc/internal/textdata"
)

// Errors returned by the signal I/O entry points.
var (
	ErrNoData      = errors.New("sigio: no numeric data")
	ErrBadColumns  = errors.New("sigio: rows must hold two columns")
	ErrLengthError = errors.New("sigio: x and y must have equal nonzero length")
)

// Decode parses a two-column signal from a reader.
func Decode(r io.Reader) (x, y []float64, err error) {
	rows, err := textdata.ReadRows(r)
	if err != nil {
		if errors.Is(err, textdata.ErrNoData) {
			return nil, nil, ErrNoData
		}
		return nil, nil, err
	}

	x = make([]float64, len(rows))
	y = make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, nil, fmt.Errorf("%w: row %d has %d", ErrBadColumns, i, len(row))
		}
		x[i], y[i] = row[0], row[1]
	}
	return x, y, nil
}

// Encode writes a two-column signal as tab-separated text.
func Encode(w io.Writer, x, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return ErrLengthError
	}

	bw := bufio.NewWriter(w)
	for i := range x {
		if _, err := bw.WriteString(textdata.FormatValue(x[i])); err != nil {
			return err
		}
		if err := bw.WriteByte('\t'); err != nil {
			return err
		}
		if _, err := bw.WriteString(textdata.FormatValue(y[i])); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read loads a two-column signal file.
func Read(filename string) (x, y []float64, err error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("sigio: %w", err)
	}
	defer fd.Close()

	x, y, err = Decode(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("sigio: reading %s: %w", filename, err)
	}
	return x, y, nil
}

// Write stores a two-column signal file.
func Write(filename string, x, y []float64) error {
	fd, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("sigio: %w", err)
	}

	if err := Encode(fd, x, y); err != nil {
		fd.Close()
		return fmt.Errorf("sigio: writing %s: %w", filename, err)
	}
	return fd.Close()
}
