// Package textdata parses delimited numeric text with lenient separator
// handling: commas, semicolons, or whitespace between fields, and decimal
// commas inside them.
package textdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoData is returned when a stream holds no numeric rows.
var ErrNoData = errors.New("textdata: no numeric data")

// splitLine tokenizes one line. Semicolons always separate fields. Commas
// separate fields too, unless another separator is already present, in
// which case they are decimal commas.
func splitLine(line string) []string {
	line = strings.ReplaceAll(line, ";", " ")
	if strings.ContainsAny(line, " \t") {
		line = strings.ReplaceAll(line, ",", ".")
	} else {
		line = strings.ReplaceAll(line, ",", " ")
	}
	return strings.Fields(line)
}

// ParseLine parses one line into floats. A field with a decimal comma is
// retried with a dot.
func ParseLine(line string) ([]float64, error) {
	fields := splitLine(line)
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			v, err = strconv.ParseFloat(strings.Replace(field, ",", ".", 1), 64)
		}
		if err != nil {
			return nil, fmt.Errorf("textdata: bad numeric field %q", field)
		}
		out[i] = v
	}
	return out, nil
}

// ReadRows parses all non-comment rows of a text stream. Leading
// non-numeric header lines are skipped; a non-numeric line inside the data
// block is an error.
func ReadRows(r io.Reader) ([][]float64, error) {
	var rows [][]float64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		row, err := ParseLine(line)
		if err != nil {
			if len(rows) == 0 {
				continue // header line
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// FormatValue renders a float the way the writers store it.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
