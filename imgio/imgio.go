// Package imgio reads and writes images in the common interchange formats:
// PNG, JPEG, GIF, BMP, TIFF, plain text/CSV, NumPy .npy, and the XYZ binary
// format. The format is selected by file extension.
package imgio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-sciproc/img"
)

// Errors returned by the I/O entry points.
var (
	ErrUnknownFormat = errors.New("imgio: unknown file format")
	ErrNilImage      = errors.New("imgio: nil image")
)

type format struct {
	read  func(r io.Reader) (*img.Image, error)
	write func(w io.Writer, im *img.Image) error
}

var formats = map[string]format{
	".png":  {readStd, writePNG},
	".jpg":  {readStd, writeJPEG},
	".jpeg": {readStd, writeJPEG},
	".gif":  {readStd, writeGIF},
	".bmp":  {readStd, writeBMP},
	".tif":  {readStd, writeTIFF},
	".tiff": {readStd, writeTIFF},
	".txt":  {readText, writeText},
	".csv":  {readText, writeText},
	".asc":  {readText, writeText},
	".npy":  {readNpy, writeNpy},
	".xyz":  {readXYZ, writeXYZ},
}

func formatFor(filename string) (format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	f, ok := formats[ext]
	if !ok {
		return format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return f, nil
}

// Read loads an image, selecting the format from the file extension.
func Read(filename string) (*img.Image, error) {
	f, err := formatFor(filename)
	if err != nil {
		return nil, err
	}

	fd, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("imgio: %w", err)
	}
	defer fd.Close()

	im, err := f.read(fd)
	if err != nil {
		return nil, fmt.Errorf("imgio: reading %s: %w", filename, err)
	}
	return im, nil
}

// Write stores an image, selecting the format from the file extension.
func Write(filename string, im *img.Image) error {
	if im == nil {
		return ErrNilImage
	}

	f, err := formatFor(filename)
	if err != nil {
		return err
	}

	fd, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("imgio: %w", err)
	}

	if err := f.write(fd, im); err != nil {
		fd.Close()
		return fmt.Errorf("imgio: writing %s: %w", filename, err)
	}
	return fd.Close()
}

// Extensions returns the supported file extensions, unordered.
func Extensions() []string {
	out := make([]string, 0, len(formats))
	for ext := range formats {
		out = append(out, ext)
	}
	return out
}
