package img

import (
	"testing"
)

func TestNewAndAccessors(t *testing.T) {
	im, err := New(4, 3)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if im.Width != 4 || im.Height != 3 || len(im.Data) != 12 {
		t.Fatalf("unexpected dims: %+v", im)
	}

	if im.DX != 1 || im.DY != 1 {
		t.Fatalf("default pixel size must be 1: %+v", im)
	}

	im.Set(2, 1, 5)
	if im.At(2, 1) != 5 {
		t.Fatalf("At/Set mismatch")
	}

	if im.Data[1*4+2] != 5 {
		t.Fatalf("row-major layout violated")
	}

	row := im.Row(1)
	if len(row) != 4 || row[2] != 5 {
		t.Fatalf("Row slice mismatch: %v", row)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(0, 3); err == nil {
		t.Fatalf("expected error for zero width")
	}

	if _, err := NewFromRows(nil); err == nil {
		t.Fatalf("expected error for empty rows")
	}

	if _, err := NewFromRows([][]float64{{1, 2}, {1}}); err == nil {
		t.Fatalf("expected error for ragged rows")
	}
}

func TestNewFromRows(t *testing.T) {
	im, err := NewFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		t.Fatalf("NewFromRows error: %v", err)
	}

	if im.Width != 3 || im.Height != 2 {
		t.Fatalf("unexpected dims: %dx%d", im.Width, im.Height)
	}

	if im.At(1, 1) != 5 {
		t.Fatalf("At(1,1)=%f want=5", im.At(1, 1))
	}
}

func TestClone(t *testing.T) {
	im, _ := New(2, 2)
	im.Set(0, 0, 7)
	im.X0, im.DX = -1, 0.5
	im.SetROI(RectROI{X: 0, Y: 0, Width: 1, Height: 1})

	cp := im.Clone()
	cp.Set(0, 0, 9)

	if im.At(0, 0) != 7 {
		t.Fatalf("clone shares data with original")
	}

	if cp.X0 != -1 || cp.DX != 0.5 || cp.ROI() == nil {
		t.Fatalf("clone lost geometry or ROI")
	}

	shape := im.CloneShape()
	if shape.At(0, 0) != 0 || shape.Width != 2 {
		t.Fatalf("CloneShape must be zero-filled with same dims")
	}
}

func TestPixelToWorld(t *testing.T) {
	im, _ := New(4, 4)
	im.X0, im.Y0 = 10, 20
	im.DX, im.DY = 2, 3

	x, y := im.PixelToWorld(1, 2)
	if x != 12 || y != 26 {
		t.Fatalf("PixelToWorld=(%f,%f) want=(12,26)", x, y)
	}
}

func TestRectROI(t *testing.T) {
	r := RectROI{X: 1, Y: 1, Width: 2, Height: 2}

	if !r.Contains(1, 1) || !r.Contains(2, 2) {
		t.Fatalf("rect must contain interior pixels")
	}

	if r.Contains(0, 1) || r.Contains(3, 1) || r.Contains(1, 3) {
		t.Fatalf("rect must exclude outside pixels")
	}
}

func TestCircleROI(t *testing.T) {
	c := CircleROI{CX: 5, CY: 5, R: 2}

	if !c.Contains(5, 5) || !c.Contains(7, 5) || !c.Contains(5, 3) {
		t.Fatalf("circle must contain center and radius points")
	}

	if c.Contains(8, 5) || c.Contains(7, 7) {
		t.Fatalf("circle must exclude outside pixels")
	}
}

func TestMask(t *testing.T) {
	im, _ := New(3, 2)
	if im.Mask() != nil {
		t.Fatalf("mask must be nil without ROI")
	}

	im.SetROI(RectROI{X: 0, Y: 0, Width: 1, Height: 2})
	mask := im.Mask()
	if !mask[0] || mask[1] || !mask[3] {
		t.Fatalf("unexpected mask: %v", mask)
	}

	im.ClearROI()
	if im.Mask() != nil {
		t.Fatalf("mask must be nil after ClearROI")
	}
}

func TestRestoreOutsideROI(t *testing.T) {
	src, _ := New(3, 1)
	src.Set(0, 0, 1)
	src.Set(1, 0, 2)
	src.Set(2, 0, 3)
	src.SetROI(RectROI{X: 1, Y: 0, Width: 1, Height: 1})

	dst := src.Clone()
	dst.Fill(9)

	if err := RestoreOutsideROI(dst, src); err != nil {
		t.Fatalf("RestoreOutsideROI error: %v", err)
	}

	if dst.At(0, 0) != 1 || dst.At(2, 0) != 3 {
		t.Fatalf("outside pixels not restored: %v", dst.Data)
	}

	if dst.At(1, 0) != 9 {
		t.Fatalf("inside pixel must keep the operation result")
	}

	other, _ := New(2, 2)
	if err := RestoreOutsideROI(other, src); err == nil {
		t.Fatalf("expected shape mismatch error")
	}
}
