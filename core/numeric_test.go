package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("Clamp(5,0,1)=%f want=1", got)
	}

	if got := Clamp(-5, 0, 1); got != 0 {
		t.Fatalf("Clamp(-5,0,1)=%f want=0", got)
	}

	if got := Clamp(0.5, 1, 0); got != 0.5 {
		t.Fatalf("Clamp with swapped bounds: got=%f want=0.5", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatalf("expected nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-12) {
		t.Fatalf("expected not nearly equal")
	}

	if !NearlyEqual(0, 0, 0) {
		t.Fatalf("expected zero equality with default eps")
	}
}

func TestPowerOf2Helpers(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{500, 512},
	}

	for _, c := range cases {
		if got := NextPowerOf2(c.in); got != c.want {
			t.Fatalf("NextPowerOf2(%d)=%d want=%d", c.in, got, c.want)
		}
	}

	if !IsPowerOf2(1024) || IsPowerOf2(1000) || IsPowerOf2(0) {
		t.Fatalf("IsPowerOf2 misclassification")
	}
}

func TestDBConversions(t *testing.T) {
	if got := LinearToDB(10); math.Abs(got-20) > 1e-12 {
		t.Fatalf("LinearToDB(10)=%f want=20", got)
	}

	if got := DBToLinear(20); math.Abs(got-10) > 1e-12 {
		t.Fatalf("DBToLinear(20)=%f want=10", got)
	}

	if got := LinearPowerToDB(100); math.Abs(got-20) > 1e-12 {
		t.Fatalf("LinearPowerToDB(100)=%f want=20", got)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatalf("LinearToDB(0) should be -Inf")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatalf("LinearToDB(-1) should be NaN")
	}
}
