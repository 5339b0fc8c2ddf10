package width

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sciproc/sig/generate"
)

func gaussianSignal(t *testing.T, sigma float64) (x, y []float64) {
	t.Helper()

	g, err := generate.NewGenerator(501, generate.WithOrigin(-25), generate.WithSpacing(0.1))
	if err != nil {
		t.Fatalf("NewGenerator error: %v", err)
	}

	y, err = g.GaussianPeak(3, 1.5, sigma, 0.2)
	if err != nil {
		t.Fatalf("GaussianPeak error: %v", err)
	}
	return g.Axis(), y
}

func lorentzianSignal(t *testing.T, gamma float64) (x, y []float64) {
	t.Helper()

	g, err := generate.NewGenerator(2001, generate.WithOrigin(-100), generate.WithSpacing(0.1))
	if err != nil {
		t.Fatalf("NewGenerator error: %v", err)
	}

	y, err = g.LorentzianPeak(2, -3, gamma, 0)
	if err != nil {
		t.Fatalf("LorentzianPeak error: %v", err)
	}
	return g.Axis(), y
}

func checkWidth(t *testing.T, name string, got, want, rtol float64) {
	t.Helper()
	if math.Abs(got-want) > rtol*want {
		t.Fatalf("%s width=%f want=%f (rtol=%f)", name, got, want, rtol)
	}
}

func TestFWHMGaussian(t *testing.T) {
	const sigma = 2.0
	want := gaussFWHMFactor * sigma

	x, y := gaussianSignal(t, sigma)

	for _, method := range []Method{MethodZeroCrossing, MethodGauss, MethodVoigt} {
		res, err := FWHM(x, y, method)
		if err != nil {
			t.Fatalf("FWHM method=%d error: %v", method, err)
		}
		checkWidth(t, "gaussian", res.Width, want, 0.05)

		if math.Abs((res.X1-res.X0)-res.Width) > 1e-9 {
			t.Fatalf("segment inconsistent with width: %+v", res)
		}

		// Segment centered near the true peak position.
		center := (res.X0 + res.X1) / 2
		if math.Abs(center-1.5) > 0.1 {
			t.Fatalf("method=%d center=%f want=1.5", method, center)
		}
	}
}

func TestFWHMLorentzian(t *testing.T) {
	const gamma = 2.5
	want := 2 * gamma

	x, y := lorentzianSignal(t, gamma)

	res, err := FWHM(x, y, MethodLorentz)
	if err != nil {
		t.Fatalf("FWHM error: %v", err)
	}
	checkWidth(t, "lorentzian fit", res.Width, want, 0.05)

	res, err = FWHM(x, y, MethodZeroCrossing)
	if err != nil {
		t.Fatalf("FWHM error: %v", err)
	}
	checkWidth(t, "lorentzian zero-crossing", res.Width, want, 0.05)
}

func TestFW1E2Gaussian(t *testing.T) {
	const sigma = 1.75
	x, y := gaussianSignal(t, sigma)

	res, err := FW1E2(x, y)
	if err != nil {
		t.Fatalf("FW1E2 error: %v", err)
	}
	checkWidth(t, "fw1e2", res.Width, 4*sigma, 0.02)
}

func TestFullWidthAtY(t *testing.T) {
	// Gaussian amplitude 3, baseline 0.2: half max level is 1.7.
	const sigma = 2.0
	x, y := gaussianSignal(t, sigma)

	res, err := FullWidthAtY(x, y, 1.7)
	if err != nil {
		t.Fatalf("FullWidthAtY error: %v", err)
	}
	checkWidth(t, "full width at y", res.Width, gaussFWHMFactor*sigma, 0.05)

	if res.Y0 != 1.7 || res.Y1 != 1.7 {
		t.Fatalf("crossing level not preserved: %+v", res)
	}
}

func TestFWHMNoisyGaussian(t *testing.T) {
	const sigma = 2.0
	x, y := gaussianSignal(t, sigma)

	g, _ := generate.NewGenerator(len(y), generate.WithSeed(7))
	noise, err := g.GaussianNoise(0.05)
	if err != nil {
		t.Fatalf("GaussianNoise error: %v", err)
	}
	noisy, err := generate.Add(y, noise)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	res, err := FWHM(x, noisy, MethodGauss)
	if err != nil {
		t.Fatalf("FWHM error: %v", err)
	}
	checkWidth(t, "noisy gaussian", res.Width, gaussFWHMFactor*sigma, 0.1)
}

func TestWidthErrors(t *testing.T) {
	if _, err := FWHM([]float64{1, 2}, []float64{1, 2}, MethodGauss); err == nil {
		t.Fatalf("expected error for short input")
	}

	if _, err := FWHM([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3}, MethodGauss); err == nil {
		t.Fatalf("expected error for length mismatch")
	}

	x := []float64{0, 1, 1, 2, 3}
	y := []float64{0, 1, 2, 1, 0}
	if _, err := FWHM(x, y, MethodZeroCrossing); err == nil {
		t.Fatalf("expected error for non-increasing x")
	}

	flatX := []float64{0, 1, 2, 3, 4}
	flatY := []float64{1, 1, 1, 1, 1}
	if _, err := FWHM(flatX, flatY, MethodZeroCrossing); err == nil {
		t.Fatalf("expected error for flat signal")
	}

	if _, err := FWHM(flatX, []float64{0, 1, 2, 1, 0}, Method(99)); err == nil {
		t.Fatalf("expected error for unknown method")
	}

	// Level above the peak is never crossed.
	if _, err := FullWidthAtY(flatX, []float64{0, 1, 2, 1, 0}, 5); err == nil {
		t.Fatalf("expected error for uncrossed level")
	}
}
