package filtering

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-sciproc/img"
)

func noisyImage(t *testing.T, w, h int, seed int64) *img.Image {
	t.Helper()

	im, err := img.New(w, h)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range im.Data {
		im.Data[i] = rng.Float64()
	}
	return im
}

func variance(data []float64) float64 {
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := 0.0
	for _, v := range data {
		d := v - mean
		out += d * d
	}
	return out / float64(len(data))
}

func TestResolveIndex(t *testing.T) {
	cases := []struct {
		mode BoundaryMode
		in   int
		want int
	}{
		{ModeReflect, -1, 0},
		{ModeReflect, -2, 1},
		{ModeReflect, 4, 3},
		{ModeReflect, 5, 2},
		{ModeNearest, -3, 0},
		{ModeNearest, 7, 3},
		{ModeWrap, -1, 3},
		{ModeWrap, 4, 0},
		{ModeMirror, -1, 1},
		{ModeMirror, 4, 2},
	}

	for _, c := range cases {
		got, ok := resolveIndex(c.in, 4, c.mode)
		if !ok || got != c.want {
			t.Fatalf("mode=%d resolveIndex(%d)=%d want=%d", c.mode, c.in, got, c.want)
		}
	}

	if _, ok := resolveIndex(-1, 4, ModeConstant); ok {
		t.Fatalf("constant mode must report outside indices")
	}

	if got, ok := resolveIndex(2, 4, ModeConstant); !ok || got != 2 {
		t.Fatalf("constant mode must pass through inside indices")
	}
}

func TestGaussianPreservesConstant(t *testing.T) {
	im, _ := img.New(16, 12)
	im.Fill(3.5)

	out, err := Gaussian(im, 2)
	if err != nil {
		t.Fatalf("Gaussian error: %v", err)
	}

	for i, v := range out.Data {
		if math.Abs(v-3.5) > 1e-12 {
			t.Fatalf("constant not preserved at %d: %f", i, v)
		}
	}
}

func TestGaussianSmoothsNoise(t *testing.T) {
	im := noisyImage(t, 64, 64, 1)

	out, err := Gaussian(im, 2)
	if err != nil {
		t.Fatalf("Gaussian error: %v", err)
	}

	if variance(out.Data) >= variance(im.Data)/2 {
		t.Fatalf("smoothing did not reduce variance: %f -> %f",
			variance(im.Data), variance(out.Data))
	}
}

func TestGaussianErrors(t *testing.T) {
	im, _ := img.New(4, 4)

	if _, err := Gaussian(nil, 1); err == nil {
		t.Fatalf("expected error for nil image")
	}

	if _, err := Gaussian(im, 0); err == nil {
		t.Fatalf("expected error for zero sigma")
	}

	if _, err := GaussianMode(im, 1, BoundaryMode(99)); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestMovingAverageImpulse(t *testing.T) {
	im, _ := img.New(7, 7)
	im.Set(3, 3, 9)

	out, err := MovingAverage(im, 3, ModeReflect)
	if err != nil {
		t.Fatalf("MovingAverage error: %v", err)
	}

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if math.Abs(out.At(3+dx, 3+dy)-1) > 1e-12 {
				t.Fatalf("impulse response at (%d,%d)=%f want=1", 3+dx, 3+dy, out.At(3+dx, 3+dy))
			}
		}
	}

	if out.At(0, 0) != 0 {
		t.Fatalf("far pixel affected by impulse")
	}
}

func TestMovingAverageErrors(t *testing.T) {
	im, _ := img.New(4, 4)

	if _, err := MovingAverage(im, 2, ModeReflect); err == nil {
		t.Fatalf("expected error for even window")
	}

	if _, err := MovingAverage(im, -1, ModeReflect); err == nil {
		t.Fatalf("expected error for negative window")
	}
}

func TestMovingMedianRemovesSaltNoise(t *testing.T) {
	im, _ := img.New(9, 9)
	im.Fill(1)
	im.Set(4, 4, 100) // single outlier

	out, err := MovingMedian(im, 3, ModeNearest)
	if err != nil {
		t.Fatalf("MovingMedian error: %v", err)
	}

	if out.At(4, 4) != 1 {
		t.Fatalf("median did not remove outlier: %f", out.At(4, 4))
	}
}

func TestWienerFlattensInterior(t *testing.T) {
	im, _ := img.New(16, 16)
	im.Fill(2)

	out, err := Wiener(im)
	if err != nil {
		t.Fatalf("Wiener error: %v", err)
	}

	// Interior pixels of a constant image stay constant; the zero boundary
	// affects only the outermost ring.
	for iy := 1; iy < 15; iy++ {
		for ix := 1; ix < 15; ix++ {
			if math.Abs(out.At(ix, iy)-2) > 1e-9 {
				t.Fatalf("interior pixel changed at (%d,%d): %f", ix, iy, out.At(ix, iy))
			}
		}
	}
}

func TestWienerReducesNoise(t *testing.T) {
	im := noisyImage(t, 32, 32, 3)

	out, err := Wiener(im)
	if err != nil {
		t.Fatalf("Wiener error: %v", err)
	}

	if variance(out.Data) >= variance(im.Data) {
		t.Fatalf("Wiener did not reduce variance")
	}
}

func TestButterworthLowpassDCGain(t *testing.T) {
	im, _ := img.New(16, 16)
	im.Fill(5)

	out, err := Butterworth(im, 0.1, false, 2)
	if err != nil {
		t.Fatalf("Butterworth error: %v", err)
	}

	for i, v := range out.Data {
		if math.Abs(v-5) > 1e-9 {
			t.Fatalf("lowpass DC gain violated at %d: %f", i, v)
		}
	}
}

func TestButterworthHighpassRemovesDC(t *testing.T) {
	im, _ := img.New(16, 16)
	im.Fill(5)

	out, err := Butterworth(im, 0.1, true, 2)
	if err != nil {
		t.Fatalf("Butterworth error: %v", err)
	}

	for i, v := range out.Data {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("highpass left DC at %d: %f", i, v)
		}
	}
}

func TestButterworthErrors(t *testing.T) {
	im, _ := img.New(8, 8)

	if _, err := Butterworth(im, 0, false, 2); err == nil {
		t.Fatalf("expected error for zero cutoff")
	}

	if _, err := Butterworth(im, 0.7, false, 2); err == nil {
		t.Fatalf("expected error for cutoff above 0.5")
	}

	if _, err := Butterworth(im, 0.1, false, 0); err == nil {
		t.Fatalf("expected error for zero order")
	}
}

func TestFreqFFTCenterZeroIsLowpass(t *testing.T) {
	im, _ := img.New(16, 16)
	im.Fill(4)

	out, err := FreqFFT(im, 0, 0.1, ResultReal)
	if err != nil {
		t.Fatalf("FreqFFT error: %v", err)
	}

	for i, v := range out.Data {
		if math.Abs(v-4) > 1e-9 {
			t.Fatalf("DC not preserved at %d: %f", i, v)
		}
	}
}

func TestFreqFFTBandpassRemovesDC(t *testing.T) {
	im, _ := img.New(16, 16)
	im.Fill(4)

	out, err := FreqFFT(im, 0.25, 0.02, ResultAbs)
	if err != nil {
		t.Fatalf("FreqFFT error: %v", err)
	}

	for i, v := range out.Data {
		if math.Abs(v) > 1e-6 {
			t.Fatalf("bandpass left DC at %d: %f", i, v)
		}
	}
}

func TestFreqFFTErrors(t *testing.T) {
	im, _ := img.New(8, 8)

	if _, err := FreqFFT(im, 0.1, 0, ResultReal); err == nil {
		t.Fatalf("expected error for zero sigma")
	}

	if _, err := FreqFFT(im, -0.1, 0.1, ResultReal); err == nil {
		t.Fatalf("expected error for negative center frequency")
	}

	if _, err := FreqFFT(im, 0.1, 0.1, ResultType(0)); err == nil {
		t.Fatalf("expected error for unknown result type")
	}
}

func TestFilterROIRestore(t *testing.T) {
	im := noisyImage(t, 16, 16, 5)
	im.SetROI(img.RectROI{X: 4, Y: 4, Width: 8, Height: 8})

	out, err := Gaussian(im, 2)
	if err != nil {
		t.Fatalf("Gaussian error: %v", err)
	}

	// Outside the ROI: untouched. Inside: smoothed (different from source).
	if out.At(0, 0) != im.At(0, 0) || out.At(15, 15) != im.At(15, 15) {
		t.Fatalf("pixels outside ROI were modified")
	}

	changed := false
	for iy := 4; iy < 12; iy++ {
		for ix := 4; ix < 12; ix++ {
			if out.At(ix, iy) != im.At(ix, iy) {
				changed = true
			}
		}
	}
	if !changed {
		t.Fatalf("pixels inside ROI were not filtered")
	}
}
