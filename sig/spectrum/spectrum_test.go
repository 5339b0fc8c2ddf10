package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sciproc/internal/testutil"
	"github.com/cwbudde/algo-sciproc/sig/window"
)

func uniformAxis(n int, dx float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * dx
	}
	return x
}

func sine(freqHz, sampleRate, amplitude float64, n int) []float64 {
	return testutil.DeterministicSine(freqHz, sampleRate, amplitude, n)
}

func TestFrequencyAxis(t *testing.T) {
	freqs := FrequencyAxis(4, 1)
	want := []float64{0, 0.25, -0.5, -0.25}
	for i := range want {
		if math.Abs(freqs[i]-want[i]) > 1e-12 {
			t.Fatalf("freqs[%d]=%f want=%f", i, freqs[i], want[i])
		}
	}
}

func TestFFTShiftRoundTrip(t *testing.T) {
	for _, n := range []int{4, 5, 8, 9} {
		in := make([]float64, n)
		for i := range in {
			in[i] = float64(i)
		}

		out := IFFTShift(FFTShift(in))
		for i := range in {
			if out[i] != in[i] {
				t.Fatalf("n=%d: shift round trip mismatch at %d: %v", n, i, out)
			}
		}
	}

	shifted := FFTShift([]float64{0, 1, 2, 3})
	want := []float64{2, 3, 0, 1}
	for i := range want {
		if shifted[i] != want[i] {
			t.Fatalf("FFTShift mismatch: %v", shifted)
		}
	}
}

func TestMagnitudeSpectrumSine(t *testing.T) {
	const (
		n  = 256
		dx = 1.0 / 256
	)

	x := uniformAxis(n, dx)
	y := sine(16, 256, 1, n)

	freqs, mag, err := MagnitudeSpectrum(x, y, false)
	if err != nil {
		t.Fatalf("MagnitudeSpectrum error: %v", err)
	}

	if len(freqs) != n || len(mag) != n {
		t.Fatalf("unexpected output length: %d/%d", len(freqs), len(mag))
	}
	testutil.RequireFinite(t, mag)

	// Peak at +16 Hz with height n/2 for a unit sine on an exact bin.
	peakIdx := -1
	for i, f := range freqs {
		if math.Abs(f-16) < 1e-9 {
			peakIdx = i
		}
	}
	if peakIdx < 0 {
		t.Fatalf("no +16 Hz bin in axis")
	}

	if math.Abs(mag[peakIdx]-n/2) > 1e-6 {
		t.Fatalf("peak magnitude=%f want=%f", mag[peakIdx], float64(n/2))
	}

	// Spectrum of a real signal is symmetric in magnitude.
	mirror := len(mag) - peakIdx
	if math.Abs(mag[mirror]-mag[peakIdx]) > 1e-6 {
		t.Fatalf("magnitude not symmetric: %f vs %f", mag[mirror], mag[peakIdx])
	}
}

func TestMagnitudeSpectrumLogScale(t *testing.T) {
	const n = 64
	x := uniformAxis(n, 1)
	y := make([]float64, n) // all zero

	_, mag, err := MagnitudeSpectrum(x, y, true)
	if err != nil {
		t.Fatalf("MagnitudeSpectrum error: %v", err)
	}

	for i, v := range mag {
		if v != FloorDB {
			t.Fatalf("mag[%d]=%f want floor %f", i, v, FloorDB)
		}
	}
}

func TestPhaseSpectrumCosine(t *testing.T) {
	const n = 128
	x := uniformAxis(n, 1.0/128)
	y := make([]float64, n)
	for i := range y {
		y[i] = math.Cos(2 * math.Pi * 8 * float64(i) / 128)
	}

	freqs, phase, err := PhaseSpectrum(x, y)
	if err != nil {
		t.Fatalf("PhaseSpectrum error: %v", err)
	}

	for i, f := range freqs {
		if math.Abs(f-8) < 1e-9 {
			if math.Abs(phase[i]) > 1e-6 {
				t.Fatalf("cosine phase at peak=%f want=0", phase[i])
			}
			return
		}
	}
	t.Fatalf("no +8 Hz bin found")
}

func TestSpectrumErrors(t *testing.T) {
	if _, _, err := MagnitudeSpectrum(nil, nil, false); err == nil {
		t.Fatalf("expected error for empty input")
	}

	if _, _, err := MagnitudeSpectrum([]float64{0, 1}, []float64{1}, false); err == nil {
		t.Fatalf("expected error for length mismatch")
	}

	x := []float64{0, 1, 3, 4}
	y := []float64{1, 2, 3, 4}
	if _, _, err := MagnitudeSpectrum(x, y, false); err == nil {
		t.Fatalf("expected error for non-uniform axis")
	}
}

func TestPeriodogramSinePower(t *testing.T) {
	const (
		n  = 1024
		fs = 1024.0
	)

	y := sine(64, fs, 1, n)

	freqs, psd, err := Periodogram(y, fs, WithWindowType(window.TypeRectangular))
	if err != nil {
		t.Fatalf("Periodogram error: %v", err)
	}

	df := freqs[1] - freqs[0]

	// Integrated PSD of a unit sine is its power, 0.5.
	total := 0.0
	for _, v := range psd {
		total += v * df
	}
	if math.Abs(total-0.5) > 0.01 {
		t.Fatalf("integrated PSD=%f want=0.5", total)
	}

	// All power concentrates in the 64 Hz bin for an exact-bin sine.
	peakIdx := 0
	for i, v := range psd {
		if v > psd[peakIdx] {
			peakIdx = i
		}
	}
	if math.Abs(freqs[peakIdx]-64) > 1e-9 {
		t.Fatalf("peak at %f Hz want 64", freqs[peakIdx])
	}

	if math.Abs(psd[peakIdx]*df-0.5) > 0.01 {
		t.Fatalf("peak bin power=%f want=0.5", psd[peakIdx]*df)
	}
}

func TestWelchPSDSinePower(t *testing.T) {
	const (
		n  = 4096
		fs = 1024.0
	)

	y := sine(128, fs, 1, n)

	freqs, psd, err := WelchPSD(y, fs, WithSegmentSize(256))
	if err != nil {
		t.Fatalf("WelchPSD error: %v", err)
	}

	if len(psd) != 129 {
		t.Fatalf("bin count=%d want=129", len(psd))
	}

	df := freqs[1] - freqs[0]
	total := 0.0
	for _, v := range psd {
		total += v * df
	}
	if math.Abs(total-0.5) > 0.05 {
		t.Fatalf("integrated Welch PSD=%f want~0.5", total)
	}

	peakIdx := 0
	for i, v := range psd {
		if v > psd[peakIdx] {
			peakIdx = i
		}
	}
	if math.Abs(freqs[peakIdx]-128) > df {
		t.Fatalf("Welch peak at %f Hz want 128", freqs[peakIdx])
	}
}

func TestWelchPSDLogScale(t *testing.T) {
	y := sine(16, 256, 1, 1024)

	_, psd, err := WelchPSD(y, 256, WithSegmentSize(128), WithLogScale())
	if err != nil {
		t.Fatalf("WelchPSD error: %v", err)
	}

	for _, v := range psd {
		if v < FloorDB || math.IsNaN(v) {
			t.Fatalf("log PSD below floor: %f", v)
		}
	}
}

func TestPSDErrors(t *testing.T) {
	if _, _, err := Periodogram([]float64{1}, 100); err == nil {
		t.Fatalf("expected error for short input")
	}

	if _, _, err := Periodogram([]float64{1, 2, 3}, 0); err == nil {
		t.Fatalf("expected error for invalid sample rate")
	}

	if _, _, err := WelchPSD([]float64{1, 2, 3, 4}, -1); err == nil {
		t.Fatalf("expected error for negative sample rate")
	}
}

func TestUnwrapPhase(t *testing.T) {
	in := []float64{2.8, -2.7, -2.6}

	out := UnwrapPhase(in)
	if len(out) != len(in) {
		t.Fatalf("unwrap length mismatch")
	}

	if out[1] <= out[0] {
		t.Fatalf("expected increasing unwrapped phase: %v", out)
	}
}
