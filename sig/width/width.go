// Package width measures full widths of single-peak 1-D signals: FWHM with
// several estimation methods, full width at 1/e^2, and full width at an
// arbitrary ordinate.
//
// Model-based methods fit a peak profile (Gaussian, Lorentzian, or
// pseudo-Voigt) by least squares and derive the width analytically from the
// fitted parameters. The zero-crossing method interpolates the half-maximum
// crossings around the dominant peak directly and makes no model assumption.
package width

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Errors returned by width measurements.
var (
	ErrEmptyInput     = errors.New("width: input too short")
	ErrLengthMismatch = errors.New("width: x/y length mismatch")
	ErrNonIncreasingX = errors.New("width: x must be strictly increasing")
	ErrFlatSignal     = errors.New("width: signal has no peak")
	ErrNoCrossing     = errors.New("width: level not crossed around the peak")
)

// Method selects the FWHM estimation method.
type Method int

const (
	// MethodZeroCrossing interpolates half-maximum crossings directly.
	MethodZeroCrossing Method = iota + 1

	// MethodGauss fits a Gaussian profile.
	MethodGauss

	// MethodLorentz fits a Lorentzian profile.
	MethodLorentz

	// MethodVoigt fits a pseudo-Voigt profile (Gauss/Lorentz mix of equal
	// width), whose FWHM is the fitted width parameter.
	MethodVoigt
)

// Result describes the measured width as a horizontal segment: the endpoints
// (X0, Y0)-(X1, Y1) at the crossing level and the width X1-X0.
type Result struct {
	X0    float64
	Y0    float64
	X1    float64
	Y1    float64
	Width float64
}

const minSamples = 5

func validate(x, y []float64) error {
	if len(y) < minSamples {
		return ErrEmptyInput
	}
	if len(x) != len(y) {
		return ErrLengthMismatch
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return ErrNonIncreasingX
		}
	}
	return nil
}

// peakEstimate returns baseline, amplitude, and peak index of the signal.
func peakEstimate(y []float64) (baseline, amplitude float64, peak int, err error) {
	baseline = y[0]
	maxVal := y[0]
	for i, v := range y {
		if v < baseline {
			baseline = v
		}
		if v > maxVal {
			maxVal = v
			peak = i
		}
	}
	amplitude = maxVal - baseline
	if amplitude <= 0 {
		return 0, 0, 0, ErrFlatSignal
	}
	return baseline, amplitude, peak, nil
}

// crossings interpolates where y crosses level on both sides of the peak.
func crossings(x, y []float64, peak int, level float64) (x0, x1 float64, err error) {
	x0 = math.NaN()
	for i := peak; i > 0; i-- {
		if y[i-1] <= level && y[i] > level {
			t := (level - y[i-1]) / (y[i] - y[i-1])
			x0 = x[i-1] + t*(x[i]-x[i-1])
			break
		}
	}

	x1 = math.NaN()
	for i := peak; i < len(y)-1; i++ {
		if y[i+1] <= level && y[i] > level {
			t := (level - y[i+1]) / (y[i] - y[i+1])
			x1 = x[i+1] + t*(x[i]-x[i+1])
			break
		}
	}

	if math.IsNaN(x0) || math.IsNaN(x1) {
		return 0, 0, ErrNoCrossing
	}
	return x0, x1, nil
}

// FWHM measures the full width at half maximum of the dominant peak.
func FWHM(x, y []float64, method Method) (Result, error) {
	if err := validate(x, y); err != nil {
		return Result{}, err
	}

	baseline, amplitude, peak, err := peakEstimate(y)
	if err != nil {
		return Result{}, err
	}

	switch method {
	case MethodZeroCrossing:
		level := baseline + amplitude/2
		x0, x1, err := crossings(x, y, peak, level)
		if err != nil {
			return Result{}, err
		}
		return Result{X0: x0, Y0: level, X1: x1, Y1: level, Width: x1 - x0}, nil

	case MethodGauss, MethodLorentz, MethodVoigt:
		fit, err := fitPeak(x, y, method, baseline, amplitude, peak)
		if err != nil {
			return Result{}, err
		}
		level := fit.baseline + fit.amplitude/2
		half := fit.fwhm / 2
		return Result{
			X0:    fit.center - half,
			Y0:    level,
			X1:    fit.center + half,
			Y1:    level,
			Width: fit.fwhm,
		}, nil

	default:
		return Result{}, fmt.Errorf("width: unknown method %d", method)
	}
}

// FW1E2 measures the full width at 1/e^2 of the maximum, assuming a Gaussian
// profile. For a Gaussian the width is 4*sigma.
func FW1E2(x, y []float64) (Result, error) {
	if err := validate(x, y); err != nil {
		return Result{}, err
	}

	baseline, amplitude, peak, err := peakEstimate(y)
	if err != nil {
		return Result{}, err
	}

	fit, err := fitPeak(x, y, MethodGauss, baseline, amplitude, peak)
	if err != nil {
		return Result{}, err
	}

	sigma := fit.fwhm / gaussFWHMFactor
	w := 4 * sigma
	level := fit.baseline + fit.amplitude*math.Exp(-2)
	return Result{
		X0:    fit.center - w/2,
		Y0:    level,
		X1:    fit.center + w/2,
		Y1:    level,
		Width: w,
	}, nil
}

// FullWidthAtY measures the full width of the dominant peak at the absolute
// ordinate level, by direct interpolation.
func FullWidthAtY(x, y []float64, level float64) (Result, error) {
	if err := validate(x, y); err != nil {
		return Result{}, err
	}

	_, _, peak, err := peakEstimate(y)
	if err != nil {
		return Result{}, err
	}

	x0, x1, err := crossings(x, y, peak, level)
	if err != nil {
		return Result{}, err
	}
	return Result{X0: x0, Y0: level, X1: x1, Y1: level, Width: x1 - x0}, nil
}

// gaussFWHMFactor converts a Gaussian sigma to FWHM: 2*sqrt(2*ln 2).
const gaussFWHMFactor = 2.3548200450309493

type peakFit struct {
	amplitude float64
	center    float64
	baseline  float64
	fwhm      float64
}

// initialWidth estimates the peak FWHM from the half-maximum crossings,
// falling back to a tenth of the x range when the level is never crossed.
func initialWidth(x, y []float64, peak int, baseline, amplitude float64) float64 {
	x0, x1, err := crossings(x, y, peak, baseline+amplitude/2)
	if err == nil && x1 > x0 {
		return x1 - x0
	}
	return (x[len(x)-1] - x[0]) / 10
}

// fitPeak fits the selected profile by Nelder-Mead least squares starting
// from moment-style estimates.
func fitPeak(x, y []float64, method Method, baseline, amplitude float64, peak int) (peakFit, error) {
	w0 := initialWidth(x, y, peak, baseline, amplitude)
	center0 := x[peak]

	// Parameter vector: [amplitude, center, width, baseline] with an extra
	// mixing parameter for pseudo-Voigt.
	p0 := []float64{amplitude, center0, w0, baseline}
	if method == MethodVoigt {
		p0 = append(p0, 0.5)
	}

	model := func(p []float64, xi float64) float64 {
		amp, c, w, base := p[0], p[1], math.Abs(p[2]), p[3]
		if w == 0 {
			w = 1e-12
		}
		d := xi - c
		switch method {
		case MethodLorentz:
			gamma := w / 2
			return base + amp*gamma*gamma/(d*d+gamma*gamma)
		case MethodVoigt:
			eta := p[4]
			sigma := w / gaussFWHMFactor
			gamma := w / 2
			g := math.Exp(-d * d / (2 * sigma * sigma))
			l := gamma * gamma / (d*d + gamma*gamma)
			return base + amp*(eta*l+(1-eta)*g)
		default: // MethodGauss
			sigma := w / gaussFWHMFactor
			return base + amp*math.Exp(-d*d/(2*sigma*sigma))
		}
	}

	sse := func(p []float64) float64 {
		sum := 0.0
		for i := range x {
			r := y[i] - model(p, x[i])
			sum += r * r
		}
		// Keep the pseudo-Voigt mixing ratio inside [0, 1].
		if method == MethodVoigt {
			eta := p[4]
			if eta < 0 {
				sum += eta * eta * 1e6
			} else if eta > 1 {
				sum += (eta - 1) * (eta - 1) * 1e6
			}
		}
		return sum
	}

	problem := optimize.Problem{Func: sse}
	res, err := optimize.Minimize(problem, p0, nil, &optimize.NelderMead{})
	if err != nil {
		return peakFit{}, fmt.Errorf("width: peak fit failed: %w", err)
	}

	p := res.X
	fit := peakFit{
		amplitude: p[0],
		center:    p[1],
		baseline:  p[3],
		fwhm:      math.Abs(p[2]),
	}
	if fit.fwhm == 0 || fit.amplitude <= 0 {
		return peakFit{}, ErrFlatSignal
	}
	return fit, nil
}
