// Package generate creates deterministic 1-D test signals on a uniform axis.
package generate

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator creates signals from a shared axis configuration.
type Generator struct {
	n    int
	x0   float64
	dx   float64
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithOrigin sets the x value of the first sample (default 0).
func WithOrigin(x0 float64) Option {
	return func(g *Generator) {
		g.x0 = x0
	}
}

// WithSpacing sets the sample spacing (default 1).
func WithSpacing(dx float64) Option {
	return func(g *Generator) {
		g.dx = dx
	}
}

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator producing signals of n samples.
func NewGenerator(n int, opts ...Option) (*Generator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("generate: sample count must be > 0: %d", n)
	}

	g := &Generator{n: n, dx: 1, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	if g.dx <= 0 {
		return nil, fmt.Errorf("generate: spacing must be > 0: %f", g.dx)
	}
	return g, nil
}

// Axis returns the uniform x axis.
func (g *Generator) Axis() []float64 {
	x := make([]float64, g.n)
	for i := range x {
		x[i] = g.x0 + float64(i)*g.dx
	}
	return x
}

// GaussianPeak generates amplitude*exp(-(x-center)^2/(2*sigma^2)) + baseline.
func (g *Generator) GaussianPeak(amplitude, center, sigma, baseline float64) ([]float64, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("generate: gaussian sigma must be > 0: %f", sigma)
	}

	y := make([]float64, g.n)
	inv := 1 / (2 * sigma * sigma)
	for i := range y {
		d := g.x0 + float64(i)*g.dx - center
		y[i] = amplitude*math.Exp(-d*d*inv) + baseline
	}
	return y, nil
}

// LorentzianPeak generates amplitude*gamma^2/((x-center)^2+gamma^2) + baseline.
// gamma is the half width at half maximum.
func (g *Generator) LorentzianPeak(amplitude, center, gamma, baseline float64) ([]float64, error) {
	if gamma <= 0 {
		return nil, fmt.Errorf("generate: lorentzian gamma must be > 0: %f", gamma)
	}

	y := make([]float64, g.n)
	g2 := gamma * gamma
	for i := range y {
		d := g.x0 + float64(i)*g.dx - center
		y[i] = amplitude*g2/(d*d+g2) + baseline
	}
	return y, nil
}

// Sine generates amplitude*sin(2*pi*freq*x).
func (g *Generator) Sine(freq, amplitude float64) []float64 {
	y := make([]float64, g.n)
	for i := range y {
		x := g.x0 + float64(i)*g.dx
		y[i] = amplitude * math.Sin(2*math.Pi*freq*x)
	}
	return y
}

// Step generates a unit step at the given x position scaled by amplitude.
func (g *Generator) Step(at, amplitude float64) []float64 {
	y := make([]float64, g.n)
	for i := range y {
		if g.x0+float64(i)*g.dx >= at {
			y[i] = amplitude
		}
	}
	return y
}

// WhiteNoise generates deterministic uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64) ([]float64, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("generate: noise amplitude must be >= 0: %f", amplitude)
	}

	y := make([]float64, g.n)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range y {
		y[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return y, nil
}

// GaussianNoise generates deterministic normal noise with the given sigma.
func (g *Generator) GaussianNoise(sigma float64) ([]float64, error) {
	if sigma < 0 {
		return nil, fmt.Errorf("generate: noise sigma must be >= 0: %f", sigma)
	}

	y := make([]float64, g.n)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range y {
		y[i] = rng.NormFloat64() * sigma
	}
	return y, nil
}

// Add returns the elementwise sum of signals of equal length.
func Add(signals ...[]float64) ([]float64, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("generate: nothing to add")
	}

	n := len(signals[0])
	for _, s := range signals[1:] {
		if len(s) != n {
			return nil, fmt.Errorf("generate: length mismatch: %d != %d", len(s), n)
		}
	}

	out := make([]float64, n)
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out, nil
}
