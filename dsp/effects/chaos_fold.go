package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/Jstxyn/Wavetable-Site/dsp/core"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

// ErrValidation is returned for non-finite parameters or malformed
// input wavetables.
var ErrValidation = errors.New("effect validation failed")

const (
	minChaosSigma = 0.0
	maxChaosSigma = 20.0
	minChaosRho   = 0.0
	maxChaosRho   = 50.0
	minChaosBeta  = 0.0
	maxChaosBeta  = 2.0
	minChaosDT    = 0.001
	maxChaosDT    = 0.1

	defaultChaosSigma        = 10.0
	defaultChaosRho          = 28.0
	defaultChaosBeta         = 0.5
	defaultChaosDT           = 0.01
	defaultChaosMix          = 1.0
	defaultChaosFoldSymmetry = 0.5
	defaultChaosComplexity   = 0.5
	defaultChaosLFOAmount    = 0.0

	// Lorenz trajectories orbit within roughly +-20 on the x axis;
	// tanh(x/16) maps that band onto (-1, 1) without hard edges.
	chaosXScale = 16.0

	chaosSeedX = 0.1
	chaosSeedY = 0.1
	chaosSeedZ = 0.1
)

// ChaosFoldOption mutates construction-time parameters.
type ChaosFoldOption func(*ChaosFold) error

// WithChaosSigma sets the Lorenz sigma term, clamped to [0, 20].
func WithChaosSigma(sigma float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetSigma(sigma) }
}

// WithChaosRho sets the Lorenz rho term, clamped to [0, 50].
func WithChaosRho(rho float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetRho(rho) }
}

// WithChaosBeta sets the Lorenz beta term, clamped to [0, 2].
func WithChaosBeta(beta float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetBeta(beta) }
}

// WithChaosDT sets the Euler step size, clamped to [0.001, 0.1].
func WithChaosDT(dt float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetDT(dt) }
}

// WithChaosMix sets the dry/wet blend, clamped to [0, 1].
func WithChaosMix(mix float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetMix(mix) }
}

// WithChaosFoldSymmetry sets how strongly the attractor offsets the
// fold, clamped to [0, 1].
func WithChaosFoldSymmetry(symmetry float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetFoldSymmetry(symmetry) }
}

// WithChaosComplexity sets the fold drive, clamped to [0, 1].
func WithChaosComplexity(complexity float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetComplexity(complexity) }
}

// WithChaosLFOAmount sets the frame-rate rho modulation depth, clamped
// to [0, 1].
func WithChaosLFOAmount(amount float64) ChaosFoldOption {
	return func(c *ChaosFold) error { return c.SetLFOAmount(amount) }
}

// ChaosFold folds a wavetable against the x trajectory of a Lorenz
// system. One chaos state is seeded per Apply call and advanced
// continuously across the grid in frame-major, sample-minor order, so
// the fold character evolves within and across frames while the output
// stays deterministic for identical inputs.
type ChaosFold struct {
	sigma        float64
	rho          float64
	beta         float64
	dt           float64
	mix          float64
	foldSymmetry float64
	complexity   float64
	lfoAmount    float64
}

// NewChaosFold creates a chaos wavefolder with validated options.
func NewChaosFold(opts ...ChaosFoldOption) (*ChaosFold, error) {
	c := &ChaosFold{
		sigma:        defaultChaosSigma,
		rho:          defaultChaosRho,
		beta:         defaultChaosBeta,
		dt:           defaultChaosDT,
		mix:          defaultChaosMix,
		foldSymmetry: defaultChaosFoldSymmetry,
		complexity:   defaultChaosComplexity,
		lfoAmount:    defaultChaosLFOAmount,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// setClamped rejects non-finite values and clamps finite ones into
// [min, max]. Out-of-range finite values are folded back into range
// rather than rejected, matching the parameter contract of the effect
// registry.
func setClamped(dst *float64, value, min, max float64, name string) error {
	if !core.IsFinite(value) {
		return fmt.Errorf("%w: %s must be finite: %v", ErrValidation, name, value)
	}

	*dst = core.Clamp(value, min, max)

	return nil
}

// SetSigma sets the Lorenz sigma term, clamped to [0, 20].
func (c *ChaosFold) SetSigma(sigma float64) error {
	return setClamped(&c.sigma, sigma, minChaosSigma, maxChaosSigma, "sigma")
}

// SetRho sets the Lorenz rho term, clamped to [0, 50].
func (c *ChaosFold) SetRho(rho float64) error {
	return setClamped(&c.rho, rho, minChaosRho, maxChaosRho, "rho")
}

// SetBeta sets the Lorenz beta term, clamped to [0, 2].
func (c *ChaosFold) SetBeta(beta float64) error {
	return setClamped(&c.beta, beta, minChaosBeta, maxChaosBeta, "beta")
}

// SetDT sets the Euler step size, clamped to [0.001, 0.1].
func (c *ChaosFold) SetDT(dt float64) error {
	return setClamped(&c.dt, dt, minChaosDT, maxChaosDT, "dt")
}

// SetMix sets the dry/wet blend, clamped to [0, 1].
func (c *ChaosFold) SetMix(mix float64) error {
	return setClamped(&c.mix, mix, 0, 1, "mix")
}

// SetFoldSymmetry sets the attractor offset depth, clamped to [0, 1].
func (c *ChaosFold) SetFoldSymmetry(symmetry float64) error {
	return setClamped(&c.foldSymmetry, symmetry, 0, 1, "foldSymmetry")
}

// SetComplexity sets the fold drive, clamped to [0, 1].
func (c *ChaosFold) SetComplexity(complexity float64) error {
	return setClamped(&c.complexity, complexity, 0, 1, "complexity")
}

// SetLFOAmount sets the frame-rate rho modulation depth, clamped to [0, 1].
func (c *ChaosFold) SetLFOAmount(amount float64) error {
	return setClamped(&c.lfoAmount, amount, 0, 1, "lfoAmount")
}

// Apply folds the wavetable and returns a new table of identical
// dimensions. Every output sample lies in [-1, 1]. Non-finite
// intermediates are replaced by the last valid clamped sample and the
// chaos state is reseeded.
func (c *ChaosFold) Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	if err := wt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := wt.Clone()

	x, y, z := chaosSeedX, chaosSeedY, chaosSeedZ
	lastValid := 0.0

	for i, frame := range out.Frames {
		rho := c.rho
		if c.lfoAmount > 0 && out.NumFrames > 1 {
			rho *= 1 + c.lfoAmount*math.Sin(2*math.Pi*float64(i)/float64(out.NumFrames))
		}

		for j, s := range frame {
			dx := c.sigma * (y - x) * c.dt
			dy := (x*(rho-z) - y) * c.dt
			dz := (x*y - c.beta*z) * c.dt
			x, y, z = x+dx, y+dy, z+dz

			if !core.IsFinite(x) || !core.IsFinite(y) || !core.IsFinite(z) {
				x, y, z = chaosSeedX, chaosSeedY, chaosSeedZ
			}

			xn := math.Tanh(x / chaosXScale)
			folded := math.Tanh((s + c.foldSymmetry*xn) * (1 + c.complexity))
			v := s*(1-c.mix) + folded*c.mix

			if !core.IsFinite(v) {
				v = lastValid
			}

			v = core.ClampUnit(v)
			frame[j] = v
			lastValid = v
		}
	}

	return out, nil
}
