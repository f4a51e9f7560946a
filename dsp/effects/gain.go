package effects

import (
	"fmt"

	"github.com/Jstxyn/Wavetable-Site/dsp/core"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

const (
	minGainAmount     = 0.0
	maxGainAmount     = 2.0
	defaultGainAmount = 1.0
)

// GainOption mutates construction-time parameters.
type GainOption func(*Gain) error

// WithGainAmount sets the amplitude factor, clamped to [0, 2].
func WithGainAmount(amount float64) GainOption {
	return func(g *Gain) error { return g.SetAmount(amount) }
}

// Gain scales every sample by a constant factor. Like every effect
// stage, the output is clamped to [-1, 1], so factors above unity
// saturate rather than overflow.
type Gain struct {
	amount float64
}

// NewGain creates a gain stage with validated options.
func NewGain(opts ...GainOption) (*Gain, error) {
	g := &Gain{amount: defaultGainAmount}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// SetAmount sets the amplitude factor, clamped to [0, 2].
func (g *Gain) SetAmount(amount float64) error {
	return setClamped(&g.amount, amount, minGainAmount, maxGainAmount, "gain")
}

// Apply scales every sample and returns a new table of identical
// dimensions.
func (g *Gain) Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	if err := wt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := wt.Clone()
	for _, frame := range out.Frames {
		for j, s := range frame {
			frame[j] = core.ClampUnit(s * g.amount)
		}
	}

	return out, nil
}
