package effects

import (
	"fmt"
	"math"

	"github.com/Jstxyn/Wavetable-Site/dsp/core"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

const (
	minShaperStrength     = -1.0
	maxShaperStrength     = 1.0
	defaultShaperStrength = 0.0
)

// HarmonicShaperOption mutates construction-time parameters.
type HarmonicShaperOption func(*HarmonicShaper) error

// WithShaperStrength sets the shaping strength, clamped to [-1, 1].
func WithShaperStrength(strength float64) HarmonicShaperOption {
	return func(h *HarmonicShaper) error { return h.SetStrength(strength) }
}

// HarmonicShaper is a stateless, sign-preserving waveshaper. Positive
// strength boosts peaks toward unity without exceeding it for |y| <= 1;
// negative strength attenuates toward zero. Zero strength is an exact
// no-op for in-range input.
type HarmonicShaper struct {
	strength float64
}

// NewHarmonicShaper creates a shaper with validated options.
func NewHarmonicShaper(opts ...HarmonicShaperOption) (*HarmonicShaper, error) {
	h := &HarmonicShaper{strength: defaultShaperStrength}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// SetStrength sets the shaping strength, clamped to [-1, 1].
func (h *HarmonicShaper) SetStrength(strength float64) error {
	return setClamped(&h.strength, strength, minShaperStrength, maxShaperStrength, "strength")
}

// Shape applies the per-sample transfer law.
func (h *HarmonicShaper) Shape(y float64) float64 {
	ay := math.Abs(y)

	var shaped float64
	if h.strength >= 0 {
		shaped = ay + h.strength*ay*(1-ay)
	} else {
		shaped = ay + h.strength*ay*ay
	}

	// Out-of-range input can drive the attenuation branch below zero;
	// flooring at zero keeps the transfer sign-preserving.
	if shaped < 0 {
		shaped = 0
	}

	return core.ClampUnit(math.Copysign(shaped, y))
}

// Apply shapes every sample of every frame independently and returns a
// new table of identical dimensions. Every output sample lies in [-1, 1].
func (h *HarmonicShaper) Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	if err := wt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := wt.Clone()
	for _, frame := range out.Frames {
		for j, s := range frame {
			frame[j] = h.Shape(s)
		}
	}

	return out, nil
}
