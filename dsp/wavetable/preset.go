package wavetable

import (
	"errors"
	"fmt"
	"math"
)

// Preset selects one of the closed-form basic waveforms.
type Preset int

const (
	PresetSine Preset = iota
	PresetSquare
	PresetSawtooth
	PresetTriangle
)

// ErrUnknownPreset is returned for preset names outside the fixed set.
var ErrUnknownPreset = errors.New("unknown waveform preset")

var presetNames = map[string]Preset{
	"sine":     PresetSine,
	"square":   PresetSquare,
	"sawtooth": PresetSawtooth,
	"triangle": PresetTriangle,
}

// ParsePreset maps a preset name to its Preset value.
func ParsePreset(name string) (Preset, error) {
	p, ok := presetNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// String returns the canonical preset name.
func (p Preset) String() string {
	switch p {
	case PresetSine:
		return "sine"
	case PresetSquare:
		return "square"
	case PresetSawtooth:
		return "sawtooth"
	case PresetTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("preset(%d)", int(p))
	}
}

// SynthesizePreset renders a basic waveform. Presets bypass the
// equation evaluator and are independent of the morph position, so
// every frame is the same single cycle.
func SynthesizePreset(p Preset, frameSize, numFrames int) (*Wavetable, error) {
	if err := checkDims(frameSize, numFrames); err != nil {
		return nil, err
	}

	cycle := make([]float64, frameSize)
	for j := range cycle {
		cycle[j] = presetSample(p, float64(j)/float64(frameSize))
	}

	frames := make([][]float64, numFrames)
	for i := range frames {
		row := make([]float64, frameSize)
		copy(row, cycle)
		frames[i] = row
	}

	return &Wavetable{Frames: frames, FrameSize: frameSize, NumFrames: numFrames}, nil
}

// presetSample evaluates one preset at normalized phase frac in [0, 1).
func presetSample(p Preset, frac float64) float64 {
	switch p {
	case PresetSquare:
		s := math.Sin(2 * math.Pi * frac)
		switch {
		case s > 0:
			return 1
		case s < 0:
			return -1
		default:
			return 0
		}
	case PresetSawtooth:
		return 2 * (frac - 0.5)
	case PresetTriangle:
		return 2*math.Abs(2*(frac-0.5)) - 1
	default:
		return math.Sin(2 * math.Pi * frac)
	}
}
