package effectchain

import "github.com/Jstxyn/Wavetable-Site/dsp/wavetable"

// Runtime is the per-stage processing and configuration contract.
// Apply must return a new wavetable of identical dimensions with every
// sample in [-1, 1], leaving the input untouched.
type Runtime interface {
	Describe() Descriptor
	Configure(params Params) error
	Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error)
}
