package effectchain

import "github.com/Jstxyn/Wavetable-Site/dsp/core"

// Parameter describes one effect parameter: its range, step hint for
// UI sliders, default, and current value.
type Parameter struct {
	ID      string
	Name    string
	Value   float64
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// Descriptor is the queryable snapshot of one registered effect.
type Descriptor struct {
	ID         string
	Name       string
	Parameters []Parameter
	Bypassed   bool
}

// clone deep-copies the descriptor so callers cannot mutate chain state
// through a snapshot.
func (d Descriptor) clone() Descriptor {
	out := d
	out.Parameters = make([]Parameter, len(d.Parameters))
	copy(out.Parameters, d.Parameters)
	return out
}

// defaults returns the descriptor's parameter defaults as Params.
func (d Descriptor) defaults() Params {
	p := make(Params, len(d.Parameters))
	for _, spec := range d.Parameters {
		p[spec.ID] = spec.Default
	}
	return p
}

// clampParam limits value to the declared range of the named
// parameter. Unknown names pass through unchanged.
func (d Descriptor) clampParam(name string, value float64) float64 {
	for _, spec := range d.Parameters {
		if spec.ID == name {
			return core.Clamp(value, spec.Min, spec.Max)
		}
	}
	return value
}

// hasParam reports whether the descriptor declares the named parameter.
func (d Descriptor) hasParam(name string) bool {
	for _, spec := range d.Parameters {
		if spec.ID == name {
			return true
		}
	}
	return false
}
