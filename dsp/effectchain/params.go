package effectchain

import "math"

// Params holds named numeric parameter values for one effect.
type Params map[string]float64

// GetNum safely extracts a parameter, returning def if missing or
// non-finite.
func (p Params) GetNum(key string, def float64) float64 {
	if p == nil {
		return def
	}

	v, ok := p[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
