// Package engine exposes the wavetable core through one session-scoped
// object. Each Engine owns its effect chain state (parameter values,
// bypass flags, memo caches) and serializes access with a mutex, so a
// hosting transport can share one Engine per session across concurrent
// requests. Synthesis and encoding are pure per call.
package engine

import (
	"fmt"
	"sync"

	"github.com/Jstxyn/Wavetable-Site/dsp/effectchain"
	"github.com/Jstxyn/Wavetable-Site/dsp/equation"
	"github.com/Jstxyn/Wavetable-Site/dsp/spectrum"
	"github.com/Jstxyn/Wavetable-Site/dsp/wav"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

const (
	// DefaultFrameSize matches the standard wavetable resolution.
	DefaultFrameSize = 2048
	// DefaultNumFrames is used when a request does not specify a count.
	DefaultNumFrames = 8

	minFrameSize = 2
	maxFrameSize = 65536
)

// Result is the response shape of every synthesis and effect
// operation: the full frame grid plus the display spectrum of the
// first frame. Spectrum is best effort and may be nil; it carries no
// synthesis semantics.
type Result struct {
	Table    *wavetable.Wavetable
	Spectrum []float64
}

// Waveform returns the first frame, the one the display plots.
func (r *Result) Waveform() []float64 {
	return r.Table.Frames[0]
}

// Option configures an Engine.
type Option func(*Engine) error

// WithFrameSize overrides the per-frame sample count.
func WithFrameSize(frameSize int) Option {
	return func(e *Engine) error {
		if frameSize < minFrameSize || frameSize > maxFrameSize {
			return fmt.Errorf("%w: frame size must be in [%d, %d]: %d",
				wavetable.ErrInvalidDimensions, minFrameSize, maxFrameSize, frameSize)
		}
		e.frameSize = frameSize
		return nil
	}
}

// WithRegistry replaces the built-in effect registry.
func WithRegistry(registry *effectchain.Registry) Option {
	return func(e *Engine) error {
		e.registry = registry
		return nil
	}
}

// Engine is one session's entry point to synthesis, effects, and
// export.
type Engine struct {
	mu        sync.Mutex
	frameSize int
	registry  *effectchain.Registry
	chain     *effectchain.Chain
	analyzer  *spectrum.Analyzer
}

// New creates an Engine with the built-in effects and default frame
// size.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		frameSize: DefaultFrameSize,
		analyzer:  spectrum.NewAnalyzer(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.registry == nil {
		e.registry = effectchain.DefaultRegistry()
	}

	chain, err := effectchain.New(e.registry)
	if err != nil {
		return nil, err
	}
	e.chain = chain

	return e, nil
}

// FrameSize returns the per-frame sample count of synthesized tables.
func (e *Engine) FrameSize() int {
	return e.frameSize
}

func (e *Engine) result(wt *wavetable.Wavetable) *Result {
	mag, err := e.analyzer.Magnitude(wt.Frames[0])
	if err != nil {
		// Display-only data; the table itself is still valid.
		mag = nil
	}
	return &Result{Table: wt, Spectrum: mag}
}

// SynthesizeEquation parses text and renders numFrames frames.
// The table is normalized by its global peak so morph targets stay at
// full scale regardless of the equation's raw amplitude.
func (e *Engine) SynthesizeEquation(text string, numFrames int) (*Result, error) {
	expr, err := equation.Parse(text)
	if err != nil {
		return nil, err
	}

	wt, err := wavetable.Synthesize(expr, e.frameSize, numFrames)
	if err != nil {
		return nil, err
	}

	wt.Normalize(1)

	return e.result(wt), nil
}

// SynthesizePreset renders one of the basic waveforms.
func (e *Engine) SynthesizePreset(name string, numFrames int) (*Result, error) {
	p, err := wavetable.ParsePreset(name)
	if err != nil {
		return nil, err
	}

	wt, err := wavetable.SynthesizePreset(p, e.frameSize, numFrames)
	if err != nil {
		return nil, err
	}

	return e.result(wt), nil
}

// ApplyEffect updates the named effect's parameters and applies that
// single effect to wt, regardless of its bypass flag.
func (e *Engine) ApplyEffect(effectID string, wt *wavetable.Wavetable, params map[string]float64) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, err := e.chain.ApplyOne(effectID, wt, effectchain.Params(params))
	if err != nil {
		return nil, err
	}

	return e.result(out), nil
}

// ChaosFold applies the chaos wavefolder with the given parameters.
func (e *Engine) ChaosFold(wt *wavetable.Wavetable, params map[string]float64) (*Result, error) {
	return e.ApplyEffect(effectchain.EffectChaosFold, wt, params)
}

// HarmonicShape applies the harmonic shaper at the given strength.
func (e *Engine) HarmonicShape(wt *wavetable.Wavetable, strength float64) (*Result, error) {
	return e.ApplyEffect(effectchain.EffectHarmonicShaper, wt, map[string]float64{"strength": strength})
}

// ApplyChain runs every enabled effect in chain order.
func (e *Engine) ApplyChain(wt *wavetable.Wavetable) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, err := e.chain.Apply(wt)
	if err != nil {
		return nil, err
	}

	return e.result(out), nil
}

// EncodeWAV serializes wt to mono 16-bit PCM. A sampleRate <= 0 uses
// the 44100 Hz default.
func (e *Engine) EncodeWAV(wt *wavetable.Wavetable, gain float64, sampleRate int) ([]byte, error) {
	return wav.Encode(wt, gain, sampleRate)
}

// ListEffects snapshots the registry: ids, parameter ranges, current
// values, and bypass flags in chain order.
func (e *Engine) ListEffects() []effectchain.Descriptor {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.Descriptors()
}

// SetEffectParam updates one session parameter, clamped to its range.
func (e *Engine) SetEffectParam(effectID, name string, value float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.SetParam(effectID, name, value)
}

// SetBypassed toggles one effect in or out of ApplyChain.
func (e *Engine) SetBypassed(effectID string, bypassed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.SetBypassed(effectID, bypassed)
}

// ResetEffects restores default parameters and bypass flags.
func (e *Engine) ResetEffects() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.chain.Reset()
}
