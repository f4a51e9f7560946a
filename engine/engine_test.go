package engine

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Jstxyn/Wavetable-Site/dsp/effectchain"
	"github.com/Jstxyn/Wavetable-Site/dsp/equation"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
	"github.com/Jstxyn/Wavetable-Site/internal/testutil"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e, err := New(WithFrameSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func decodePCM16(t *testing.T, data []byte) []int16 {
	t.Helper()

	const header = 44
	if len(data) < header {
		t.Fatalf("WAV shorter than header: %d bytes", len(data))
	}
	body := data[header:]
	if len(body)%2 != 0 {
		t.Fatalf("odd PCM payload length %d", len(body))
	}
	samples := make([]int16, len(body)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(body[2*i:]))
	}
	return samples
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.FrameSize() != DefaultFrameSize {
		t.Fatalf("FrameSize = %d, want %d", e.FrameSize(), DefaultFrameSize)
	}
}

func TestNewInvalidFrameSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{-1, 0, 1, maxFrameSize + 1} {
		if _, err := New(WithFrameSize(size)); !errors.Is(err, wavetable.ErrInvalidDimensions) {
			t.Errorf("New(WithFrameSize(%d)) error = %v, want ErrInvalidDimensions", size, err)
		}
	}
}

func TestSynthesizeEquation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	res, err := e.SynthesizeEquation("sin(t)", 4)
	if err != nil {
		t.Fatalf("SynthesizeEquation: %v", err)
	}
	if res.Table.NumFrames != 4 || res.Table.FrameSize != 64 {
		t.Fatalf("dimensions = %dx%d, want 4x64", res.Table.NumFrames, res.Table.FrameSize)
	}

	want := testutil.SineFrame(1, 64)
	testutil.RequireSliceNearlyEqual(t, res.Waveform(), want, 1e-12)

	if len(res.Spectrum) != 64/2+1 {
		t.Fatalf("spectrum length = %d, want %d", len(res.Spectrum), 64/2+1)
	}
	// The fundamental bin dominates a pure sine.
	peak := 0
	for i, m := range res.Spectrum {
		if m > res.Spectrum[peak] {
			peak = i
		}
	}
	if peak != 1 {
		t.Fatalf("spectral peak at bin %d, want 1", peak)
	}
}

func TestSynthesizeEquationNormalizes(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	res, err := e.SynthesizeEquation("0.25 * sin(t)", 1)
	if err != nil {
		t.Fatalf("SynthesizeEquation: %v", err)
	}
	if got := res.Table.Peak(); math.Abs(got-1) > 1e-12 {
		t.Fatalf("peak after normalization = %v, want 1", got)
	}
}

func TestSynthesizeEquationParseError(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	_, err := e.SynthesizeEquation("sin(t", 1)
	var perr *equation.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *equation.ParseError", err)
	}
}

func TestSynthesizeEquationInvalidFrameCount(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	if _, err := e.SynthesizeEquation("sin(t)", 0); !errors.Is(err, wavetable.ErrInvalidDimensions) {
		t.Fatalf("error = %v, want ErrInvalidDimensions", err)
	}
}

func TestSynthesizePreset(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	res, err := e.SynthesizePreset("sine", 2)
	if err != nil {
		t.Fatalf("SynthesizePreset: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, res.Waveform(), testutil.SineFrame(1, 64), 1e-12)

	if _, err := e.SynthesizePreset("organ", 2); !errors.Is(err, wavetable.ErrUnknownPreset) {
		t.Fatalf("unknown preset error = %v, want ErrUnknownPreset", err)
	}
}

func TestApplyEffectUnknown(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	wt, err := wavetable.New(testutil.Frames(testutil.SineFrame(0.5, 64), 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := e.ApplyEffect("bitcrush", wt, nil); !errors.Is(err, effectchain.ErrUnknownEffect) {
		t.Fatalf("error = %v, want ErrUnknownEffect", err)
	}
}

func TestHarmonicShapeZeroStrengthIsIdentity(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	wt, err := wavetable.New(testutil.Frames(testutil.SineFrame(0.8, 64), 2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := e.HarmonicShape(wt, 0)
	if err != nil {
		t.Fatalf("HarmonicShape: %v", err)
	}
	for i, frame := range res.Table.Frames {
		testutil.RequireSliceNearlyEqual(t, frame, wt.Frames[i], 1e-12)
	}
}

func TestChaosFoldBounded(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	wt, err := wavetable.New(testutil.Frames(testutil.SineFrame(1, 64), 3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := e.ChaosFold(wt, map[string]float64{"mix": 1, "foldSymmetry": 1, "complexity": 1})
	if err != nil {
		t.Fatalf("ChaosFold: %v", err)
	}
	for _, frame := range res.Table.Frames {
		testutil.RequireInUnitRange(t, frame)
	}
}

func TestApplyChainRespectsBypassAndParams(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	wt, err := wavetable.New(testutil.Frames(testutil.SineFrame(0.5, 64), 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// All stages start bypassed, so the chain is a copy.
	res, err := e.ApplyChain(wt)
	if err != nil {
		t.Fatalf("ApplyChain: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, res.Waveform(), wt.Frames[0], 0)

	if err := e.SetEffectParam(effectchain.EffectGain, "gain", 0.5); err != nil {
		t.Fatalf("SetEffectParam: %v", err)
	}
	if err := e.SetBypassed(effectchain.EffectGain, false); err != nil {
		t.Fatalf("SetBypassed: %v", err)
	}

	res, err = e.ApplyChain(wt)
	if err != nil {
		t.Fatalf("ApplyChain: %v", err)
	}
	want := make([]float64, wt.FrameSize)
	for i, s := range wt.Frames[0] {
		want[i] = s * 0.5
	}
	testutil.RequireSliceNearlyEqual(t, res.Waveform(), want, 1e-12)
}

func TestResetEffects(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	if err := e.SetBypassed(effectchain.EffectGain, false); err != nil {
		t.Fatalf("SetBypassed: %v", err)
	}
	if err := e.SetEffectParam(effectchain.EffectGain, "gain", 1.5); err != nil {
		t.Fatalf("SetEffectParam: %v", err)
	}

	e.ResetEffects()

	for _, desc := range e.ListEffects() {
		if !desc.Bypassed {
			t.Errorf("effect %q not bypassed after reset", desc.ID)
		}
		for _, p := range desc.Parameters {
			if p.Value != p.Default {
				t.Errorf("effect %q param %q = %v after reset, want default %v", desc.ID, p.ID, p.Value, p.Default)
			}
		}
	}
}

func TestListEffectsOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	descs := e.ListEffects()
	want := []string{effectchain.EffectChaosFold, effectchain.EffectHarmonicShaper, effectchain.EffectGain}
	if len(descs) != len(want) {
		t.Fatalf("ListEffects returned %d effects, want %d", len(descs), len(want))
	}
	for i, id := range want {
		if descs[i].ID != id {
			t.Errorf("effect %d = %q, want %q", i, descs[i].ID, id)
		}
	}
}

// TestSynthesizeShapeEncode runs the full request path: synthesize an
// equation, apply a neutral harmonic shape, and export the result as
// 16-bit PCM.
func TestSynthesizeShapeEncode(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	synth, err := e.SynthesizeEquation("sin(t)", 4)
	if err != nil {
		t.Fatalf("SynthesizeEquation: %v", err)
	}

	shaped, err := e.HarmonicShape(synth.Table, 0)
	if err != nil {
		t.Fatalf("HarmonicShape: %v", err)
	}
	for i, frame := range shaped.Table.Frames {
		testutil.RequireSliceNearlyEqual(t, frame, synth.Table.Frames[i], 1e-12)
	}

	data, err := e.EncodeWAV(shaped.Table, 1, 0)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}

	samples := decodePCM16(t, data)
	if len(samples) != 4*64 {
		t.Fatalf("decoded %d samples, want %d", len(samples), 4*64)
	}
	var peak int16
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	if peak != 32767 {
		t.Fatalf("decoded peak = %d, want 32767", peak)
	}
}
