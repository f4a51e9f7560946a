package effectchain

import (
	"github.com/Jstxyn/Wavetable-Site/dsp/effects"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

// Effect ids of the built-in registry.
const (
	EffectChaosFold      = "chaosFold"
	EffectHarmonicShaper = "harmonicShaper"
	EffectGain           = "gain"
)

// DefaultRegistry returns a Registry pre-populated with the built-in
// effect runtimes in their default chain order.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(EffectChaosFold, func() (Runtime, error) {
		fx, err := effects.NewChaosFold()
		if err != nil {
			return nil, err
		}
		return &chaosFoldRuntime{fx: fx}, nil
	})
	r.MustRegister(EffectHarmonicShaper, func() (Runtime, error) {
		fx, err := effects.NewHarmonicShaper()
		if err != nil {
			return nil, err
		}
		return &harmonicShaperRuntime{fx: fx}, nil
	})
	r.MustRegister(EffectGain, func() (Runtime, error) {
		fx, err := effects.NewGain()
		if err != nil {
			return nil, err
		}
		return &gainRuntime{fx: fx}, nil
	})

	return r
}

type chaosFoldRuntime struct {
	fx *effects.ChaosFold
}

func (r *chaosFoldRuntime) Describe() Descriptor {
	return Descriptor{
		ID:   EffectChaosFold,
		Name: "Chaos Fold",
		Parameters: []Parameter{
			{ID: "sigma", Name: "Input sensitivity", Min: 0, Max: 20, Step: 0.1, Default: 10, Value: 10},
			{ID: "rho", Name: "Feedback intensity", Min: 0, Max: 50, Step: 0.1, Default: 28, Value: 28},
			{ID: "beta", Name: "Folding strength", Min: 0, Max: 2, Step: 0.01, Default: 0.5, Value: 0.5},
			{ID: "dt", Name: "Time step", Min: 0.001, Max: 0.1, Step: 0.001, Default: 0.01, Value: 0.01},
			{ID: "mix", Name: "Mix", Min: 0, Max: 1, Step: 0.01, Default: 1, Value: 1},
			{ID: "foldSymmetry", Name: "Fold symmetry", Min: 0, Max: 1, Step: 0.01, Default: 0.5, Value: 0.5},
			{ID: "complexity", Name: "Complexity", Min: 0, Max: 1, Step: 0.01, Default: 0.5, Value: 0.5},
			{ID: "lfoAmount", Name: "LFO amount", Min: 0, Max: 1, Step: 0.01, Default: 0, Value: 0},
		},
	}
}

func (r *chaosFoldRuntime) Configure(params Params) error {
	if err := r.fx.SetSigma(params.GetNum("sigma", 10)); err != nil {
		return err
	}
	if err := r.fx.SetRho(params.GetNum("rho", 28)); err != nil {
		return err
	}
	if err := r.fx.SetBeta(params.GetNum("beta", 0.5)); err != nil {
		return err
	}
	if err := r.fx.SetDT(params.GetNum("dt", 0.01)); err != nil {
		return err
	}
	if err := r.fx.SetMix(params.GetNum("mix", 1)); err != nil {
		return err
	}
	if err := r.fx.SetFoldSymmetry(params.GetNum("foldSymmetry", 0.5)); err != nil {
		return err
	}
	if err := r.fx.SetComplexity(params.GetNum("complexity", 0.5)); err != nil {
		return err
	}

	return r.fx.SetLFOAmount(params.GetNum("lfoAmount", 0))
}

func (r *chaosFoldRuntime) Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	return r.fx.Apply(wt)
}

type harmonicShaperRuntime struct {
	fx *effects.HarmonicShaper
}

func (r *harmonicShaperRuntime) Describe() Descriptor {
	return Descriptor{
		ID:   EffectHarmonicShaper,
		Name: "Harmonic Shaper",
		Parameters: []Parameter{
			{ID: "strength", Name: "Strength", Min: -1, Max: 1, Step: 0.01, Default: 0, Value: 0},
		},
	}
}

func (r *harmonicShaperRuntime) Configure(params Params) error {
	return r.fx.SetStrength(params.GetNum("strength", 0))
}

func (r *harmonicShaperRuntime) Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	return r.fx.Apply(wt)
}

type gainRuntime struct {
	fx *effects.Gain
}

func (r *gainRuntime) Describe() Descriptor {
	return Descriptor{
		ID:   EffectGain,
		Name: "Gain",
		Parameters: []Parameter{
			{ID: "gain", Name: "Amplitude gain", Min: 0, Max: 2, Step: 0.01, Default: 1, Value: 1},
		},
	}
}

func (r *gainRuntime) Configure(params Params) error {
	return r.fx.SetAmount(params.GetNum("gain", 1))
}

func (r *gainRuntime) Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	return r.fx.Apply(wt)
}
