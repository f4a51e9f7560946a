package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
	"github.com/Jstxyn/Wavetable-Site/internal/testutil"
)

func sineTable(t *testing.T, frameSize, numFrames int) *wavetable.Wavetable {
	t.Helper()
	wt, err := wavetable.New(testutil.Frames(testutil.SineFrame(1, frameSize), numFrames))
	if err != nil {
		t.Fatalf("building test wavetable: %v", err)
	}
	return wt
}

func TestChaosFoldMixZeroIsIdentity(t *testing.T) {
	t.Parallel()

	in := sineTable(t, 128, 4)

	fold, err := NewChaosFold(WithChaosMix(0))
	if err != nil {
		t.Fatalf("NewChaosFold returned unexpected error: %v", err)
	}

	out, err := fold.Apply(in)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	for i := range in.Frames {
		testutil.RequireSliceNearlyEqual(t, out.Frames[i], in.Frames[i], 1e-15)
	}
}

func TestChaosFoldOutputBounded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []ChaosFoldOption
	}{
		{name: "defaults", opts: nil},
		{name: "maximal params", opts: []ChaosFoldOption{
			WithChaosSigma(20), WithChaosRho(50), WithChaosBeta(2),
			WithChaosDT(0.1), WithChaosComplexity(1), WithChaosFoldSymmetry(1),
			WithChaosLFOAmount(1),
		}},
		{name: "tiny step", opts: []ChaosFoldOption{WithChaosDT(0.001)}},
	}

	// Input deliberately exceeds [-1, 1]: the raw synthesizer output
	// carries no amplitude guarantee.
	hot, err := wavetable.New(testutil.Frames(testutil.RampFrame(3, 64), 3))
	if err != nil {
		t.Fatalf("building test wavetable: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fold, err := NewChaosFold(tt.opts...)
			if err != nil {
				t.Fatalf("NewChaosFold returned unexpected error: %v", err)
			}

			out, err := fold.Apply(hot)
			if err != nil {
				t.Fatalf("Apply returned unexpected error: %v", err)
			}

			for _, frame := range out.Frames {
				testutil.RequireInUnitRange(t, frame)
			}
		})
	}
}

func TestChaosFoldDeterministic(t *testing.T) {
	t.Parallel()

	in := sineTable(t, 256, 5)

	fold, err := NewChaosFold(WithChaosLFOAmount(0.5))
	if err != nil {
		t.Fatalf("NewChaosFold returned unexpected error: %v", err)
	}

	first, err := fold.Apply(in)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}
	second, err := fold.Apply(in)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	for i := range first.Frames {
		testutil.RequireSliceNearlyEqual(t, first.Frames[i], second.Frames[i], 0)
	}
}

func TestChaosFoldDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := sineTable(t, 64, 2)
	want := in.Clone()

	fold, err := NewChaosFold()
	if err != nil {
		t.Fatalf("NewChaosFold returned unexpected error: %v", err)
	}

	if _, err := fold.Apply(in); err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	for i := range in.Frames {
		testutil.RequireSliceNearlyEqual(t, in.Frames[i], want.Frames[i], 0)
	}
}

func TestChaosFoldLFOEvolvesFrames(t *testing.T) {
	t.Parallel()

	in := sineTable(t, 128, 6)

	fold, err := NewChaosFold(WithChaosLFOAmount(1))
	if err != nil {
		t.Fatalf("NewChaosFold returned unexpected error: %v", err)
	}

	out, err := fold.Apply(in)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	diff, err := testutil.MaxAbsDiff(out.Frames[1], out.Frames[4])
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if diff == 0 {
		t.Error("expected LFO modulation to differentiate frames")
	}
}

func TestChaosFoldClampsOutOfRangeParams(t *testing.T) {
	t.Parallel()

	in := sineTable(t, 64, 2)

	clamped, err := NewChaosFold(WithChaosSigma(500), WithChaosRho(-3), WithChaosDT(9))
	if err != nil {
		t.Fatalf("NewChaosFold returned unexpected error: %v", err)
	}

	limit, err := NewChaosFold(WithChaosSigma(maxChaosSigma), WithChaosRho(minChaosRho), WithChaosDT(maxChaosDT))
	if err != nil {
		t.Fatalf("NewChaosFold returned unexpected error: %v", err)
	}

	got, err := clamped.Apply(in)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}
	want, err := limit.Apply(in)
	if err != nil {
		t.Fatalf("Apply returned unexpected error: %v", err)
	}

	for i := range got.Frames {
		testutil.RequireSliceNearlyEqual(t, got.Frames[i], want.Frames[i], 0)
	}
}

func TestChaosFoldRejectsNonFiniteParams(t *testing.T) {
	t.Parallel()

	if _, err := NewChaosFold(WithChaosSigma(math.NaN())); !errors.Is(err, ErrValidation) {
		t.Errorf("NaN sigma: expected ErrValidation, got: %v", err)
	}
	if _, err := NewChaosFold(WithChaosMix(math.Inf(1))); !errors.Is(err, ErrValidation) {
		t.Errorf("Inf mix: expected ErrValidation, got: %v", err)
	}
}

func TestChaosFoldRejectsRaggedInput(t *testing.T) {
	t.Parallel()

	bad := &wavetable.Wavetable{
		Frames:    [][]float64{{0, 1, 0}, {0, 1}},
		FrameSize: 3,
		NumFrames: 2,
	}

	fold, err := NewChaosFold()
	if err != nil {
		t.Fatalf("NewChaosFold returned unexpected error: %v", err)
	}

	if _, err := fold.Apply(bad); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}
