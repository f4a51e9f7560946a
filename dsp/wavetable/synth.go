package wavetable

import (
	"fmt"
	"math"
)

// Evaluator is the synthesis contract of a parsed equation: a pure
// function of the time phase t (radians, one cycle over [0, 2*pi)) and
// the morph position frame in [0, 1].
type Evaluator interface {
	Eval(t, frame float64) float64
	UsesFrame() bool
}

// Synthesize evaluates expr over a frameSize x numFrames grid.
//
// For frame index i, frame = i/(numFrames-1) so the last frame reaches
// exactly 1.0 (a single frame evaluates at 0). For sample index j,
// t = 2*pi*j/frameSize. The output is raw: no amplitude bound is
// guaranteed until an effect stage or the encoder clamps it.
func Synthesize(expr Evaluator, frameSize, numFrames int) (*Wavetable, error) {
	if err := checkDims(frameSize, numFrames); err != nil {
		return nil, err
	}

	frames := make([][]float64, numFrames)
	step := 2 * math.Pi / float64(frameSize)

	fillFrames := numFrames
	if !expr.UsesFrame() {
		// Frame-independent equations produce identical frames; render
		// the first and copy the rest.
		fillFrames = 1
	}

	for i := 0; i < fillFrames; i++ {
		frame := morphPosition(i, numFrames)
		row := make([]float64, frameSize)
		for j := 0; j < frameSize; j++ {
			row[j] = expr.Eval(step*float64(j), frame)
		}
		frames[i] = row
	}

	for i := fillFrames; i < numFrames; i++ {
		row := make([]float64, frameSize)
		copy(row, frames[0])
		frames[i] = row
	}

	return &Wavetable{Frames: frames, FrameSize: frameSize, NumFrames: numFrames}, nil
}

func morphPosition(index, numFrames int) float64 {
	if numFrames <= 1 {
		return 0
	}
	return float64(index) / float64(numFrames-1)
}

func checkDims(frameSize, numFrames int) error {
	if frameSize < 2 {
		return fmt.Errorf("%w: frame size must be >= 2: %d", ErrInvalidDimensions, frameSize)
	}
	if numFrames < 1 {
		return fmt.Errorf("%w: frame count must be >= 1: %d", ErrInvalidDimensions, numFrames)
	}
	return nil
}
