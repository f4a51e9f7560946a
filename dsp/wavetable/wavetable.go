// Package wavetable defines the wavetable data model and the
// synthesizer that fills it from a parsed equation or a closed-form
// preset.
package wavetable

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned for frame sizes below 2 or frame
// counts below 1.
var ErrInvalidDimensions = errors.New("invalid wavetable dimensions")

// Wavetable is an ordered sequence of single-cycle waveforms. Its
// dimensions are fixed for its lifetime: effects transform samples but
// never resize the grid.
type Wavetable struct {
	Frames    [][]float64
	FrameSize int
	NumFrames int
}

// New wraps frames in a Wavetable after validating that the grid is
// rectangular and at least 2 samples by 1 frame.
func New(frames [][]float64) (*Wavetable, error) {
	if len(frames) < 1 {
		return nil, fmt.Errorf("%w: need at least 1 frame", ErrInvalidDimensions)
	}

	size := len(frames[0])
	if size < 2 {
		return nil, fmt.Errorf("%w: frame size must be >= 2: %d", ErrInvalidDimensions, size)
	}

	for i, f := range frames {
		if len(f) != size {
			return nil, fmt.Errorf("%w: frame %d has %d samples, want %d", ErrInvalidDimensions, i, len(f), size)
		}
	}

	return &Wavetable{Frames: frames, FrameSize: size, NumFrames: len(frames)}, nil
}

// Validate checks the dimension invariants hold.
func (w *Wavetable) Validate() error {
	if w == nil {
		return fmt.Errorf("%w: nil wavetable", ErrInvalidDimensions)
	}

	if w.NumFrames < 1 || w.FrameSize < 2 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w.NumFrames, w.FrameSize)
	}

	if len(w.Frames) != w.NumFrames {
		return fmt.Errorf("%w: %d frames present, header says %d", ErrInvalidDimensions, len(w.Frames), w.NumFrames)
	}

	for i, f := range w.Frames {
		if len(f) != w.FrameSize {
			return fmt.Errorf("%w: frame %d has %d samples, want %d", ErrInvalidDimensions, i, len(f), w.FrameSize)
		}
	}

	return nil
}

// Clone returns a deep copy sharing no sample storage.
func (w *Wavetable) Clone() *Wavetable {
	frames := make([][]float64, len(w.Frames))
	for i, f := range w.Frames {
		frames[i] = make([]float64, len(f))
		copy(frames[i], f)
	}

	return &Wavetable{Frames: frames, FrameSize: w.FrameSize, NumFrames: w.NumFrames}
}

// Peak returns the largest absolute sample value across all frames.
func (w *Wavetable) Peak() float64 {
	peak := 0.0
	for _, f := range w.Frames {
		for _, v := range f {
			av := math.Abs(v)
			if av > peak {
				peak = av
			}
		}
	}

	return peak
}

// Normalize scales every frame by one global factor so the table peak
// equals targetPeak. A silent table is left untouched. Scaling by the
// global peak rather than per frame keeps the morph trajectory's
// relative frame loudness intact.
func (w *Wavetable) Normalize(targetPeak float64) {
	peak := w.Peak()
	if peak == 0 || targetPeak < 0 {
		return
	}

	scale := targetPeak / peak
	for _, f := range w.Frames {
		for i := range f {
			f[i] *= scale
		}
	}
}
