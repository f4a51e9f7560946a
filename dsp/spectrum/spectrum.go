// Package spectrum computes display spectra for wavetable frames.
//
// The magnitude of the first frame's DFT is shipped alongside every
// synthesis response for visualization. It carries no synthesis
// semantics.
package spectrum

import (
	"fmt"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex unpacking.
type scratchBuf struct {
	cdata []complex128
	fdata []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (in, out []complex128, re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	if cap(buf.cdata) < 2*n {
		buf.cdata = make([]complex128, 2*n)
	} else {
		buf.cdata = buf.cdata[:2*n]
	}

	if cap(buf.fdata) < 2*n {
		buf.fdata = make([]float64, 2*n)
	} else {
		buf.fdata = buf.fdata[:2*n]
	}

	return buf.cdata[:n], buf.cdata[n : 2*n], buf.fdata[:n], buf.fdata[n : 2*n], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Analyzer computes magnitude spectra, caching one FFT plan per frame
// size. It is safe for concurrent use.
type Analyzer struct {
	mu    sync.Mutex
	plans map[int]*algofft.Plan[complex128]
}

// NewAnalyzer creates an Analyzer with an empty plan cache.
func NewAnalyzer() *Analyzer {
	return &Analyzer{plans: make(map[int]*algofft.Plan[complex128])}
}

func (a *Analyzer) plan(size int) (*algofft.Plan[complex128], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.plans[size]; ok {
		return p, nil
	}

	p, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan for size %d: %w", size, err)
	}

	a.plans[size] = p

	return p, nil
}

// Magnitude returns the one-sided magnitude spectrum |X[k]| of frame,
// k in [0, len(frame)/2]. The frame is treated as one period, so bin k
// is the k-th harmonic of the waveform.
func (a *Analyzer) Magnitude(frame []float64) ([]float64, error) {
	n := len(frame)
	if n < 2 {
		return nil, fmt.Errorf("spectrum: frame must have at least 2 samples: %d", n)
	}

	plan, err := a.plan(n)
	if err != nil {
		return nil, err
	}

	in, out, re, im, buf := getScratch(n)
	defer putScratch(buf)

	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	bins := n/2 + 1
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re[:bins], im[:bins])

	return mag, nil
}
