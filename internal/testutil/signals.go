package testutil

import "math"

// SineFrame generates one cycle of a sine wave with the given amplitude.
func SineFrame(amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(length))
	}
	return out
}

// RampFrame generates a linear ramp from -amplitude to +amplitude.
func RampFrame(amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if length < 2 {
		return out
	}
	for i := range out {
		out[i] = amplitude * (2*float64(i)/float64(length-1) - 1)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Frames builds a frame grid by repeating frame numFrames times.
// Each frame is an independent copy.
func Frames(frame []float64, numFrames int) [][]float64 {
	out := make([][]float64, numFrames)
	for i := range out {
		f := make([]float64, len(frame))
		copy(f, frame)
		out[i] = f
	}
	return out
}
