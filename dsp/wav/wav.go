// Package wav serializes wavetables to mono 16-bit PCM WAV files.
// Frames are concatenated in order, so each wavetable frame becomes
// one single-cycle segment of the output stream.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/Jstxyn/Wavetable-Site/dsp/core"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

// ErrEmptyData is returned when there is nothing to encode.
var ErrEmptyData = errors.New("wav: empty wavetable")

// DefaultSampleRate is used when the caller passes a rate <= 0.
const DefaultSampleRate = 44100

const (
	headerBytes    = 44
	bytesPerSample = 2
)

// Encode renders the wavetable as a WAV byte stream. Each sample is
// round(clamp(s*gain, -1, 1) * 32767).
func Encode(wt *wavetable.Wavetable, gain float64, sampleRate int) ([]byte, error) {
	if wt == nil || len(wt.Frames) == 0 {
		return nil, ErrEmptyData
	}

	if err := wt.Validate(); err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	if !core.IsFinite(gain) {
		return nil, fmt.Errorf("wav: gain must be finite: %v", gain)
	}

	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	numSamples := wt.NumFrames * wt.FrameSize
	buf := new(bytes.Buffer)
	buf.Grow(headerBytes + bytesPerSample*numSamples)

	writeHeader(buf, numSamples, sampleRate)

	pcm := make([]int16, 0, numSamples)
	for _, frame := range wt.Frames {
		for _, s := range frame {
			v := core.ClampUnit(s * gain)
			pcm = append(pcm, int16(math.Round(v*32767)))
		}
	}

	if err := binary.Write(buf, binary.LittleEndian, pcm); err != nil {
		return nil, fmt.Errorf("wav: writing sample data: %w", err)
	}

	return buf.Bytes(), nil
}

// writeHeader emits the RIFF/fmt/data framing for mono 16-bit PCM.
// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
func writeHeader(buf *bytes.Buffer, numSamples, sampleRate int) {
	const (
		numChannels   = 1
		fmtChunkSize  = 16
		pcmFormat     = 1
		bitsPerSample = 8 * bytesPerSample
	)

	dataBytes := bytesPerSample * numSamples

	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(36+dataBytes))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(pcmFormat))
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*numChannels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(numChannels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(dataBytes))
}
