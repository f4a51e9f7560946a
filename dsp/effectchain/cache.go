package effectchain

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"

	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

// maxCacheEntries bounds the per-stage memo. The cache is dropped
// wholesale when full; correctness never depends on retention.
const maxCacheEntries = 32

// cacheKey fingerprints one stage invocation: effect id, canonical
// parameter serialization, and the exact bit pattern of every input
// sample.
func cacheKey(effectID string, params Params, wt *wavetable.Wavetable) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	h.Write([]byte(effectID))
	h.Write([]byte{0})

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		h.Write([]byte(k))
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(params[k]))
		h.Write(buf[:])
	}

	binary.LittleEndian.PutUint64(buf[:], uint64(wt.NumFrames)<<32|uint64(uint32(wt.FrameSize)))
	h.Write(buf[:])

	for _, frame := range wt.Frames {
		for _, v := range frame {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}

	return h.Sum64()
}
