package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// NewRNG builds the engine's random source. A zero seed draws one from
// crypto/rand so unseeded runs differ; any other seed reproduces exactly.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return rand.New(rand.NewSource(seed))
}

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
