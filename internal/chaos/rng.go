// Package chaos mutates a running game's rules and parameters as a function
// of the player-chosen 0-100 chaos level. All randomness is drawn from an
// HMAC-SHA256 stream keyed by the game's internal seed, so two sessions with
// the same seed code replay the same mutation sequence.
package chaos

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math"
)

// streamGenerator produces a deterministic byte stream from the internal
// seed. Bytes come from HMAC-SHA256(seed, "chaos:<round>") blocks, consumed
// in order; four bytes fold into one float in [0,1).
type streamGenerator struct {
	key          []byte
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// newStream creates a generator keyed by the internal seed.
func newStream(internalSeed int64) *streamGenerator {
	sg := &streamGenerator{
		key: []byte(fmt.Sprintf("%d", internalSeed)),
	}
	sg.generateRound()
	return sg
}

// next returns the next byte from the stream.
func (sg *streamGenerator) next() byte {
	if sg.currentPos >= 32 {
		sg.currentRound++
		sg.currentPos = 0
		sg.generateRound()
	}
	b := sg.buffer[sg.currentPos]
	sg.currentPos++
	return b
}

// nextFloat consumes exactly 4 bytes and returns a float in [0,1).
func (sg *streamGenerator) nextFloat() float64 {
	result := 0.0
	for i := 0; i < 4; i++ {
		divider := math.Pow(256, float64(i+1))
		result += float64(sg.next()) / divider
	}
	return result
}

// nextIndex maps a float draw onto [0,n). n <= 0 returns 0.
func (sg *streamGenerator) nextIndex(n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(sg.nextFloat() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func (sg *streamGenerator) generateRound() {
	h := hmac.New(sha256.New, sg.key)
	fmt.Fprintf(h, "chaos:%d", sg.currentRound)
	copy(sg.buffer[:], h.Sum(nil))
}
