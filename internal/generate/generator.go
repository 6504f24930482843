// Package generate assembles a complete playable configuration from a
// GameDNA record: seed code, composed rule set, chaos config and feedback
// loop metadata, in one payload ready for persistence and play.
package generate

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/google/uuid"

	"github.com/gamesmith/gamesmith-go/internal/chaos"
	"github.com/gamesmith/gamesmith-go/internal/compose"
	"github.com/gamesmith/gamesmith-go/internal/dna"
	"github.com/gamesmith/gamesmith-go/internal/feedback"
	"github.com/gamesmith/gamesmith-go/internal/rules"
	"github.com/gamesmith/gamesmith-go/internal/seedcode"
)

// Game is the generated configuration handed to persistence and to the
// runtime. Everything in it is reproducible from (DNA, InternalSeed); the
// seed code is the shareable name for that pair.
type Game struct {
	ID            string          `json:"id"`
	SeedCode      string          `json:"seed_code"`
	DNA           dna.GameDNA     `json:"dna"`
	InternalSeed  int64           `json:"internal_seed"`
	Rules         []rules.RuleDef `json:"rules"`
	Chaos         chaos.Config    `json:"chaos"`
	PositiveLoops []feedback.Loop `json:"positive_loops"`
	NegativeLoops []feedback.Loop `json:"negative_loops"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewInternalSeed draws a fresh internal seed from the OS entropy source,
// already reduced into the codec's seed space.
func NewInternalSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Entropy failure leaves a time-derived seed; generation stays total.
		return time.Now().UnixNano() % seedcode.SeedSpace
	}
	return int64(binary.BigEndian.Uint64(buf[:]) % seedcode.SeedSpace)
}

// FromDNA builds the full generated game for a choice record and internal
// seed. The DNA is normalized (clamped) first; generation never fails.
func FromDNA(d dna.GameDNA, internalSeed int64) *Game {
	d.Normalize()
	return &Game{
		ID:            uuid.NewString(),
		SeedCode:      seedcode.Encode(&d, internalSeed),
		DNA:           d,
		InternalSeed:  internalSeed,
		Rules:         compose.Compose(d.Verbs),
		Chaos:         chaos.ConfigForLevel(d.ChaosLevel),
		PositiveLoops: feedback.PositiveLoops(d.Verbs, d.Difficulty),
		NegativeLoops: feedback.NegativeLoops(d.Verbs, d.Difficulty),
		CreatedAt:     time.Now().UTC(),
	}
}

// FromSeedCode regenerates a game from a shared code. Fields the code does
// not carry come back at their zero values; the rule set is rebuilt from the
// decoded lead verb, so a shared code replays the same mechanics and the
// same chaos schedule even though the full wizard record is gone.
func FromSeedCode(code string) *Game {
	decoded := seedcode.Decode(code)
	d := dna.GameDNA{
		GravityMode:    decoded.Gravity,
		SpecialPhysics: decoded.WorldDifference,
		ChaosLevel:     decoded.ChaosLevel,
	}
	if decoded.Verb != seedcode.Unknown && decoded.Verb != seedcode.CustomValue {
		d.Verbs = []string{decoded.Verb}
	}
	return FromDNA(d, decoded.InternalSeed)
}
