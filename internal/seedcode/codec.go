// Package seedcode implements the shareable seed code: a compact, reversible
// string identifying a generated game configuration.
//
// Wire format: VVVV-GGGG-WWWWC-SSSS
//
//	VVVV  4-char lead verb code
//	GGGG  4-char gravity mode code
//	WWWW  4-char world difference code
//	C     1 chaos digit (0-9)
//	SSSS  internal seed, 4 base-33 digits
//
// Both Encode and Decode are total: out-of-range input degrades to default
// segments and malformed codes decode to explicit unknown fields. The chaos
// digit quantizes the 0-100 chaos level to round(level/11); decoding
// multiplies back by 11, so the decoded level is only accurate to the nearest
// ~11 units. That loss is a size/precision trade-off in the format, not a bug.
package seedcode

import (
	"math"
	"strings"

	"github.com/gamesmith/gamesmith-go/internal/dna"
)

// Alphabet is the 33-symbol set used for the internal seed digits. It drops
// 0, 1 and I, the glyphs most often misread when codes are shared by hand.
const Alphabet = "23456789ABCDEFGHJKLMNOPQRSTUVWXYZ"

// SeedSpace is the number of distinct internal seeds the code can carry
// (33^4). Seeds outside [0, SeedSpace) alias under modulo reduction, so
// callers must not assume uniqueness beyond this range.
const SeedSpace = 33 * 33 * 33 * 33

// CustomCode is the reserved segment for values the fixed tables cannot
// represent (custom or unrecognized player input).
const CustomCode = "CSTM"

// CustomValue is the decoded sentinel for a segment that carried CustomCode.
const CustomValue = "custom"

// Unknown is the decoded sentinel for a segment that could not be mapped at
// all. It is deliberately distinct from CustomValue: unknown means the code
// was malformed, custom means the author picked something off-menu.
const Unknown = ""

var verbCodes = map[string]string{
	dna.VerbJump:     "JUMP",
	dna.VerbShoot:    "SHOT",
	dna.VerbCollect:  "COLL",
	dna.VerbDodge:    "DODG",
	dna.VerbBuild:    "BILD",
	dna.VerbExplore:  "EXPL",
	dna.VerbPush:     "PUSH",
	dna.VerbActivate: "ACTV",
	dna.VerbCraft:    "CRFT",
	dna.VerbDefend:   "DFND",
	dna.VerbDash:     "DASH",
}

var gravityCodes = map[string]string{
	dna.GravityNormal:  "NORM",
	dna.GravityLow:     "LOWG",
	dna.GravityHeavy:   "HEVY",
	dna.GravityFlipped: "FLIP",
	dna.GravityOrbital: "ORBT",
}

var worldCodes = map[string]string{
	dna.PhysicsNone:       "PLNE",
	dna.PhysicsIce:        "ICEW",
	dna.PhysicsBouncy:     "BNCY",
	dna.PhysicsSticky:     "STCK",
	dna.PhysicsUnderwater: "AQUA",
}

var verbFromCode = invert(verbCodes)
var gravityFromCode = invert(gravityCodes)
var worldFromCode = invert(worldCodes)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Decoded is the result of decoding a seed code. Fields the code could not
// represent are Unknown; decode never fails.
type Decoded struct {
	Verb            string `json:"verb"`
	Gravity         string `json:"gravity"`
	WorldDifference string `json:"world_difference"`
	ChaosLevel      int    `json:"chaos_level"`
	InternalSeed    int64  `json:"internal_seed"`
}

// Encode builds the seed code for a set of choices plus an internal seed.
// It never fails: unmapped choice values fall back to the custom segment and
// the seed is reduced modulo SeedSpace.
func Encode(d *dna.GameDNA, internalSeed int64) string {
	var b strings.Builder
	b.Grow(20)
	b.WriteString(segmentFor(verbCodes, d.LeadVerb()))
	b.WriteByte('-')
	b.WriteString(segmentFor(gravityCodes, d.GravityMode))
	b.WriteByte('-')
	b.WriteString(segmentFor(worldCodes, d.SpecialPhysics))
	b.WriteByte(chaosDigit(d.ChaosLevel))
	b.WriteByte('-')
	b.WriteString(encodeSeed(internalSeed))
	return b.String()
}

// Decode parses a seed code. Malformed input (wrong segment count, bad
// symbols) yields unknown fields, chaos level 0 and internal seed 0.
func Decode(code string) Decoded {
	var out Decoded
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(code)), "-")
	if len(parts) != 4 {
		return out
	}
	out.Verb = lookup(verbFromCode, parts[0])
	out.Gravity = lookup(gravityFromCode, parts[1])
	if len(parts[2]) == 5 {
		out.WorldDifference = lookup(worldFromCode, parts[2][:4])
		if d := parts[2][4]; d >= '0' && d <= '9' {
			out.ChaosLevel = int(d-'0') * 11
		}
	}
	out.InternalSeed = decodeSeed(parts[3])
	return out
}

func segmentFor(table map[string]string, value string) string {
	if code, ok := table[value]; ok {
		return code
	}
	return CustomCode
}

func lookup(table map[string]string, code string) string {
	if v, ok := table[code]; ok {
		return v
	}
	if code == CustomCode {
		return CustomValue
	}
	return Unknown
}

// chaosDigit quantizes a chaos level to a single digit. Levels land on the
// digit via round(level/11), clamped to [0,9].
func chaosDigit(level int) byte {
	d := int(math.Round(float64(dna.ClampChaosLevel(level)) / 11))
	if d > 9 {
		d = 9
	}
	return byte('0' + d)
}

// encodeSeed renders seed mod SeedSpace as 4 fixed-width base-33 digits,
// most significant first.
func encodeSeed(seed int64) string {
	n := seed % SeedSpace
	if n < 0 {
		n += SeedSpace
	}
	var digits [4]byte
	for i := 3; i >= 0; i-- {
		digits[i] = Alphabet[n%33]
		n /= 33
	}
	return string(digits[:])
}

// decodeSeed parses 4 base-33 digits back into an integer. Any unrecognized
// symbol or wrong length collapses to seed 0.
func decodeSeed(s string) int64 {
	if len(s) != 4 {
		return 0
	}
	var n int64
	for i := 0; i < 4; i++ {
		idx := strings.IndexByte(Alphabet, s[i])
		if idx < 0 {
			return 0
		}
		n = n*33 + int64(idx)
	}
	return n
}
