package seedcode

import (
	"strings"
	"testing"

	"github.com/gamesmith/gamesmith-go/internal/dna"
)

func testDNA() *dna.GameDNA {
	return &dna.GameDNA{
		Genre:          dna.GenrePlatformer,
		Verbs:          []string{dna.VerbJump, dna.VerbCollect},
		GravityMode:    dna.GravityLow,
		BoundaryMode:   dna.BoundaryWalled,
		SpecialPhysics: dna.PhysicsIce,
		Difficulty:     dna.DifficultyBalanced,
		ChaosLevel:     44,
	}
}

func TestEncodeFormat(t *testing.T) {
	code := Encode(testDNA(), 12345)

	parts := strings.Split(code, "-")
	if len(parts) != 4 {
		t.Fatalf("Expected 4 segments, got %d in %q", len(parts), code)
	}
	if parts[0] != "JUMP" {
		t.Errorf("Expected verb segment JUMP, got %q", parts[0])
	}
	if parts[1] != "LOWG" {
		t.Errorf("Expected gravity segment LOWG, got %q", parts[1])
	}
	if len(parts[2]) != 5 {
		t.Fatalf("Expected 5-char world segment, got %q", parts[2])
	}
	if parts[2][:4] != "ICEW" {
		t.Errorf("Expected world segment ICEW, got %q", parts[2][:4])
	}
	if parts[2][4] != '4' {
		t.Errorf("Expected chaos digit 4 for level 44, got %c", parts[2][4])
	}
	if len(parts[3]) != 4 {
		t.Errorf("Expected 4 seed digits, got %q", parts[3])
	}
}

func TestSeedRoundTrip(t *testing.T) {
	seeds := []int64{0, 1, 32, 33, 1000, 12345, SeedSpace - 1}
	for _, seed := range seeds {
		code := Encode(testDNA(), seed)
		decoded := Decode(code)
		if decoded.InternalSeed != seed {
			t.Errorf("Seed %d round-tripped to %d via %q", seed, decoded.InternalSeed, code)
		}
	}
}

func TestSeedAliasing(t *testing.T) {
	// Seeds outside [0, SeedSpace) alias modulo SeedSpace.
	a := Encode(testDNA(), 7)
	b := Encode(testDNA(), 7+SeedSpace)
	if a != b {
		t.Errorf("Expected aliased codes to match: %q vs %q", a, b)
	}
	if got := Decode(Encode(testDNA(), -1)).InternalSeed; got != SeedSpace-1 {
		t.Errorf("Expected negative seed to wrap to %d, got %d", SeedSpace-1, got)
	}
}

func TestChaosQuantization(t *testing.T) {
	d := testDNA()
	for level := 0; level <= 100; level++ {
		d.ChaosLevel = level
		decoded := Decode(Encode(d, 1))
		diff := decoded.ChaosLevel - level
		if diff < 0 {
			diff = -diff
		}
		if diff > 11 {
			t.Errorf("Level %d decoded to %d, outside quantization bound", level, decoded.ChaosLevel)
		}
		// Multiples of 11 up to 99 survive exactly.
		if level%11 == 0 && level <= 99 && decoded.ChaosLevel != level {
			t.Errorf("Level %d should round-trip exactly, got %d", level, decoded.ChaosLevel)
		}
	}
}

func TestDecodeRoundTripFields(t *testing.T) {
	decoded := Decode(Encode(testDNA(), 999))
	if decoded.Verb != dna.VerbJump {
		t.Errorf("Expected verb %q, got %q", dna.VerbJump, decoded.Verb)
	}
	if decoded.Gravity != dna.GravityLow {
		t.Errorf("Expected gravity %q, got %q", dna.GravityLow, decoded.Gravity)
	}
	if decoded.WorldDifference != dna.PhysicsIce {
		t.Errorf("Expected world difference %q, got %q", dna.PhysicsIce, decoded.WorldDifference)
	}
}

func TestEncodeUnknownValuesFallBackToCustom(t *testing.T) {
	d := testDNA()
	d.Verbs = []string{"yodel"}
	d.GravityMode = "sideways"
	d.SpecialPhysics = "molasses"

	code := Encode(d, 5)
	parts := strings.Split(code, "-")
	for i := 0; i < 3; i++ {
		if !strings.HasPrefix(parts[i], CustomCode) {
			t.Errorf("Segment %d should be custom, got %q", i, parts[i])
		}
	}

	decoded := Decode(code)
	if decoded.Verb != CustomValue || decoded.Gravity != CustomValue || decoded.WorldDifference != CustomValue {
		t.Errorf("Expected custom sentinels, got %+v", decoded)
	}
	if decoded.InternalSeed != 5 {
		t.Errorf("Seed should survive custom segments, got %d", decoded.InternalSeed)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"A-B-C",
		"JUMP-LOWG-ICEW4",
		"JUMP-LOWG-ICEW4-2222-EXTRA",
		"????-????-?????-????",
		"JUMP-LOWG-ICEWX-2222", // bad chaos digit
		"JUMP-LOWG-ICEW4-01II", // symbols outside the alphabet
	}
	for _, code := range cases {
		t.Run(code, func(t *testing.T) {
			decoded := Decode(code)
			if decoded.ChaosLevel < 0 || decoded.ChaosLevel > 99 {
				t.Errorf("Chaos level out of range: %d", decoded.ChaosLevel)
			}
			if decoded.InternalSeed < 0 || decoded.InternalSeed >= SeedSpace {
				t.Errorf("Seed out of range: %d", decoded.InternalSeed)
			}
		})
	}

	decoded := Decode("A-B-C")
	if decoded.Verb != Unknown || decoded.Gravity != Unknown || decoded.WorldDifference != Unknown {
		t.Errorf("Expected unknown fields for wrong segment count, got %+v", decoded)
	}
	if decoded.ChaosLevel != 0 || decoded.InternalSeed != 0 {
		t.Errorf("Expected zero fallbacks, got level %d seed %d", decoded.ChaosLevel, decoded.InternalSeed)
	}
}

func TestDecodeIsCaseInsensitive(t *testing.T) {
	code := Encode(testDNA(), 777)
	lower := Decode(strings.ToLower(code))
	upper := Decode(code)
	if lower != upper {
		t.Errorf("Case should not matter: %+v vs %+v", lower, upper)
	}
}

func TestAlphabetProperties(t *testing.T) {
	if len(Alphabet) != 33 {
		t.Fatalf("Expected 33 symbols, got %d", len(Alphabet))
	}
	for _, banned := range "01I" {
		if strings.ContainsRune(Alphabet, banned) {
			t.Errorf("Alphabet must not contain %c", banned)
		}
	}
	seen := map[rune]bool{}
	for _, r := range Alphabet {
		if seen[r] {
			t.Errorf("Duplicate symbol %c", r)
		}
		seen[r] = true
	}
}
