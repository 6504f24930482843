package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesmith/gamesmith-go/internal/dna"
)

func mechanics(loops []Loop) []string {
	out := make([]string, len(loops))
	for i, l := range loops {
		out[i] = l.Mechanic
	}
	return out
}

func TestPositiveLoopsBalanced(t *testing.T) {
	loops := PositiveLoops([]string{dna.VerbJump}, dna.DifficultyBalanced)
	assert.Equal(t, []string{"universal", dna.VerbJump}, mechanics(loops))
	for _, l := range loops {
		assert.Equal(t, Positive, l.Type)
	}
}

func TestHardcoreDropsUniversalPositive(t *testing.T) {
	loops := PositiveLoops([]string{dna.VerbJump}, dna.DifficultyHardcore)
	assert.Equal(t, []string{dna.VerbJump}, mechanics(loops),
		"hardcore keeps the verb loop but drops the universal combo loop")
}

func TestRelaxedKeepsOnlyUniversalNegative(t *testing.T) {
	loops := NegativeLoops([]string{dna.VerbJump, dna.VerbShoot}, dna.DifficultyRelaxed)
	require.Len(t, loops, 1)
	assert.Equal(t, "universal", loops[0].Mechanic)
	assert.Equal(t, Negative, loops[0].Type)
}

func TestNegativeLoopsBalanced(t *testing.T) {
	loops := NegativeLoops([]string{dna.VerbDodge, dna.VerbBuild}, dna.DifficultyBalanced)
	assert.Equal(t, []string{"universal", dna.VerbDodge, dna.VerbBuild}, mechanics(loops))
}

func TestUnknownVerbContributesNoLoop(t *testing.T) {
	pos := PositiveLoops([]string{"yodel"}, dna.DifficultyBalanced)
	assert.Equal(t, []string{"universal"}, mechanics(pos))
}

func TestEveryKnownVerbHasBothLoops(t *testing.T) {
	for _, v := range dna.KnownVerbs() {
		pos := PositiveLoops([]string{v}, dna.DifficultyBalanced)
		neg := NegativeLoops([]string{v}, dna.DifficultyBalanced)
		assert.Len(t, pos, 2, "verb %q missing positive loop", v)
		assert.Len(t, neg, 2, "verb %q missing negative loop", v)
	}
}
