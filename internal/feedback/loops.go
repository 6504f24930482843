// Package feedback emits descriptive positive/negative feedback-loop
// metadata for a verb selection. The loops are design-time documentation
// consumed by tuning tools; nothing here executes against game state.
package feedback

import "github.com/gamesmith/gamesmith-go/internal/dna"

// Loop types.
const (
	Positive = "positive"
	Negative = "negative"
)

// Loop describes one reinforcing or dampening gameplay dynamic.
type Loop struct {
	Type        string   `json:"type"` // Positive or Negative
	Mechanic    string   `json:"mechanic"`
	Description string   `json:"description"`
	Variables   []string `json:"variables"`
}

// universalPositive is the combo-multiplier loop every game gets, unless
// hardcore difficulty suppresses positive reinforcement.
var universalPositive = Loop{
	Type:        Positive,
	Mechanic:    "universal",
	Description: "Sustained success builds a combo multiplier that amplifies every score gain.",
	Variables:   []string{"combo", "score"},
}

// universalNegative is the difficulty-escalation loop every game gets.
var universalNegative = Loop{
	Type:        Negative,
	Mechanic:    "universal",
	Description: "Rising score escalates spawn pressure, pulling performance back toward the mean.",
	Variables:   []string{"score", "spawn_rate"},
}

var positiveByVerb = map[string]Loop{
	dna.VerbJump:     {Type: Positive, Mechanic: dna.VerbJump, Description: "Chained jumps extend air time, opening routes to denser reward clusters.", Variables: []string{"combo", "height"}},
	dna.VerbShoot:    {Type: Positive, Mechanic: dna.VerbShoot, Description: "Kills drop ammo, funding longer uninterrupted firing streaks.", Variables: []string{"ammo", "kills"}},
	dna.VerbCollect:  {Type: Positive, Mechanic: dna.VerbCollect, Description: "Collected pickups raise movement speed, bringing the next pickup closer.", Variables: []string{"pickups", "speed"}},
	dna.VerbDodge:    {Type: Positive, Mechanic: dna.VerbDodge, Description: "Clean dodges charge a slow-motion meter that makes further dodges easier.", Variables: []string{"dodge_streak", "time_scale"}},
	dna.VerbBuild:    {Type: Positive, Mechanic: dna.VerbBuild, Description: "Standing structures generate resources that fund bigger structures.", Variables: []string{"structures", "resources"}},
	dna.VerbExplore:  {Type: Positive, Mechanic: dna.VerbExplore, Description: "Discovered areas reveal map hints pointing at further secrets.", Variables: []string{"areas", "hints"}},
	dna.VerbPush:     {Type: Positive, Mechanic: dna.VerbPush, Description: "Placed blocks form stairways that reach richer block caches.", Variables: []string{"blocks", "reach"}},
	dna.VerbActivate: {Type: Positive, Mechanic: dna.VerbActivate, Description: "Active switches power nearby switches, cascading activation chains.", Variables: []string{"switches", "chain_length"}},
	dna.VerbCraft:    {Type: Positive, Mechanic: dna.VerbCraft, Description: "Crafted tools speed up material gathering for the next recipe.", Variables: []string{"tools", "materials"}},
	dna.VerbDefend:   {Type: Positive, Mechanic: dna.VerbDefend, Description: "Survived waves bank upgrade points that harden the next defense.", Variables: []string{"waves", "upgrades"}},
	dna.VerbDash:     {Type: Positive, Mechanic: dna.VerbDash, Description: "Dash kills refund dash charge, sustaining aggressive movement.", Variables: []string{"dash_charge", "kills"}},
}

var negativeByVerb = map[string]Loop{
	dna.VerbJump:     {Type: Negative, Mechanic: dna.VerbJump, Description: "Missed jumps cost height, forcing slower ground routes.", Variables: []string{"misses", "height"}},
	dna.VerbShoot:    {Type: Negative, Mechanic: dna.VerbShoot, Description: "Sustained fire overheats the weapon, throttling damage output.", Variables: []string{"heat", "damage"}},
	dna.VerbCollect:  {Type: Negative, Mechanic: dna.VerbCollect, Description: "Hoarded pickups attract thieves that drain the stockpile.", Variables: []string{"pickups", "thieves"}},
	dna.VerbDodge:    {Type: Negative, Mechanic: dna.VerbDodge, Description: "Repeated dodges drain stamina, shrinking the dodge window.", Variables: []string{"stamina", "window"}},
	dna.VerbBuild:    {Type: Negative, Mechanic: dna.VerbBuild, Description: "Sprawling structures raise upkeep, starving new construction.", Variables: []string{"structures", "upkeep"}},
	dna.VerbExplore:  {Type: Negative, Mechanic: dna.VerbExplore, Description: "Deep exploration stretches supply lines, raising the cost of retreat.", Variables: []string{"depth", "supplies"}},
	dna.VerbPush:     {Type: Negative, Mechanic: dna.VerbPush, Description: "Misplaced blocks wall off routes, lengthening every push.", Variables: []string{"misplacements", "route_length"}},
	dna.VerbActivate: {Type: Negative, Mechanic: dna.VerbActivate, Description: "Each active switch raises the grid load, slowing later activations.", Variables: []string{"switches", "latency"}},
	dna.VerbCraft:    {Type: Negative, Mechanic: dna.VerbCraft, Description: "Complex recipes consume rarer inputs, stalling the crafting chain.", Variables: []string{"rarity", "stalls"}},
	dna.VerbDefend:   {Type: Negative, Mechanic: dna.VerbDefend, Description: "Fortified positions draw bigger waves at the weakest wall.", Variables: []string{"fortification", "wave_size"}},
	dna.VerbDash:     {Type: Negative, Mechanic: dna.VerbDash, Description: "Chained dashes overshoot into hazards, trading speed for health.", Variables: []string{"chain_length", "hazard_hits"}},
}

// PositiveLoops returns the positive feedback loops for a verb selection.
// Difficulty scales selection, not content: hardcore drops the universal
// combo loop because positive reinforcement is suppressed there. Verbs
// without a defined loop contribute nothing.
func PositiveLoops(verbs []string, difficulty string) []Loop {
	var out []Loop
	if difficulty != dna.DifficultyHardcore {
		out = append(out, universalPositive)
	}
	for _, v := range verbs {
		if loop, ok := positiveByVerb[v]; ok {
			out = append(out, loop)
		}
	}
	return out
}

// NegativeLoops returns the negative feedback loops for a verb selection.
// Relaxed difficulty keeps only the universal escalation loop.
func NegativeLoops(verbs []string, difficulty string) []Loop {
	out := []Loop{universalNegative}
	if difficulty == dna.DifficultyRelaxed {
		return out
	}
	for _, v := range verbs {
		if loop, ok := negativeByVerb[v]; ok {
			out = append(out, loop)
		}
	}
	return out
}
