package chaos

import "github.com/gamesmith/gamesmith-go/internal/dna"

// Tier is one of the five chaos bands a 0-100 level maps into.
type Tier int

const (
	TierOrder    Tier = iota // level 0: nothing mutates
	TierMild                 // (0,25]
	TierEmergent             // (25,50]
	TierWild                 // (50,75]
	TierSurreal              // (75,100]
)

func (t Tier) String() string {
	switch t {
	case TierOrder:
		return "order"
	case TierMild:
		return "mild"
	case TierEmergent:
		return "emergent"
	case TierWild:
		return "wild"
	default:
		return "surreal"
	}
}

// TierForLevel maps a chaos level onto its tier. Out-of-range levels are
// clamped first.
func TierForLevel(level int) Tier {
	level = dna.ClampChaosLevel(level)
	switch {
	case level == 0:
		return TierOrder
	case level <= 25:
		return TierMild
	case level <= 50:
		return TierEmergent
	case level <= 75:
		return TierWild
	default:
		return TierSurreal
	}
}

// Category is one kind of runtime mutation.
type Category string

const (
	CategoryVisual      Category = "visual"
	CategoryPhysics     Category = "physics"
	CategoryEntitySwap  Category = "entity_swap"
	CategoryRuleRewrite Category = "rule_rewrite"
	CategoryNarrative   Category = "narrative"
)

// CategoryWeight pairs a category with its selection weight. Weights live in
// an ordered slice, not a map, so selection order is deterministic.
type CategoryWeight struct {
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
}

// Config is the level-derived mutation behavior bundle. It is a pure
// function of the level: ConfigForLevel(n) always returns an equivalent
// value, which the determinism contract depends on.
type Config struct {
	Level        int              `json:"level"`
	Tier         Tier             `json:"tier"`
	TierName     string           `json:"tier_name"`
	TickInterval int              `json:"tick_interval"` // ticks between periodic activations; 0 = never
	Weights      []CategoryWeight `json:"weights"`
}

// ConfigForLevel builds the mutation config for a chaos level. Each tier
// keeps every category the tier below it had and adds new ones, so higher
// levels strictly dominate lower ones in breadth; intervals shrink as the
// tier rises, so they dominate in frequency too.
func ConfigForLevel(level int) Config {
	level = dna.ClampChaosLevel(level)
	tier := TierForLevel(level)
	cfg := Config{Level: level, Tier: tier, TierName: tier.String()}

	switch tier {
	case TierOrder:
		// No mutations at level 0.
	case TierMild:
		cfg.TickInterval = 12
		cfg.Weights = []CategoryWeight{
			{CategoryVisual, 1.0},
		}
	case TierEmergent:
		cfg.TickInterval = 8
		cfg.Weights = []CategoryWeight{
			{CategoryVisual, 0.5},
			{CategoryPhysics, 0.3},
			{CategoryEntitySwap, 0.2},
		}
	case TierWild:
		cfg.TickInterval = 5
		cfg.Weights = []CategoryWeight{
			{CategoryVisual, 0.3},
			{CategoryPhysics, 0.25},
			{CategoryEntitySwap, 0.25},
			{CategoryRuleRewrite, 0.2},
		}
	case TierSurreal:
		cfg.TickInterval = 3
		cfg.Weights = []CategoryWeight{
			{CategoryVisual, 0.2},
			{CategoryPhysics, 0.2},
			{CategoryEntitySwap, 0.2},
			{CategoryRuleRewrite, 0.25},
			{CategoryNarrative, 0.15},
		}
	}
	return cfg
}

// Categories lists the categories available at this config's tier, in
// weight-table order.
func (c Config) Categories() []Category {
	out := make([]Category, len(c.Weights))
	for i, w := range c.Weights {
		out[i] = w.Category
	}
	return out
}
