// Package rules implements the reactive rule engine: a tiny effect/condition
// language, the live game state record, and trigger-event dispatch over the
// active rule set.
package rules

// RuleDef is one piece of reactive game logic: when Trigger fires and
// Condition holds, Effect is applied. Action is a human-readable label used
// for dedupe and tooling; it carries no runtime semantics.
type RuleDef struct {
	Trigger   string `json:"trigger"`
	Condition string `json:"condition,omitempty"`
	Action    string `json:"action"`
	Effect    string `json:"effect"`
}

// Key identifies a rule for dedupe purposes: exact equality of the
// (trigger, action, effect) triple.
func (r RuleDef) Key() string {
	return r.Trigger + "\x00" + r.Action + "\x00" + r.Effect
}

// Entity is one live object in the game world. The engine only tracks
// identity and role; rendering and physics live elsewhere.
type Entity struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Role string `json:"role,omitempty"`
}

// GameState is the live mutable record rules read and write. Only the
// interpreter's effect application mutates it; every other component treats
// it as read-only.
type GameState struct {
	Score        float64         `json:"score"`
	Health       float64         `json:"health"`
	Combo        float64         `json:"combo"`
	Level        float64         `json:"level"`
	Elapsed      float64         `json:"elapsed"`
	Entities     []Entity        `json:"entities,omitempty"`
	Flags        map[string]bool `json:"flags,omitempty"`
	Capabilities []string        `json:"capabilities,omitempty"`
}

// NewGameState returns a fresh state with sane starting values.
func NewGameState() *GameState {
	return &GameState{
		Health: 100,
		Level:  1,
		Flags:  make(map[string]bool),
	}
}

// Numeric returns the named numeric field, or 0 when the name is unknown.
// Conditions compare against these; an absent field never errors.
func (s *GameState) Numeric(name string) float64 {
	switch name {
	case "score":
		return s.Score
	case "health":
		return s.Health
	case "combo":
		return s.Combo
	case "level":
		return s.Level
	case "time", "elapsed":
		return s.Elapsed
	default:
		return 0
	}
}

// setNumeric writes a named numeric field. Returns false for names the
// interpreter does not own; those effects are reported but not applied.
func (s *GameState) setNumeric(name string, v float64) bool {
	switch name {
	case "score":
		s.Score = v
	case "health":
		s.Health = v
	case "combo":
		s.Combo = v
	case "level":
		s.Level = v
	default:
		return false
	}
	return true
}

// SetFlag records a named boolean flag.
func (s *GameState) SetFlag(name string) {
	if s.Flags == nil {
		s.Flags = make(map[string]bool)
	}
	s.Flags[name] = true
}

// HasCapability reports whether name is in the capability list provided by
// the surrounding runtime.
func (s *GameState) HasCapability(name string) bool {
	for _, c := range s.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}
