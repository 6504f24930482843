// Package dna defines the GameDNA configuration record that drives game
// generation. A GameDNA value is immutable per generation: the wizard UI
// produces one, the generator consumes it, and nothing mutates it afterwards.
package dna

// Genre identifiers accepted by the generator.
const (
	GenrePlatformer = "platformer"
	GenreRunner     = "runner"
	GenreMaze       = "maze"
	GenreArena      = "arena"
	GenrePuzzle     = "puzzle"
	GenreSandbox    = "sandbox"
)

// Verb capability tags. A game selects 1-3 of these to drive its mechanics.
const (
	VerbJump     = "jump"
	VerbShoot    = "shoot"
	VerbCollect  = "collect"
	VerbDodge    = "dodge"
	VerbBuild    = "build"
	VerbExplore  = "explore"
	VerbPush     = "push"
	VerbActivate = "activate"
	VerbCraft    = "craft"
	VerbDefend   = "defend"
	VerbDash     = "dash"
)

// Gravity modes.
const (
	GravityNormal  = "normal"
	GravityLow     = "low"
	GravityHeavy   = "heavy"
	GravityFlipped = "flipped"
	GravityOrbital = "orbital"
)

// Boundary modes.
const (
	BoundaryWalled    = "walled"
	BoundaryWrap      = "wrap"
	BoundaryEndless   = "endless"
	BoundaryShrinking = "shrinking"
)

// Special physics modes. These double as the "world difference" key encoded
// into the shareable seed code.
const (
	PhysicsNone       = "none"
	PhysicsIce        = "ice"
	PhysicsBouncy     = "bouncy"
	PhysicsSticky     = "sticky"
	PhysicsUnderwater = "underwater"
)

// Difficulty styles.
const (
	DifficultyRelaxed  = "relaxed"
	DifficultyBalanced = "balanced"
	DifficultyHardcore = "hardcore"
)

// Pace settings.
const (
	PaceSlow    = "slow"
	PaceSteady  = "steady"
	PaceFrantic = "frantic"
)

// GameDNA is the full set of player choices from the creation wizard.
type GameDNA struct {
	Genre          string            `json:"genre"`
	VisualStyle    string            `json:"visual_style"`
	Verbs          []string          `json:"verbs"`
	GravityMode    string            `json:"gravity_mode"`
	BoundaryMode   string            `json:"boundary_mode"`
	SpecialPhysics string            `json:"special_physics"`
	Archetype      string            `json:"archetype"`
	Difficulty     string            `json:"difficulty"`
	Pace           string            `json:"pace"`
	SkillLuck      float64           `json:"skill_luck"` // 0 = pure luck, 1 = pure skill
	CustomFields   map[string]string `json:"custom_fields,omitempty"`
	ChaosLevel     int               `json:"chaos_level"`
}

// KnownVerbs lists every recognized verb tag in a stable order.
func KnownVerbs() []string {
	return []string{
		VerbJump, VerbShoot, VerbCollect, VerbDodge, VerbBuild, VerbExplore,
		VerbPush, VerbActivate, VerbCraft, VerbDefend, VerbDash,
	}
}

// IsKnownVerb reports whether v is one of the recognized verb tags.
func IsKnownVerb(v string) bool {
	for _, k := range KnownVerbs() {
		if k == v {
			return true
		}
	}
	return false
}

// LeadVerb returns the first selected verb, or the empty string when no verb
// was chosen. The lead verb is the one the seed code encodes.
func (d *GameDNA) LeadVerb() string {
	if len(d.Verbs) == 0 {
		return ""
	}
	return d.Verbs[0]
}

// Normalize clamps out-of-range fields in place rather than rejecting them.
// Chaos level is clamped to [0,100], the skill/luck ratio to [0,1], and the
// verb list is truncated to the first three entries. An empty verb list is
// left empty; the composer still emits the baseline bundle for it.
func (d *GameDNA) Normalize() {
	d.ChaosLevel = ClampChaosLevel(d.ChaosLevel)
	if d.SkillLuck < 0 {
		d.SkillLuck = 0
	} else if d.SkillLuck > 1 {
		d.SkillLuck = 1
	}
	if len(d.Verbs) > 3 {
		d.Verbs = d.Verbs[:3]
	}
}

// ClampChaosLevel forces a chaos level into the valid [0,100] range.
func ClampChaosLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
