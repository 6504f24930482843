package chaos

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gamesmith/gamesmith-go/internal/rules"
)

// Mutation records one applied mutation. Visual, physics, entity and
// narrative mutations are directives for the rendering/runtime collaborator;
// rule rewrites have already been applied through the interpreter when the
// record is returned.
type Mutation struct {
	Seq      int            `json:"seq"`
	Category Category       `json:"category"`
	Tier     string         `json:"tier"`
	Target   string         `json:"target,omitempty"` // visual filter, physics param, swapped roles, trigger, distortion
	Value    string         `json:"value,omitempty"`  // physics multiplier, rewrite mode
	Rule     *rules.RuleDef `json:"rule,omitempty"`   // rule added by a rewrite, if any
}

// Mutator drives runtime chaos for one session. It holds no rule set of its
// own: every rule change goes through the interpreter's mutation surface,
// and any game-state change is routed as trigger events, never by writing
// fields directly.
type Mutator struct {
	cfg    Config
	interp *rules.Interpreter
	stream *streamGenerator
	logger *zap.Logger

	ticks       int
	activations int
	history     []Mutation
}

// NewMutator creates a mutator for a session. The internal seed is the only
// randomness source; a nil logger disables logging.
func NewMutator(cfg Config, internalSeed int64, interp *rules.Interpreter, logger *zap.Logger) *Mutator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mutator{
		cfg:    cfg,
		interp: interp,
		stream: newStream(internalSeed),
		logger: logger,
	}
}

// Config returns the mutator's level-derived config.
func (m *Mutator) Config() Config { return m.cfg }

// History returns every mutation applied so far, in order.
func (m *Mutator) History() []Mutation {
	out := make([]Mutation, len(m.history))
	copy(out, m.history)
	return out
}

// Tick advances the periodic schedule by one game tick and fires a mutation
// when the tier's interval elapses. Returns nil when nothing fired.
func (m *Mutator) Tick(state *rules.GameState) *Mutation {
	if m.cfg.TickInterval <= 0 {
		return nil
	}
	m.ticks++
	if m.ticks%m.cfg.TickInterval != 0 {
		return nil
	}
	return m.activate(state)
}

// OnMilestone fires a mutation for an in-game milestone event (a chaos
// signal effect, a score threshold). At tier order it is a no-op.
func (m *Mutator) OnMilestone(state *rules.GameState) *Mutation {
	if len(m.cfg.Weights) == 0 {
		return nil
	}
	return m.activate(state)
}

// activate picks a category by weight and applies the mutation. The whole
// activation completes before returning, so the interpreter never observes a
// half-applied rule set.
func (m *Mutator) activate(state *rules.GameState) *Mutation {
	if len(m.cfg.Weights) == 0 {
		return nil
	}
	m.activations++
	mut := Mutation{
		Seq:      m.activations,
		Category: m.pickCategory(),
		Tier:     m.cfg.TierName,
	}

	switch mut.Category {
	case CategoryVisual:
		mut.Target = visualFilters[m.stream.nextIndex(len(visualFilters))]
	case CategoryPhysics:
		mut.Target = physicsParams[m.stream.nextIndex(len(physicsParams))]
		mut.Value = physicsSteps[m.stream.nextIndex(len(physicsSteps))].String()
	case CategoryEntitySwap:
		m.pickEntitySwap(&mut, state)
	case CategoryRuleRewrite:
		m.rewriteRules(&mut)
	case CategoryNarrative:
		mut.Target = narrativeDistortions[m.stream.nextIndex(len(narrativeDistortions))]
	}

	m.history = append(m.history, mut)
	m.logger.Debug("chaos mutation",
		zap.Int("seq", mut.Seq),
		zap.String("category", string(mut.Category)),
		zap.String("tier", mut.Tier),
		zap.String("target", mut.Target),
		zap.String("value", mut.Value),
	)
	return &mut
}

// pickCategory selects a category by weight from the deterministic stream.
func (m *Mutator) pickCategory() Category {
	total := 0.0
	for _, w := range m.cfg.Weights {
		total += w.Weight
	}
	draw := m.stream.nextFloat() * total
	for _, w := range m.cfg.Weights {
		draw -= w.Weight
		if draw < 0 {
			return w.Category
		}
	}
	return m.cfg.Weights[len(m.cfg.Weights)-1].Category
}

// pickEntitySwap chooses two distinct entity roles to exchange. The live
// entity list is read for reporting only; the runtime performs the swap.
func (m *Mutator) pickEntitySwap(mut *Mutation, state *rules.GameState) {
	i := m.stream.nextIndex(len(entityRoles))
	j := m.stream.nextIndex(len(entityRoles) - 1)
	if j >= i {
		j++
	}
	mut.Target = entityRoles[i] + "<->" + entityRoles[j]
	if state != nil {
		for _, e := range state.Entities {
			if e.Role == entityRoles[i] || e.Role == entityRoles[j] {
				mut.Value = "live"
				break
			}
		}
	}
}

// rewriteRules mutates the live rule set through the interpreter. Modes:
// inject adds one chaotic rule; invert flips the arithmetic of one existing
// rule (remove by trigger, re-add the flipped set). Both leave the set fully
// consistent before returning.
func (m *Mutator) rewriteRules(mut *Mutation) {
	active := m.interp.Rules()
	mode := m.stream.nextIndex(2)
	if len(active) == 0 {
		mode = 0
	}

	switch mode {
	case 0:
		mut.Value = "inject"
		injected := chaosRules[m.stream.nextIndex(len(chaosRules))]
		m.interp.AddRules([]rules.RuleDef{injected})
		mut.Rule = &injected
		mut.Target = injected.Trigger
	case 1:
		mut.Value = "invert"
		target := active[m.stream.nextIndex(len(active))].Trigger
		mut.Target = target
		var replacement []rules.RuleDef
		for _, r := range active {
			if r.Trigger == target {
				replacement = append(replacement, invertRule(r))
			}
		}
		m.interp.RemoveRulesByTrigger(target)
		m.interp.AddRules(replacement)
	}
}

// invertRule flips an arithmetic effect's sign; other effect kinds pass
// through unchanged.
func invertRule(r rules.RuleDef) rules.RuleDef {
	eff := rules.ParseEffect(r.Effect)
	if eff.Kind != rules.EffectArith {
		return r
	}
	op := "+"
	if eff.Operator == "+" {
		op = "-"
	}
	r.Effect = eff.Type + op + trimFloat(eff.Value)
	r.Action = "chaos_" + r.Action
	return r
}

func trimFloat(v float64) string {
	return decimal.NewFromFloat(v).String()
}

var visualFilters = []string{
	"palette_shift", "color_invert", "sprite_swap", "scanline_filter", "kaleidoscope",
}

var physicsParams = []string{
	"gravity", "move_speed", "bounce", "friction", "projectile_speed",
}

// physicsSteps are exact decimal multipliers so a recorded mutation replays
// to the identical parameter value on every platform.
var physicsSteps = []decimal.Decimal{
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("0.75"),
	decimal.RequireFromString("1.25"),
	decimal.RequireFromString("1.5"),
	decimal.RequireFromString("2"),
}

var entityRoles = []string{"enemy", "collectible", "platform", "projectile"}

var narrativeDistortions = []string{
	"narrator_doubt", "fourth_wall", "timeline_split", "unreliable_memory", "genre_drift",
}

// chaosRules are the rules a rewrite can inject.
var chaosRules = []rules.RuleDef{
	{Trigger: "player_jump", Action: "chaos_jump_bonus", Effect: "score+3"},
	{Trigger: "player_collect_coin", Action: "chaos_windfall", Effect: "score+5"},
	{Trigger: "enemy_touch_player", Action: "chaos_drain", Effect: "health-5"},
	{Trigger: "player_dodge", Action: "chaos_combo_surge", Effect: "combo+2"},
	{Trigger: "player_reach_goal", Action: "chaos_toll", Effect: "score-10"},
}
