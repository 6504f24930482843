// Package session runs live play sessions: each session owns one rule
// interpreter, one chaos mutator and one game state, and processes trigger
// events from the rendering runtime synchronously. Rule-set mutation is
// atomic with respect to event processing: a chaos activation fully applies
// before the next event sees the rule set.
package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamesmith/gamesmith-go/internal/chaos"
	"github.com/gamesmith/gamesmith-go/internal/generate"
	"github.com/gamesmith/gamesmith-go/internal/rules"
	"github.com/gamesmith/gamesmith-go/internal/scripting"
)

// scoreMilestone is the score interval that counts as a chaos milestone.
const scoreMilestone = 100

// EventResult is what one processed trigger event produced.
type EventResult struct {
	Trigger       string               `json:"trigger"`
	Effects       []rules.ParsedEffect `json:"effects"`
	Spawns        []string             `json:"spawns,omitempty"`
	Mutations     []chaos.Mutation     `json:"mutations,omitempty"`
	ScriptEffects []rules.ParsedEffect `json:"script_effects,omitempty"`
	State         rules.GameState      `json:"state"`
}

// Snapshot is the per-tick view the rendering runtime consumes.
type Snapshot struct {
	SessionID string          `json:"session_id"`
	SeedCode  string          `json:"seed_code"`
	ChaosTier string          `json:"chaos_tier"`
	State     rules.GameState `json:"state"`
	Rules     []rules.RuleDef `json:"rules"`
}

// Session is one live playthrough of a generated game.
type Session struct {
	ID   string
	Game *generate.Game

	mu            sync.Mutex
	interp        *rules.Interpreter
	mutator       *chaos.Mutator
	sandbox       *scripting.Sandbox
	state         *rules.GameState
	lastMilestone float64
	logger        *zap.Logger
}

// New starts a session for a generated game. A nil logger disables logging.
func New(game *generate.Game, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:     uuid.NewString(),
		Game:   game,
		logger: logger,
	}
	s.rebuild()
	return s
}

// rebuild constructs the interpreter, mutator and state from the game.
// Callers hold no lock on first construction; Reset locks around it.
func (s *Session) rebuild() {
	s.interp = rules.NewInterpreter(s.Game.Rules)
	s.mutator = chaos.NewMutator(s.Game.Chaos, s.Game.InternalSeed, s.interp, s.logger)
	s.state = rules.NewGameState()
	s.state.Capabilities = s.Game.DNA.Verbs
	s.lastMilestone = 0
}

// LoadScript attaches an author script whose handlers receive this
// session's custom effects.
func (s *Session) LoadScript(source string) error {
	sandbox := scripting.NewSandbox()
	if err := sandbox.Load(source); err != nil {
		return err
	}
	s.mu.Lock()
	s.sandbox = sandbox
	s.mu.Unlock()
	return nil
}

// HandleEvent processes one trigger event from the runtime. It dispatches
// through the interpreter, routes spawn signals back to the caller, routes
// chaos signals and score milestones into the mutator, and hands custom
// effects to the author script. The call completes before returning, so the
// caller always observes a consistent state and rule set.
func (s *Session) HandleEvent(trigger string) EventResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	effects := s.interp.ProcessEvent(trigger, s.state)
	result := EventResult{Trigger: trigger, Effects: effects}

	for _, eff := range effects {
		switch {
		case eff.Kind == rules.EffectSignal && eff.Type == "spawn":
			result.Spawns = append(result.Spawns, eff.Payload)
		case eff.Kind == rules.EffectSignal && eff.Type == "chaos":
			if mut := s.mutator.OnMilestone(s.state); mut != nil {
				result.Mutations = append(result.Mutations, *mut)
			}
		case eff.Kind == rules.EffectCustom && s.sandbox != nil:
			result.ScriptEffects = append(result.ScriptEffects, s.runScript(eff)...)
		}
	}

	// Crossing a score milestone is itself a chaos trigger.
	for s.state.Score >= s.lastMilestone+scoreMilestone {
		s.lastMilestone += scoreMilestone
		if mut := s.mutator.OnMilestone(s.state); mut != nil {
			result.Mutations = append(result.Mutations, *mut)
		}
	}

	result.State = *s.state
	return result
}

// runScript routes one custom effect through the author sandbox; returned
// expressions are applied via the interpreter so scripts never write state.
func (s *Session) runScript(eff rules.ParsedEffect) []rules.ParsedEffect {
	exprs, err := s.sandbox.HandleCustom(eff, s.state)
	if err != nil {
		s.logger.Warn("custom effect handler failed",
			zap.String("payload", eff.Payload), zap.Error(err))
		return nil
	}
	var applied []rules.ParsedEffect
	for _, expr := range exprs {
		applied = append(applied, s.interp.ApplyEffect(expr, s.state))
	}
	return applied
}

// Tick advances game time by one tick and runs the periodic chaos schedule.
func (s *Session) Tick(dt float64) *chaos.Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Elapsed += dt
	return s.mutator.Tick(s.state)
}

// Snapshot returns the current view for the rendering runtime.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SessionID: s.ID,
		SeedCode:  s.Game.SeedCode,
		ChaosTier: s.Game.Chaos.TierName,
		State:     *s.state,
		Rules:     s.interp.Rules(),
	}
}

// MutationHistory returns every chaos mutation applied so far.
func (s *Session) MutationHistory() []chaos.Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutator.History()
}

// Reset discards the session wholesale and reconstructs it from the seed
// code. There is no partial teardown: rules, chaos schedule and state all
// restart from generation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Game = generate.FromSeedCode(s.Game.SeedCode)
	s.rebuild()
}
