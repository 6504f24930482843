package rules

import "fmt"

// Interpreter owns the active rule set. All rule-set changes go through
// SetRules, AddRules and RemoveRulesByTrigger; no other component holds a
// mutable reference, so a replacement is atomic from the caller's point of
// view: ProcessEvent always sees either the old set or the new one.
type Interpreter struct {
	ruleSet []RuleDef
}

// NewInterpreter creates an interpreter with an initial rule set.
func NewInterpreter(ruleSet []RuleDef) *Interpreter {
	in := &Interpreter{}
	in.SetRules(ruleSet)
	return in
}

// SetRules replaces the entire active rule set.
func (in *Interpreter) SetRules(ruleSet []RuleDef) {
	in.ruleSet = make([]RuleDef, len(ruleSet))
	copy(in.ruleSet, ruleSet)
}

// AddRules appends rules, preserving registration order.
func (in *Interpreter) AddRules(extra []RuleDef) {
	in.ruleSet = append(in.ruleSet, extra...)
}

// RemoveRulesByTrigger drops every rule whose trigger matches.
func (in *Interpreter) RemoveRulesByTrigger(trigger string) int {
	kept := in.ruleSet[:0]
	removed := 0
	for _, r := range in.ruleSet {
		if r.Trigger == trigger {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	in.ruleSet = kept
	return removed
}

// Rules returns a copy of the active rule set.
func (in *Interpreter) Rules() []RuleDef {
	out := make([]RuleDef, len(in.ruleSet))
	copy(out, in.ruleSet)
	return out
}

// ProcessEvent dispatches a trigger event: every rule registered for the
// trigger is evaluated in registration order, rules with false conditions
// are skipped, and each surviving effect is applied to state. The ordered
// list of parsed effects is returned, including signal and custom effects
// the interpreter does not apply itself; callers route those onward. An
// event matching no rule is a no-op.
func (in *Interpreter) ProcessEvent(trigger string, state *GameState) []ParsedEffect {
	var applied []ParsedEffect
	for _, rule := range in.ruleSet {
		if rule.Trigger != trigger {
			continue
		}
		if !EvalCondition(rule.Condition, state) {
			continue
		}
		eff := ParseEffect(rule.Effect)
		in.apply(eff, state)
		applied = append(applied, eff)
	}
	return applied
}

// apply mutates state for the effect kinds the interpreter owns. Signals
// (spawn, chaos, ...) and custom effects are left untouched for external
// consumers, and arithmetic on fields the state record does not own is
// reported but not applied.
func (in *Interpreter) apply(eff ParsedEffect, state *GameState) {
	switch eff.Kind {
	case EffectArith:
		delta := eff.Value
		if eff.Operator == "-" {
			delta = -delta
		}
		state.setNumeric(eff.Type, state.Numeric(eff.Type)+delta)
	case EffectFlag:
		state.SetFlag(eff.Payload)
	}
}

// ApplyEffect parses and applies a single effect expression outside of
// event dispatch. External collaborators that need to adjust state (the
// chaos layer, custom-effect handlers) go through here so the interpreter
// stays the only component that writes GameState.
func (in *Interpreter) ApplyEffect(expr string, state *GameState) ParsedEffect {
	eff := ParseEffect(expr)
	in.apply(eff, state)
	return eff
}

// Diagnostic describes one authoring problem found by Lint.
type Diagnostic struct {
	RuleIndex int    `json:"rule_index"`
	Trigger   string `json:"trigger"`
	Field     string `json:"field"` // "effect" or "condition"
	Text      string `json:"text"`
	Message   string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("rule %d (%s): %s %q: %s", d.RuleIndex, d.Trigger, d.Field, d.Text, d.Message)
}

// Lint checks a rule set for expressions that only parse via the permissive
// fallbacks. At runtime a custom effect or an always-true condition is
// legitimate, but during authoring it is usually a typo, so content tools
// run Lint and surface the diagnostics. Runtime evaluation stays permissive
// regardless.
func Lint(ruleSet []RuleDef) []Diagnostic {
	var diags []Diagnostic
	for i, r := range ruleSet {
		if eff := ParseEffect(r.Effect); eff.Kind == EffectCustom {
			diags = append(diags, Diagnostic{
				RuleIndex: i, Trigger: r.Trigger, Field: "effect", Text: r.Effect,
				Message: "matches no effect production; will be passed through as a custom signal",
			})
		}
		if r.Condition != "" {
			if cond := ParseCondition(r.Condition); cond.Kind == CondAlways {
				diags = append(diags, Diagnostic{
					RuleIndex: i, Trigger: r.Trigger, Field: "condition", Text: r.Condition,
					Message: "matches no condition production; will always evaluate true",
				})
			}
		}
	}
	return diags
}
