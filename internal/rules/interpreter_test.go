package rules

import "testing"

func TestProcessEventAppliesArithmetic(t *testing.T) {
	in := NewInterpreter([]RuleDef{
		{Trigger: "player_collect_coin", Action: "add_score", Effect: "score+1"},
	})
	state := NewGameState()
	state.Score = 5

	effects := in.ProcessEvent("player_collect_coin", state)

	if state.Score != 6 {
		t.Errorf("Expected score 6, got %v", state.Score)
	}
	if len(effects) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(effects))
	}
	eff := effects[0]
	if eff.Type != "score" || eff.Operator != "+" || eff.Value != 1 {
		t.Errorf("Unexpected effect: %+v", eff)
	}
}

func TestProcessEventOrderAndConditions(t *testing.T) {
	in := NewInterpreter([]RuleDef{
		{Trigger: "enemy_hit", Condition: "health>0", Action: "damage", Effect: "health-10"},
		{Trigger: "enemy_hit", Condition: "flag:shielded", Action: "shrug", Effect: "score+5"},
		{Trigger: "enemy_hit", Action: "combo_reset", Effect: "combo-1"},
	})
	state := NewGameState()
	state.Health = 30
	state.Combo = 2

	effects := in.ProcessEvent("enemy_hit", state)

	// Rule 2's condition fails, so only rules 1 and 3 apply, in order.
	if len(effects) != 2 {
		t.Fatalf("Expected 2 effects, got %d", len(effects))
	}
	if effects[0].Type != "health" || effects[1].Type != "combo" {
		t.Errorf("Effects out of registration order: %+v", effects)
	}
	if state.Health != 20 || state.Combo != 1 || state.Score != 0 {
		t.Errorf("Unexpected state: %+v", state)
	}
}

func TestProcessEventUnknownTriggerIsNoOp(t *testing.T) {
	in := NewInterpreter([]RuleDef{
		{Trigger: "player_jump", Action: "noop", Effect: "score+1"},
	})
	state := NewGameState()

	if effects := in.ProcessEvent("never_registered", state); effects != nil {
		t.Errorf("Expected nil effects, got %+v", effects)
	}
	if state.Score != 0 {
		t.Errorf("State should be untouched, got score %v", state.Score)
	}
}

func TestSignalEffectsReportedNotApplied(t *testing.T) {
	in := NewInterpreter([]RuleDef{
		{Trigger: "score_milestone", Action: "invoke_chaos", Effect: "chaos:trigger"},
		{Trigger: "score_milestone", Action: "spawn_reward", Effect: "spawn:powerup"},
	})
	state := NewGameState()
	before := *state

	effects := in.ProcessEvent("score_milestone", state)

	if len(effects) != 2 {
		t.Fatalf("Expected 2 effects, got %d", len(effects))
	}
	if effects[0].Kind != EffectSignal || effects[0].Type != "chaos" || effects[0].Payload != "" {
		t.Errorf("Unexpected chaos signal: %+v", effects[0])
	}
	if effects[1].Kind != EffectSignal || effects[1].Type != "spawn" || effects[1].Payload != "powerup" {
		t.Errorf("Unexpected spawn signal: %+v", effects[1])
	}
	// Signals are for external systems; the interpreter must not touch state.
	if state.Score != before.Score || state.Health != before.Health {
		t.Errorf("Signals must not mutate state: %+v", state)
	}
}

func TestFlagEffectSetsFlag(t *testing.T) {
	in := NewInterpreter([]RuleDef{
		{Trigger: "key_pickup", Action: "unlock", Effect: "door=unlocked"},
	})
	state := NewGameState()

	in.ProcessEvent("key_pickup", state)

	if !state.Flags["unlocked"] {
		t.Errorf("Expected flag 'unlocked' set, flags: %+v", state.Flags)
	}
}

func TestCustomEffectPassedThrough(t *testing.T) {
	in := NewInterpreter([]RuleDef{
		{Trigger: "weird", Action: "custom", Effect: "reverse all controls"},
	})
	state := NewGameState()

	effects := in.ProcessEvent("weird", state)

	if len(effects) != 1 || effects[0].Kind != EffectCustom {
		t.Fatalf("Expected one custom effect, got %+v", effects)
	}
	if effects[0].Payload != "reverse all controls" {
		t.Errorf("Custom payload lost: %+v", effects[0])
	}
}

func TestMutationSurface(t *testing.T) {
	in := NewInterpreter([]RuleDef{
		{Trigger: "a", Action: "one", Effect: "score+1"},
		{Trigger: "b", Action: "two", Effect: "score+2"},
	})

	in.AddRules([]RuleDef{{Trigger: "a", Action: "three", Effect: "score+3"}})
	if len(in.Rules()) != 3 {
		t.Fatalf("Expected 3 rules after AddRules, got %d", len(in.Rules()))
	}

	if removed := in.RemoveRulesByTrigger("a"); removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	if len(in.Rules()) != 1 || in.Rules()[0].Trigger != "b" {
		t.Errorf("Unexpected rules after removal: %+v", in.Rules())
	}

	in.SetRules(nil)
	if len(in.Rules()) != 0 {
		t.Errorf("SetRules(nil) should clear the set, got %+v", in.Rules())
	}
}

func TestSetRulesIsolatesCallerSlice(t *testing.T) {
	src := []RuleDef{{Trigger: "a", Action: "one", Effect: "score+1"}}
	in := NewInterpreter(src)

	// Mutating the caller's slice must not alias the active set.
	src[0].Effect = "score+100"
	state := NewGameState()
	in.ProcessEvent("a", state)
	if state.Score != 1 {
		t.Errorf("Active set aliased caller slice: score %v", state.Score)
	}
}

func TestLint(t *testing.T) {
	diags := Lint([]RuleDef{
		{Trigger: "a", Condition: "health>0", Action: "ok", Effect: "score+1"},
		{Trigger: "b", Condition: "helth >", Action: "typo", Effect: "score+1"},
		{Trigger: "c", Action: "opaque", Effect: "do the thing"},
	})

	if len(diags) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d: %+v", len(diags), diags)
	}
	if diags[0].Field != "condition" || diags[0].RuleIndex != 1 {
		t.Errorf("Unexpected first diagnostic: %+v", diags[0])
	}
	if diags[1].Field != "effect" || diags[1].RuleIndex != 2 {
		t.Errorf("Unexpected second diagnostic: %+v", diags[1])
	}
}
