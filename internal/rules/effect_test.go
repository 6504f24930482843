package rules

import "testing"

func TestParseEffect(t *testing.T) {
	cases := []struct {
		expr string
		want ParsedEffect
	}{
		{"score+1", ParsedEffect{Kind: EffectArith, Type: "score", Operator: "+", Value: 1}},
		{"health-10", ParsedEffect{Kind: EffectArith, Type: "health", Operator: "-", Value: 10}},
		{"combo+2.5", ParsedEffect{Kind: EffectArith, Type: "combo", Operator: "+", Value: 2.5}},
		{"chaos:trigger", ParsedEffect{Kind: EffectSignal, Type: "chaos", Operator: ":", Payload: ""}},
		{"spawn:enemy", ParsedEffect{Kind: EffectSignal, Type: "spawn", Operator: ":", Payload: "enemy"}},
		{"door=unlocked", ParsedEffect{Kind: EffectFlag, Type: "flag", Operator: "=", Payload: "unlocked"}},
		{"level_key=found", ParsedEffect{Kind: EffectFlag, Type: "flag", Operator: "=", Payload: "found"}},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got := ParseEffect(tc.expr)
			if got.Kind != tc.want.Kind {
				t.Errorf("Expected kind %v, got %v", tc.want.Kind, got.Kind)
			}
			if got.Type != tc.want.Type {
				t.Errorf("Expected type %q, got %q", tc.want.Type, got.Type)
			}
			if got.Operator != tc.want.Operator {
				t.Errorf("Expected operator %q, got %q", tc.want.Operator, got.Operator)
			}
			if got.Value != tc.want.Value {
				t.Errorf("Expected value %v, got %v", tc.want.Value, got.Value)
			}
			if got.Payload != tc.want.Payload {
				t.Errorf("Expected payload %q, got %q", tc.want.Payload, got.Payload)
			}
			if got.Raw != tc.expr {
				t.Errorf("Raw should preserve input, got %q", got.Raw)
			}
		})
	}
}

func TestParseEffectFallsBackToCustom(t *testing.T) {
	cases := []string{
		"",
		"score",
		"score+",
		"score+abc",
		"+5",
		"reverse all controls",
		"spawn:",
		"spawn:two words",
		"=flagname",
	}
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			got := ParseEffect(expr)
			if got.Kind != EffectCustom {
				t.Errorf("Expected custom fallback for %q, got kind %v", expr, got.Kind)
			}
			if got.Payload != expr {
				t.Errorf("Custom payload should carry the literal text, got %q", got.Payload)
			}
		})
	}
}

func TestParseEffectNeverPanics(t *testing.T) {
	// Hostile inputs must degrade, never throw.
	inputs := []string{"\x00", "a+b+c", "::::", "score+1e309", "score+-1", "🎮+1"}
	for _, expr := range inputs {
		got := ParseEffect(expr)
		if got.Raw != expr {
			t.Errorf("Raw mismatch for %q", expr)
		}
	}
}
