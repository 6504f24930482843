package rules

import (
	"strings"
)

// CondKind tags the typed result of parsing a condition expression.
type CondKind int

const (
	// CondAlways is the vacuous condition: empty or unrecognized text.
	CondAlways CondKind = iota
	// CondFlag tests a boolean flag: "flag:door_open".
	CondFlag
	// CondHas tests the capability list: "has:double_jump".
	CondHas
	// CondCompare compares a numeric field: "health>0", "score>=100".
	CondCompare
)

// ParsedCondition is the typed form of one condition expression.
type ParsedCondition struct {
	Kind CondKind
	Name string  // flag name, capability name, or numeric field
	Op   string  // comparison operator for CondCompare
	Val  float64 // comparison operand
	Raw  string
}

// compareOps in scan order; two-character operators first so ">=" is not
// misread as ">".
var compareOps = []string{">=", "<=", "==", "!=", ">", "<"}

// ParseCondition tokenizes one condition expression. Empty or unrecognized
// text parses to CondAlways, which evaluates true: a rule with a condition
// the engine cannot read still fires. Recognized forms:
//
//	flag:<name>     boolean flag is set
//	has:<name>      capability list contains <name>
//	<name><op><n>   numeric comparison, op in > >= < <= == !=
func ParseCondition(expr string) ParsedCondition {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ParsedCondition{Kind: CondAlways, Raw: expr}
	}
	if name, ok := strings.CutPrefix(expr, "flag:"); ok && isWord(name) {
		return ParsedCondition{Kind: CondFlag, Name: name, Raw: expr}
	}
	if name, ok := strings.CutPrefix(expr, "has:"); ok && isWord(name) {
		return ParsedCondition{Kind: CondHas, Name: name, Raw: expr}
	}
	if name, rest := scanIdent(expr); name != "" {
		for _, op := range compareOps {
			if arg, ok := strings.CutPrefix(rest, op); ok {
				if v, numOK := scanNumber(arg); numOK {
					return ParsedCondition{Kind: CondCompare, Name: name, Op: op, Val: v, Raw: expr}
				}
				break
			}
		}
	}
	return ParsedCondition{Kind: CondAlways, Raw: expr}
}

// Eval evaluates the condition against the current state. Missing numeric
// fields read as 0.
func (c ParsedCondition) Eval(s *GameState) bool {
	switch c.Kind {
	case CondFlag:
		return s.Flags[c.Name]
	case CondHas:
		return s.HasCapability(c.Name)
	case CondCompare:
		v := s.Numeric(c.Name)
		switch c.Op {
		case ">":
			return v > c.Val
		case ">=":
			return v >= c.Val
		case "<":
			return v < c.Val
		case "<=":
			return v <= c.Val
		case "==":
			return v == c.Val
		case "!=":
			return v != c.Val
		}
		return true
	default:
		return true
	}
}

// EvalCondition parses and evaluates in one step.
func EvalCondition(expr string, s *GameState) bool {
	return ParseCondition(expr).Eval(s)
}
