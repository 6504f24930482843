package rules

import "strconv"

// EffectKind tags the typed result of parsing an effect expression.
type EffectKind int

const (
	// EffectArith adjusts a named numeric state field: "score+1", "health-10".
	EffectArith EffectKind = iota
	// EffectSignal notifies an external system: "spawn:enemy", "chaos:trigger".
	EffectSignal
	// EffectFlag sets a named boolean flag: "flag=door_open".
	EffectFlag
	// EffectCustom is anything the grammar does not recognize. It is carried
	// verbatim for external collaborators; the interpreter never drops it.
	EffectCustom
)

func (k EffectKind) String() string {
	switch k {
	case EffectArith:
		return "arith"
	case EffectSignal:
		return "signal"
	case EffectFlag:
		return "flag"
	default:
		return "custom"
	}
}

// ParsedEffect is the interpreter's intermediate representation of one
// effect expression.
type ParsedEffect struct {
	Kind     EffectKind `json:"kind"`
	Type     string     `json:"type"`               // field or signal name; "flag" for flag effects; "custom" otherwise
	Operator string     `json:"operator,omitempty"` // "+", "-", ":", "="
	Value    float64    `json:"value,omitempty"`    // arithmetic operand
	Payload  string     `json:"payload,omitempty"`  // signal argument, flag name, or raw custom text
	Raw      string     `json:"raw"`
}

// ParseEffect tokenizes one effect expression. It is total: expressions
// matching no production come back as EffectCustom with the raw text as
// payload. Productions are tried in order and the first match wins:
//
//	<name><+|-><number>  arithmetic on a numeric field
//	<name>:trigger       zero-argument signal
//	<name>:<word>        parameterized signal
//	<name>=<word>        flag assignment (flag namespace, whatever <name> is)
func ParseEffect(expr string) ParsedEffect {
	name, rest := scanIdent(expr)
	if name != "" && rest != "" {
		sep := rest[0]
		arg := rest[1:]
		switch sep {
		case '+', '-':
			if v, ok := scanNumber(arg); ok {
				return ParsedEffect{Kind: EffectArith, Type: name, Operator: string(sep), Value: v, Raw: expr}
			}
		case ':':
			if isWord(arg) {
				payload := arg
				if payload == "trigger" {
					payload = ""
				}
				return ParsedEffect{Kind: EffectSignal, Type: name, Operator: ":", Payload: payload, Raw: expr}
			}
		case '=':
			if isWord(arg) {
				return ParsedEffect{Kind: EffectFlag, Type: "flag", Operator: "=", Payload: arg, Raw: expr}
			}
		}
	}
	return ParsedEffect{Kind: EffectCustom, Type: "custom", Payload: expr, Raw: expr}
}

// scanIdent consumes a leading identifier ([A-Za-z_][A-Za-z0-9_]*) and
// returns it with the unconsumed remainder.
func scanIdent(s string) (ident, rest string) {
	i := 0
	for i < len(s) && isIdentByte(s[i], i == 0) {
		i++
	}
	return s[:i], s[i:]
}

func isIdentByte(b byte, first bool) bool {
	if b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
		return true
	}
	return !first && b >= '0' && b <= '9'
}

// scanNumber accepts a full-string unsigned decimal number.
func scanNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '9') && s[i] != '.' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isWord accepts a bare identifier-like argument.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i], false) {
			return false
		}
	}
	return true
}
