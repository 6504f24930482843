package compose

import "github.com/gamesmith/gamesmith-go/internal/rules"

// Compose builds the base rule set for a verb selection: the baseline bundle
// first, then each selected verb's bundle in selection order, deduplicated
// by exact (trigger, action, effect) equality with first-seen order kept.
// Composing the same selection twice yields the same rule set, and a rule
// two bundles both define appears once.
func Compose(verbs []string) []rules.RuleDef {
	var out []rules.RuleDef
	seen := make(map[string]bool)

	add := func(bundle []rules.RuleDef) {
		for _, r := range bundle {
			k := r.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, r)
		}
	}

	add(baseline)
	for _, verb := range verbs {
		add(bundleRegistry[verb])
	}
	return out
}

// Baseline returns a copy of the universal platformer bundle.
func Baseline() []rules.RuleDef {
	out := make([]rules.RuleDef, len(baseline))
	copy(out, baseline)
	return out
}
