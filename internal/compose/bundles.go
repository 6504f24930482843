// Package compose builds the base rule set for a game from its selected
// verbs. Each verb contributes an independent bundle of rules; a baseline
// platformer bundle covering universal mechanics is always included.
package compose

import (
	"github.com/gamesmith/gamesmith-go/internal/dna"
	"github.com/gamesmith/gamesmith-go/internal/rules"
)

// bundleRegistry holds the rule bundle for each verb.
var bundleRegistry = make(map[string][]rules.RuleDef)

// register adds a verb bundle. Called from init only.
func register(verb string, bundle []rules.RuleDef) {
	bundleRegistry[verb] = bundle
}

// BundleFor returns a copy of the rule bundle for a verb. Unknown verbs get
// an empty bundle: a custom verb still plays, it just brings no mechanics of
// its own beyond the baseline.
func BundleFor(verb string) []rules.RuleDef {
	bundle := bundleRegistry[verb]
	out := make([]rules.RuleDef, len(bundle))
	copy(out, bundle)
	return out
}

// baseline is the platformer bundle every game gets regardless of verbs:
// falling out of the world, reaching the goal, basic enemy contact.
var baseline = []rules.RuleDef{
	{Trigger: "player_fall_off_world", Action: "fall_damage", Effect: "health-25"},
	{Trigger: "player_fall_off_world", Action: "respawn", Effect: "respawn:trigger"},
	{Trigger: "player_reach_goal", Action: "goal_bonus", Effect: "score+50"},
	{Trigger: "player_reach_goal", Action: "complete_level", Effect: "level+1"},
	{Trigger: "enemy_touch_player", Condition: "health>0", Action: "contact_damage", Effect: "health-10"},
}

func init() {
	register(dna.VerbJump, []rules.RuleDef{
		{Trigger: "player_jump", Action: "air_time", Effect: "combo+1"},
		{Trigger: "player_land_on_enemy", Action: "stomp", Effect: "score+15"},
		{Trigger: "player_land_on_enemy", Action: "bounce", Effect: "bounce:trigger"},
	})

	register(dna.VerbShoot, []rules.RuleDef{
		{Trigger: "player_shoot", Action: "fire_projectile", Effect: "spawn:projectile"},
		{Trigger: "projectile_hit_enemy", Action: "destroy_enemy", Effect: "score+10"},
		{Trigger: "projectile_hit_enemy", Action: "combo_up", Effect: "combo+1"},
		// Same contact rule the baseline carries; dedupe collapses them.
		{Trigger: "enemy_touch_player", Condition: "health>0", Action: "contact_damage", Effect: "health-10"},
	})

	register(dna.VerbCollect, []rules.RuleDef{
		{Trigger: "player_collect_coin", Action: "add_score", Effect: "score+1"},
		{Trigger: "player_collect_powerup", Action: "apply_powerup", Effect: "player=powered_up"},
		{Trigger: "player_collect_key", Action: "unlock_exit", Effect: "exit=unlocked"},
		{Trigger: "player_collect_all", Action: "complete_level", Effect: "level+1"},
	})

	register(dna.VerbDodge, []rules.RuleDef{
		{Trigger: "player_dodge", Action: "dodge_bonus", Effect: "score+2"},
		{Trigger: "player_dodge", Action: "combo_up", Effect: "combo+1"},
		{Trigger: "player_dodge", Condition: "combo>=3", Action: "streak_reward", Effect: "score+10"},
		{Trigger: "enemy_touch_player", Condition: "health>0", Action: "contact_damage", Effect: "health-10"},
	})

	register(dna.VerbBuild, []rules.RuleDef{
		{Trigger: "player_build_block", Action: "place_block", Effect: "spawn:block"},
		{Trigger: "player_build_complete", Action: "structure_bonus", Effect: "score+25"},
		{Trigger: "structure_destroyed", Action: "structure_loss", Effect: "combo-1"},
	})

	register(dna.VerbExplore, []rules.RuleDef{
		{Trigger: "player_enter_area", Action: "discovery", Effect: "score+5"},
		{Trigger: "player_find_secret", Action: "secret_bonus", Effect: "score+20"},
		{Trigger: "player_find_secret", Action: "mark_secret", Effect: "map=secret_found"},
	})

	register(dna.VerbPush, []rules.RuleDef{
		{Trigger: "player_push_block", Action: "shift_block", Effect: "push:block"},
		{Trigger: "block_on_switch", Action: "open_gate", Effect: "gate=open"},
		{Trigger: "block_crush_enemy", Action: "crush_bonus", Effect: "score+15"},
	})

	register(dna.VerbActivate, []rules.RuleDef{
		{Trigger: "player_activate_switch", Action: "toggle_switch", Effect: "switch=active"},
		{Trigger: "all_switches_active", Action: "open_exit", Effect: "exit=unlocked"},
		{Trigger: "player_activate_switch", Action: "switch_bonus", Effect: "score+5"},
	})

	register(dna.VerbCraft, []rules.RuleDef{
		{Trigger: "player_collect_material", Action: "gather", Effect: "score+2"},
		{Trigger: "player_craft_item", Action: "craft_signal", Effect: "craft:item"},
		{Trigger: "player_craft_item", Condition: "has:craft", Action: "craft_bonus", Effect: "score+10"},
	})

	register(dna.VerbDefend, []rules.RuleDef{
		{Trigger: "enemy_attack", Condition: "flag:shield_up", Action: "block_attack", Effect: "score+5"},
		{Trigger: "enemy_attack", Action: "take_damage", Effect: "health-15"},
		{Trigger: "wave_survived", Action: "survival_bonus", Effect: "score+30"},
	})

	register(dna.VerbDash, []rules.RuleDef{
		{Trigger: "player_dash", Action: "dash_burst", Effect: "dash:burst"},
		{Trigger: "player_dash_through_enemy", Action: "phase_bonus", Effect: "score+15"},
		{Trigger: "player_dash", Condition: "combo>=5", Action: "momentum", Effect: "score+5"},
	})
}
