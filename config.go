package simcore

import (
	"github.com/aisimcore/simcore/internal/domain"
	"github.com/aisimcore/simcore/internal/planning"
)

// NewDefaultRegistry wires a Registry with RulePlanner as both the
// ModeRule handler and the fallback, UtilityPlanner under ModeUtility,
// and (if goalProvider is non-nil) a GOAPAdapter under ModeGOAP.
// ModeLLM is left unregistered here — it needs an API-key-bearing
// LLMTransport that callers must provide explicitly via
// Registry.Register after construction.
func NewDefaultRegistry(goalProvider planning.GOAPGoalProvider) *planning.Registry {
	rule := planning.NewRulePlanner()
	registry := planning.NewRegistry(rule)
	registry.Register(planning.ModeRule, rule)
	registry.Register(planning.ModeUtility, planning.NewUtilityPlanner())

	if goalProvider != nil {
		registry.Register(planning.ModeGOAP, planning.NewGOAPAdapter(goalProvider))
	}

	return registry
}

// NewDefaultGoals returns a StaticGOAPGoals provider seeded with an
// "engage" policy: reach enemy_low_hp using the advance/suppress/
// throw_smoke action set, a reasonable starting point for games that
// haven't authored their own goal/action tables yet.
func NewDefaultGoals() planning.StaticGOAPGoals {
	goal := domain.GOAPState{}.With("enemy_low_hp", domain.VBool(true))

	actions := []domain.GOAPAction{
		{
			Name:          "advance",
			Preconditions: domain.GOAPState{}.With("enemy_visible", domain.VBool(true)),
			Effects:       domain.GOAPState{}.With("smoke_ready", domain.VBool(false)),
			BaseCost:      1.0,
		},
		{
			Name:          "throw_smoke",
			Preconditions: domain.GOAPState{}.With("smoke_ready", domain.VBool(true)),
			Effects:       domain.GOAPState{}.With("enemy_visible", domain.VBool(false)),
			BaseCost:      1.0,
		},
		{
			Name: "suppress",
			Preconditions: domain.GOAPState{}.
				With("enemy_visible", domain.VBool(true)).
				With("has_ammo", domain.VBool(true)),
			Effects:  domain.GOAPState{}.With("enemy_low_hp", domain.VBool(true)),
			BaseCost: 1.0,
		},
	}

	return planning.StaticGOAPGoals{
		"engage": {Goal: goal, Actions: actions},
	}
}
