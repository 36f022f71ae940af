package planning

import (
	"context"

	"github.com/aisimcore/simcore/internal/domain"
)

// GOAPGoalProvider resolves a controller policy name to the goal state
// and action set a GOAP search should run against. Kept as an
// interface (rather than a single fixed goal) because a companion's
// goal legitimately varies by policy — "push", "hold", "revive" — while
// the search algorithm itself (GOAPPlanner) stays fixed.
type GOAPGoalProvider interface {
	Goal(policy string) (goal domain.GOAPState, actions []domain.GOAPAction, ok bool)
}

// StaticGOAPGoals is the simplest GOAPGoalProvider: a fixed table of
// policy name to (goal, actions), set up once at startup.
type StaticGOAPGoals map[string]struct {
	Goal    domain.GOAPState
	Actions []domain.GOAPAction
}

// Goal implements GOAPGoalProvider.
func (t StaticGOAPGoals) Goal(policy string) (domain.GOAPState, []domain.GOAPAction, bool) {
	entry, ok := t[policy]
	if !ok {
		return nil, nil, false
	}
	return entry.Goal, entry.Actions, true
}

// GOAPAdapter bridges the generic A* search of GOAPPlanner into the
// Planner interface: it derives a start state from a WorldSnapshot,
// resolves the goal/action-set from the controller's policy, searches,
// and renders the resulting action-name sequence back into ActionSteps.
//
// The snapshot-to-GOAPState projection is intentionally narrow — the
// handful of predicates a tick-rate planner needs, not a full world
// mirror.
type GOAPAdapter struct {
	goals   GOAPGoalProvider
	history *FailureHistory
}

// NewGOAPAdapter creates a GOAPAdapter sharing one FailureHistory
// across every search it performs, so learned failure counts persist
// across ticks and plans.
func NewGOAPAdapter(goals GOAPGoalProvider) *GOAPAdapter {
	return &GOAPAdapter{goals: goals, history: NewFailureHistory()}
}

// History exposes the shared FailureHistory so callers can record
// action outcomes after executing a plan.
func (a *GOAPAdapter) History() *FailureHistory { return a.history }

// StartState derives a GOAP world-state from a WorldSnapshot.
func StartState(snap domain.WorldSnapshot) domain.GOAPState {
	state := domain.GOAPState{
		"enemy_visible": domain.VBool(len(snap.Enemies) > 0),
		"has_ammo":      domain.VBool(snap.Self.Ammo > 0),
		"smoke_ready":   domain.VBool(snap.Cooldown(smokeCooldownName) <= 0),
	}
	if enemy, ok := snap.FirstEnemyByID(); ok {
		state["enemy_low_hp"] = domain.VBool(enemy.Health <= 25)
	} else {
		state["enemy_low_hp"] = domain.VBool(false)
	}
	return state
}

// Plan implements Planner. A missing policy binding or an unreachable
// goal both yield an empty PlanIntent — GOAP failure never panics or
// propagates past the tick boundary.
func (a *GOAPAdapter) Plan(_ context.Context, snap domain.WorldSnapshot, controller Controller) domain.PlanIntent {
	planID := "plan-" + planIDSuffix(snap.T)

	goal, actions, ok := a.goals.Goal(controller.Policy)
	if !ok {
		return domain.PlanIntent{PlanID: planID}
	}

	search := NewGOAPPlanner(actions, a.history)
	names, found := search.FindPlan(StartState(snap), goal)
	if !found {
		return domain.PlanIntent{PlanID: "plan-goap-unreachable"}
	}

	steps := make([]domain.ActionStep, 0, len(names))
	for _, name := range names {
		steps = append(steps, goapActionToStep(name, snap))
	}
	return domain.PlanIntent{PlanID: planID, Steps: steps}
}

// goapActionToStep renders a named GOAP action into a concrete
// ActionStep. Action names are a closed, implementation-owned
// vocabulary (not user input), so a straightforward name switch is
// sufficient; anything unrecognized degrades to Wait(0) rather than
// dropping the step from the plan.
func goapActionToStep(name string, snap domain.WorldSnapshot) domain.ActionStep {
	switch name {
	case "throw_smoke":
		if enemy, ok := snap.FirstEnemyByID(); ok {
			x, y := midpoint(snap.Self.Position, enemy.Position)
			return domain.Throw("smoke", x, y)
		}
		return domain.Wait(0)
	case "advance":
		if enemy, ok := snap.FirstEnemyByID(); ok {
			x, y := stepToward(snap.Self.Position, enemy.Position, 1)
			return domain.MoveTo(x, y, 0)
		}
		return domain.Wait(0)
	case "suppress":
		if enemy, ok := snap.FirstEnemyByID(); ok {
			return domain.CoverFire(enemy.ID, 1.5)
		}
		return domain.Wait(0)
	default:
		return domain.Wait(0)
	}
}
