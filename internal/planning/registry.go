// Package planning implements the AI Planning Pipeline: a mode-dispatched Planner Registry, the
// Rule/Utility/GOAP/LLM planners, the Plan Cache, the lock-free
// Telemetry accumulator and the Prompt Sanitizer.
package planning

import (
	"context"

	"github.com/aisimcore/simcore/internal/domain"
)

// Mode selects which planner implementation handles a Controller.
type Mode string

const (
	ModeRule          Mode = "rule"
	ModeUtility       Mode = "utility"
	ModeGOAP          Mode = "goap"
	ModeBehaviorTree  Mode = "behavior_tree"
	ModeLLM           Mode = "llm"
)

// Controller carries the mode-selection and optional policy name for
// one AI-controlled entity.
type Controller struct {
	Mode   Mode
	Policy string // optional; meaning is planner-specific
}

// Planner produces a PlanIntent from a snapshot. Every planner is
// stateless with respect to the Controller except where an explicit
// state blob (e.g. GOAP failure history) is passed in separately —
// switching a controller's Mode between ticks must never corrupt state
// or panic.
type Planner interface {
	Plan(ctx context.Context, snap domain.WorldSnapshot, controller Controller) domain.PlanIntent
}

// Registry dispatches a plan request to the planner selected by
// Controller.Mode.
type Registry struct {
	planners map[Mode]Planner
	fallback Planner
}

// NewRegistry creates a Registry. fallback handles any Mode with no
// registered planner; a nil fallback is replaced by one that returns an
// empty plan with PlanID "plan-unregistered-mode".
func NewRegistry(fallback Planner) *Registry {
	if fallback == nil {
		fallback = emptyPlanner{}
	}
	return &Registry{planners: make(map[Mode]Planner), fallback: fallback}
}

// Register installs planner for mode, replacing any previous binding.
func (r *Registry) Register(mode Mode, planner Planner) {
	r.planners[mode] = planner
}

// Dispatch selects the planner for controller.Mode and invokes it.
// Never panics: an unknown mode falls through to the registry's
// fallback planner.
func (r *Registry) Dispatch(ctx context.Context, snap domain.WorldSnapshot, controller Controller) domain.PlanIntent {
	if p, ok := r.planners[controller.Mode]; ok {
		return p.Plan(ctx, snap, controller)
	}
	return r.fallback.Plan(ctx, snap, controller)
}

type emptyPlanner struct{}

func (emptyPlanner) Plan(_ context.Context, _ domain.WorldSnapshot, _ Controller) domain.PlanIntent {
	return domain.PlanIntent{PlanID: "plan-unregistered-mode"}
}
