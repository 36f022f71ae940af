package simcore

import (
	"context"

	"github.com/aisimcore/simcore/internal/domain"
	"github.com/aisimcore/simcore/internal/ecs"
	"github.com/aisimcore/simcore/internal/perception"
	"github.com/aisimcore/simcore/internal/planning"
	"github.com/aisimcore/simcore/internal/spatial"
)

// Engine wires the fixed-timestep ECS schedule, the perception stage,
// and the planning registry into a single per-tick entry point. It
// owns exactly one focus entity (the AI-controlled companion); games
// that need multiple independently-planned entities can drive
// World/Schedule/Registry directly instead of through Engine.
type Engine struct {
	world    *ecs.World
	schedule *ecs.Schedule
	registry *planning.Registry

	focus      ecs.Entity
	controller planning.Controller
	simTime    float64
	dt         float64

	partition *spatial.Partition
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithPartition attaches a world-partition streaming manager to the
// engine. Streaming updates are not driven automatically by Tick —
// callers invoke e.Partition().Manager.UpdateTarget themselves, since
// the target position (usually the player's) is not always the
// focus entity's own position.
func WithPartition(p *spatial.Partition) EngineOption {
	return func(e *Engine) { e.partition = p }
}

// WithTimestep overrides the fixed per-tick delta used by Run. The
// default is 1.0/60.0.
func WithTimestep(dt float64) EngineOption {
	return func(e *Engine) { e.dt = dt }
}

// NewEngine creates an Engine over a fresh World and the standard
// five-stage Schedule, controlling focus with registry-dispatched
// plans under controller.
func NewEngine(focus ecs.Entity, controller planning.Controller, registry *planning.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		world:      ecs.NewWorld(),
		schedule:   ecs.NewSchedule(),
		registry:   registry,
		focus:      focus,
		controller: controller,
		dt:         1.0 / 60.0,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// World exposes the underlying ECS world for component setup and
// system registration.
func (e *Engine) World() *ecs.World { return e.world }

// Schedule exposes the underlying fixed-stage schedule so callers can
// register simulation/physics/presentation systems before the first
// Tick.
func (e *Engine) Schedule() *ecs.Schedule { return e.schedule }

// Partition returns the attached world-partition, or nil if none was
// configured via WithPartition.
func (e *Engine) Partition() *spatial.Partition { return e.partition }

// SetController replaces the focus entity's planning mode/policy
// between ticks. Switching modes never corrupts planner state.
func (e *Engine) SetController(c planning.Controller) { e.controller = c }

// Tick advances the world by exactly one fixed timestep and returns
// the plan produced for the focus entity this tick: it runs every
// registered system through the Schedule, builds a fresh
// WorldSnapshot via BuildSnapshot, then dispatches it through the
// Registry.
func (e *Engine) Tick(ctx context.Context) domain.PlanIntent {
	e.schedule.RunOnce(e.world, e.dt)
	e.simTime += e.dt

	snap := perception.BuildSnapshot(e.world, e.focus, e.simTime, e.objective())
	return e.registry.Dispatch(ctx, snap, e.controller)
}

func (e *Engine) objective() string {
	if obj, ok := ecs.Get[domain.Objective](e.world, e.focus); ok {
		return obj.Text
	}
	return ""
}

// Run advances the engine exactly n ticks, discarding all but the
// final plan, for callers that only care about converged world state
// (e.g. warming up a scenario before the first real decision point).
func (e *Engine) Run(ctx context.Context, n int) domain.PlanIntent {
	var last domain.PlanIntent
	for i := 0; i < n; i++ {
		last = e.Tick(ctx)
	}
	return last
}
