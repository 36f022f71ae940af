package domain

// ActionKind tags the variant of an ActionStep.
type ActionKind string

const (
	ActionMoveTo    ActionKind = "MoveTo"
	ActionThrow     ActionKind = "Throw"
	ActionCoverFire ActionKind = "CoverFire"
	ActionRevive    ActionKind = "Revive"
	ActionWait      ActionKind = "Wait"
	ActionInteract  ActionKind = "Interact"
)

// ActionStep is one tagged-variant step of a PlanIntent. Only the
// fields relevant to Kind are meaningful; this mirrors how the LLM
// prompt contract serializes steps as {act, args}.
type ActionStep struct {
	Kind ActionKind

	// MoveTo
	X, Y  float64
	Speed float64 // 0 means "default speed"

	// Throw
	Item string

	// CoverFire / Revive / Interact
	TargetID uint32
	Duration float64 // seconds, CoverFire

	// Wait
	Seconds float64
}

// MoveTo builds a MoveTo step. Speed 0 means "use default speed".
func MoveTo(x, y, speed float64) ActionStep {
	return ActionStep{Kind: ActionMoveTo, X: x, Y: y, Speed: speed}
}

// Throw builds a Throw step.
func Throw(item string, x, y float64) ActionStep {
	return ActionStep{Kind: ActionThrow, Item: item, X: x, Y: y}
}

// CoverFire builds a CoverFire step.
func CoverFire(targetID uint32, duration float64) ActionStep {
	return ActionStep{Kind: ActionCoverFire, TargetID: targetID, Duration: duration}
}

// Revive builds a Revive step.
func Revive(targetID uint32) ActionStep {
	return ActionStep{Kind: ActionRevive, TargetID: targetID}
}

// Wait builds a Wait step.
func Wait(seconds float64) ActionStep {
	return ActionStep{Kind: ActionWait, Seconds: seconds}
}

// Interact builds an Interact step.
func Interact(targetID uint32) ActionStep {
	return ActionStep{Kind: ActionInteract, TargetID: targetID}
}

// PlanIntent is the structured output of any planner.
type PlanIntent struct {
	PlanID string
	Steps  []ActionStep
}

// Empty reports whether the plan has no steps — the safe degraded
// response every planner falls back to on failure.
func (p PlanIntent) Empty() bool { return len(p.Steps) == 0 }
