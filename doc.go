// Package simcore is an AI-driven simulation core: a deterministic
// entity-component-system world, a perception stage that projects the
// world into an AI-visible snapshot each tick, a mode-dispatched
// planning pipeline (Rule, Utility, GOAP, and an optional LLM
// planner), a world-partition streaming manager, and a Companion
// Profile store.
//
// Engine ties these pieces together behind a single facade; each
// concern also works standalone via its own package
// (internal/ecs, internal/perception, internal/planning,
// internal/spatial, internal/persona) for callers that want to own
// the wiring themselves.
package simcore
