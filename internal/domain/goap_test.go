package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGOAPValue_Satisfies_ShouldMatchEqualScalars(t *testing.T) {
	assert.True(t, VBool(true).Satisfies(VBool(true)))
	assert.False(t, VBool(true).Satisfies(VBool(false)))
	assert.True(t, VInt(3).Satisfies(VInt(3)))
	assert.True(t, VString("a").Satisfies(VString("a")))
}

func TestGOAPValue_Satisfies_ShouldRejectMismatchedKinds(t *testing.T) {
	assert.False(t, VBool(true).Satisfies(VInt(1)))
}

func TestGOAPValue_Satisfies_IntRange_ShouldCheckContainment(t *testing.T) {
	want := VIntRange(1, 5)

	assert.True(t, want.Satisfies(VInt(3)))
	assert.False(t, want.Satisfies(VInt(6)))
	assert.True(t, want.Satisfies(VIntRange(2, 2)))
}

func TestGOAPState_With_ShouldNotMutateOriginal(t *testing.T) {
	base := GOAPState{}.With("a", VBool(true))

	updated := base.With("a", VBool(false))

	assert.Equal(t, VBool(true), base["a"])
	assert.Equal(t, VBool(false), updated["a"])
}

func TestGOAPState_Signature_ShouldBeOrderIndependent(t *testing.T) {
	a := GOAPState{}.With("x", VInt(1)).With("y", VInt(2))
	b := GOAPState{}.With("y", VInt(2)).With("x", VInt(1))

	assert.Equal(t, a.Signature(), b.Signature())
}

func TestGOAPState_Signature_ShouldDifferWhenContentDiffers(t *testing.T) {
	a := GOAPState{}.With("x", VInt(1))
	b := GOAPState{}.With("x", VInt(2))

	assert.NotEqual(t, a.Signature(), b.Signature())
}

func TestGOAPState_Satisfies_ShouldRequireEveryGoalPredicate(t *testing.T) {
	state := GOAPState{}.With("a", VBool(true)).With("b", VInt(1))
	goal := GOAPState{}.With("a", VBool(true))

	assert.True(t, state.Satisfies(goal))
}

func TestGOAPState_Satisfies_ShouldFail_WhenKeyMissing(t *testing.T) {
	state := GOAPState{}.With("a", VBool(true))
	goal := GOAPState{}.With("b", VBool(true))

	assert.False(t, state.Satisfies(goal))
}

func TestGOAPState_UnsatisfiedCount_ShouldCountFailingPredicatesOnly(t *testing.T) {
	state := GOAPState{}.With("a", VBool(true))
	goal := GOAPState{}.With("a", VBool(true)).With("b", VBool(true)).With("c", VBool(false))

	n := state.UnsatisfiedCount(goal)

	assert.Equal(t, 2, n, "'b' and 'c' are both absent; an absent key counts as unsatisfied even when the goal wants false")
}

func TestGOAPAction_Apply_ShouldMergeEffectsWithoutMutatingInput(t *testing.T) {
	action := GOAPAction{
		Name:    "throw_smoke",
		Effects: GOAPState{}.With("smoke_ready", VBool(false)),
	}
	before := GOAPState{}.With("smoke_ready", VBool(true)).With("ammo", VInt(5))

	after := action.Apply(before)

	assert.Equal(t, VBool(true), before["smoke_ready"], "Apply must not mutate its input state")
	assert.Equal(t, VBool(false), after["smoke_ready"])
	assert.Equal(t, VInt(5), after["ammo"], "unrelated keys must survive Apply untouched")
}

func TestGOAPAction_PreconditionsMet_ShouldDelegateToStateSatisfies(t *testing.T) {
	action := GOAPAction{
		Preconditions: GOAPState{}.With("enemy_visible", VBool(true)),
	}

	assert.True(t, action.PreconditionsMet(GOAPState{}.With("enemy_visible", VBool(true))))
	assert.False(t, action.PreconditionsMet(GOAPState{}.With("enemy_visible", VBool(false))))
}
