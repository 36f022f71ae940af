package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aisimcore/simcore/internal/domain"
)

func TestFailureHistory_RecordFailure_ShouldIncrementCounter(t *testing.T) {
	h := NewFailureHistory()

	h.RecordFailure("advance")
	h.RecordFailure("advance")

	assert.Equal(t, 2, h.Count("advance"))
}

func TestFailureHistory_RecordSuccess_ShouldDecrementButNotGoNegative(t *testing.T) {
	h := NewFailureHistory()

	h.RecordSuccess("advance")
	assert.Equal(t, 0, h.Count("advance"))

	h.RecordFailure("advance")
	h.RecordSuccess("advance")
	assert.Equal(t, 0, h.Count("advance"))
}

func TestFailureHistory_EffectiveCost_ShouldScaleWithFailureCount(t *testing.T) {
	h := NewFailureHistory()
	action := domain.GOAPAction{Name: "advance", BaseCost: 2}

	base := h.EffectiveCost(action)
	h.RecordFailure("advance")
	h.RecordFailure("advance")
	scaled := h.EffectiveCost(action)

	assert.Equal(t, 2.0, base)
	assert.Equal(t, 4.0, scaled)
}

func TestGOAPPlanner_FindPlan_ShouldReturnSequence_WhenGoalReachable(t *testing.T) {
	actions := []domain.GOAPAction{
		{
			Name:          "throw_smoke",
			Preconditions: domain.GOAPState{"smoke_ready": domain.VBool(true)},
			Effects:       domain.GOAPState{"enemy_visible": domain.VBool(false)},
			BaseCost:      1,
		},
	}
	start := domain.GOAPState{"smoke_ready": domain.VBool(true), "enemy_visible": domain.VBool(true)}
	goal := domain.GOAPState{"enemy_visible": domain.VBool(false)}

	p := NewGOAPPlanner(actions, nil)
	plan, ok := p.FindPlan(start, goal)

	assert.True(t, ok)
	assert.Equal(t, []string{"throw_smoke"}, plan)
}

func TestGOAPPlanner_FindPlan_ShouldReturnFalse_WhenGoalUnreachable(t *testing.T) {
	actions := []domain.GOAPAction{
		{
			Name:          "noop",
			Preconditions: domain.GOAPState{},
			Effects:       domain.GOAPState{"irrelevant": domain.VBool(true)},
			BaseCost:      1,
		},
	}
	start := domain.GOAPState{}
	goal := domain.GOAPState{"enemy_visible": domain.VBool(false)}

	p := NewGOAPPlanner(actions, nil)
	plan, ok := p.FindPlan(start, goal)

	assert.False(t, ok)
	assert.Nil(t, plan)
}

func TestGOAPPlanner_FindPlan_ShouldRespectMaxIterations(t *testing.T) {
	actions := []domain.GOAPAction{
		{
			Name:          "increment",
			Preconditions: domain.GOAPState{},
			Effects:       domain.GOAPState{"n": domain.VInt(1)},
			BaseCost:      1,
		},
	}
	start := domain.GOAPState{"n": domain.VInt(0)}
	goal := domain.GOAPState{"n": domain.VInt(999999)}

	p := NewGOAPPlanner(actions, nil).WithMaxIterations(5)
	plan, ok := p.FindPlan(start, goal)

	assert.False(t, ok)
	assert.Nil(t, plan)
}

func TestGOAPPlanner_FindPlan_ShouldChooseMultiStepPath_WhenDirectActionUnavailable(t *testing.T) {
	actions := []domain.GOAPAction{
		{
			Name:          "prep",
			Preconditions: domain.GOAPState{},
			Effects:       domain.GOAPState{"ready": domain.VBool(true)},
			BaseCost:      1,
		},
		{
			Name:          "engage",
			Preconditions: domain.GOAPState{"ready": domain.VBool(true)},
			Effects:       domain.GOAPState{"enemy_down": domain.VBool(true)},
			BaseCost:      1,
		},
	}
	start := domain.GOAPState{"ready": domain.VBool(false), "enemy_down": domain.VBool(false)}
	goal := domain.GOAPState{"enemy_down": domain.VBool(true)}

	p := NewGOAPPlanner(actions, nil)
	plan, ok := p.FindPlan(start, goal)

	assert.True(t, ok)
	assert.Equal(t, []string{"prep", "engage"}, plan)
}
