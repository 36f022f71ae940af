package planning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aisimcore/simcore/internal/domain"
)

func TestUtilityPlanner_Plan_ShouldReturnEmptyPlan_WhenNoEnemyVisible(t *testing.T) {
	p := NewUtilityPlanner()

	plan := p.Plan(context.Background(), domain.WorldSnapshot{Self: domain.CompanionState{Cooldowns: map[string]float64{}}}, Controller{})

	assert.True(t, plan.Empty())
}

func TestUtilityPlanner_Plan_ShouldPreferSmoke_WhenEnemyLowHPAndCooldownReady(t *testing.T) {
	p := NewUtilityPlanner()
	snap := domain.WorldSnapshot{
		Self:    domain.CompanionState{Position: domain.Position{X: 0, Y: 0}, Cooldowns: map[string]float64{}},
		Enemies: []domain.EnemyState{{ID: 1, Health: 5, Position: domain.Position{X: 1, Y: 0}}},
	}

	plan := p.Plan(context.Background(), snap, Controller{})

	assert.NotEmpty(t, plan.Steps)
	assert.Equal(t, domain.ActionThrow, plan.Steps[0].Kind)
}

func TestUtilityPlanner_Plan_ShouldAdvance_WhenSmokeOnCooldown(t *testing.T) {
	p := NewUtilityPlanner()
	snap := domain.WorldSnapshot{
		Self: domain.CompanionState{
			Position:  domain.Position{X: 0, Y: 0},
			Cooldowns: map[string]float64{smokeCooldownName: 5},
		},
		Enemies: []domain.EnemyState{{ID: 1, Health: 100, Position: domain.Position{X: 5, Y: 0}}},
	}

	plan := p.Plan(context.Background(), snap, Controller{})

	assert.NotEmpty(t, plan.Steps)
	assert.Equal(t, domain.ActionMoveTo, plan.Steps[0].Kind)
}

func TestManhattan_ShouldSumAbsoluteAxisDeltas(t *testing.T) {
	d := manhattan(domain.Position{X: 0, Y: 0}, domain.Position{X: 3, Y: -4})

	assert.Equal(t, 7.0, d)
}

func TestScoreEvaluator_ScoreSmoke_ShouldIncreaseWithEnemyHP(t *testing.T) {
	e := NewScoreEvaluator()

	low, err1 := e.ScoreSmoke(10)
	high, err2 := e.ScoreSmoke(90)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Less(t, low, high)
}

func TestScoreEvaluator_ScoreAdvance_ShouldDecreaseWithDistance(t *testing.T) {
	e := NewScoreEvaluator()

	near, err1 := e.ScoreAdvance(0)
	far, err2 := e.ScoreAdvance(10)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Greater(t, near, far)
}
