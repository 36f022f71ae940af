package planning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aisimcore/simcore/internal/domain"
)

func TestRulePlanner_Plan_ShouldReturnEmptyPlan_WhenNoEnemyVisible(t *testing.T) {
	p := NewRulePlanner()
	snap := domain.WorldSnapshot{Self: domain.CompanionState{Cooldowns: map[string]float64{}}}

	plan := p.Plan(context.Background(), snap, Controller{Mode: ModeRule})

	assert.True(t, plan.Empty())
}

func TestRulePlanner_Plan_ShouldThrowSmoke_WhenCooldownReady(t *testing.T) {
	p := NewRulePlanner()
	snap := domain.WorldSnapshot{
		Self:    domain.CompanionState{Position: domain.Position{X: 0, Y: 0}, Cooldowns: map[string]float64{}},
		Enemies: []domain.EnemyState{{ID: 1, Position: domain.Position{X: 10, Y: 0}}},
	}

	plan := p.Plan(context.Background(), snap, Controller{Mode: ModeRule})

	assert.NotEmpty(t, plan.Steps)
	assert.Equal(t, domain.ActionThrow, plan.Steps[0].Kind)
	assert.Equal(t, "smoke", plan.Steps[0].Item)
}

func TestRulePlanner_Plan_ShouldAdvance_WhenSmokeOnCooldown(t *testing.T) {
	p := NewRulePlanner()
	snap := domain.WorldSnapshot{
		Self: domain.CompanionState{
			Position:  domain.Position{X: 0, Y: 0},
			Cooldowns: map[string]float64{smokeCooldownName: 5},
		},
		Enemies: []domain.EnemyState{{ID: 1, Position: domain.Position{X: 10, Y: 0}}},
	}

	plan := p.Plan(context.Background(), snap, Controller{Mode: ModeRule})

	assert.NotEmpty(t, plan.Steps)
	assert.Equal(t, domain.ActionMoveTo, plan.Steps[0].Kind)
}

func TestRulePlanner_Plan_ShouldTargetLowestIDEnemy_WhenMultiplePresent(t *testing.T) {
	p := NewRulePlanner()
	snap := domain.WorldSnapshot{
		Self: domain.CompanionState{Cooldowns: map[string]float64{smokeCooldownName: 5}},
		Enemies: []domain.EnemyState{
			{ID: 2, Position: domain.Position{X: 20, Y: 0}},
			{ID: 7, Position: domain.Position{X: 40, Y: 0}},
		},
	}

	plan := p.Plan(context.Background(), snap, Controller{Mode: ModeRule})

	assert.NotEmpty(t, plan.Steps)
	assert.Equal(t, uint32(2), plan.Steps[len(plan.Steps)-1].TargetID)
}

func TestMidpoint_ShouldFloorTheArithmeticMean(t *testing.T) {
	mx, my := midpoint(domain.Position{X: 5, Y: 7}, domain.Position{X: 10, Y: 10})

	assert.Equal(t, 7.0, mx)
	assert.Equal(t, 8.0, my)
}

func TestStepToward_ShouldMoveBySignedCellsAlongEachAxis(t *testing.T) {
	x, y := stepToward(domain.Position{X: 0, Y: 0}, domain.Position{X: 10, Y: -5}, 2)

	assert.Equal(t, 2.0, x)
	assert.Equal(t, -2.0, y)
}

func TestStepToward_ShouldNotMove_WhenAlreadyAligned(t *testing.T) {
	x, y := stepToward(domain.Position{X: 3, Y: 4}, domain.Position{X: 3, Y: 4}, 5)

	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
}

func TestSignOf_ShouldReturnSignOfValue(t *testing.T) {
	assert.Equal(t, 1.0, signOf(5))
	assert.Equal(t, -1.0, signOf(-5))
	assert.Equal(t, 0.0, signOf(0))
}

func TestPlanIDSuffix_ShouldBeDeterministic_ForSameInput(t *testing.T) {
	assert.Equal(t, planIDSuffix(1.5), planIDSuffix(1.5))
	assert.NotEqual(t, planIDSuffix(1.5), planIDSuffix(1.6))
}

func TestItoa_ShouldRenderNegativeAndZero(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "-42", itoa(-42))
	assert.Equal(t, "1500", itoa(1500))
}
