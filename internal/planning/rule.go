package planning

import (
	"context"
	"math"

	"github.com/aisimcore/simcore/internal/domain"
)

// RulePlanner is the fully-specified reactive planner. It never
// re-sorts or re-selects enemies by any criterion other than "first by
// id" — BuildSnapshot is the single sort point in the pipeline, which
// is what keeps this planner's output deterministic.
type RulePlanner struct{}

// NewRulePlanner creates a RulePlanner. It has no state.
func NewRulePlanner() *RulePlanner { return &RulePlanner{} }

const smokeCooldownName = "throw:smoke"

// Plan implements Planner.
func (RulePlanner) Plan(_ context.Context, snap domain.WorldSnapshot, _ Controller) domain.PlanIntent {
	planID := "plan-" + planIDSuffix(snap.T)

	enemy, ok := snap.FirstEnemyByID()
	if !ok {
		return domain.PlanIntent{PlanID: planID}
	}

	if snap.Cooldown(smokeCooldownName) <= 0 {
		midX, midY := midpoint(snap.Self.Position, enemy.Position)
		stepX, stepY := stepToward(snap.Self.Position, enemy.Position, 2)
		return domain.PlanIntent{
			PlanID: planID,
			Steps: []domain.ActionStep{
				domain.Throw("smoke", midX, midY),
				domain.MoveTo(stepX, stepY, 0),
				domain.CoverFire(enemy.ID, 2.5),
			},
		}
	}

	stepX, stepY := stepToward(snap.Self.Position, enemy.Position, 1)
	return domain.PlanIntent{
		PlanID: planID,
		Steps: []domain.ActionStep{
			domain.MoveTo(stepX, stepY, 0),
			domain.CoverFire(enemy.ID, 1.5),
		},
	}
}

// planIDSuffix renders floor(t*1000) as a decimal string without
// pulling in strconv.FormatFloat's rounding surprises for this
// integer-valued quantity: plan_id = "plan-" + floor(t*1000).
func planIDSuffix(t float64) string {
	n := int64(math.Floor(t * 1000))
	return itoa(n)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// midpoint returns the point halfway between a and b, floored to whole
// world units: companion (5,7), enemy (10,10) -> (7,8), not the exact
// arithmetic mean (7.5,8.5) — the smoke throw always lands on a
// whole-unit position.
func midpoint(a, b domain.Position) (float64, float64) {
	return math.Floor((a.X + b.X) / 2), math.Floor((a.Y + b.Y) / 2)
}

// stepToward returns the point `cells` grid-cells away from a, moving
// along the sign of the delta toward b on each axis independently.
func stepToward(a, b domain.Position, cells float64) (float64, float64) {
	dx := signOf(b.X - a.X)
	dy := signOf(b.Y - a.Y)
	return a.X + dx*cells, a.Y + dy*cells
}

func signOf(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
