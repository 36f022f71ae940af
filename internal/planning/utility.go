package planning

import (
	"context"
	"math"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/aisimcore/simcore/internal/domain"
)

// candidateKind tags which fixed candidate a scored plan came from.
type candidateKind int

const (
	candidateSmoke candidateKind = iota
	candidateAdvance
)

// candidate is one scored plan option.
type candidate struct {
	kind    candidateKind
	score   float64
	order   int // insertion order, for deterministic tie-break
	present bool
}

// UtilityPlanner scores a small set of fixed candidates and emits the
// best one's steps. Scoring formulas are compiled
// expr-lang programs, the same library and caching approach the
// teacher's ConditionEvaluator uses for edge conditions
// (internal/application/executor/conditions.go) — generalized here from
// boolean edge gates to float-valued utility scores.
type UtilityPlanner struct {
	evaluator *ScoreEvaluator
}

// NewUtilityPlanner creates a UtilityPlanner with the default smoke
// and advance scoring formulas.
func NewUtilityPlanner() *UtilityPlanner {
	return &UtilityPlanner{evaluator: NewScoreEvaluator()}
}

// Plan implements Planner.
func (u *UtilityPlanner) Plan(_ context.Context, snap domain.WorldSnapshot, _ Controller) domain.PlanIntent {
	planID := "plan-" + planIDSuffix(snap.T)

	candidates := make([]candidate, 0, 2)

	if enemy, ok := snap.FirstEnemyByID(); ok && snap.Cooldown(smokeCooldownName) <= 0 {
		score, err := u.evaluator.ScoreSmoke(enemy.Health)
		if err == nil {
			candidates = append(candidates, candidate{kind: candidateSmoke, score: score, order: 0, present: true})
		}
	}

	if enemy, ok := snap.FirstEnemyByID(); ok {
		dist := manhattan(snap.Self.Position, enemy.Position)
		score, err := u.evaluator.ScoreAdvance(dist)
		if err == nil {
			candidates = append(candidates, candidate{kind: candidateAdvance, score: score, order: 1, present: true})
		}
	}

	if len(candidates) == 0 {
		return domain.PlanIntent{PlanID: planID}
	}

	// Descending by score; ties broken by insertion order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})

	best := candidates[0]
	enemy, _ := snap.FirstEnemyByID()

	switch best.kind {
	case candidateSmoke:
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
	case candidateAdvance:
		stepX, stepY := stepToward(snap.Self.Position, enemy.Position, 1)
		return domain.PlanIntent{
			PlanID: planID,
			Steps:  []domain.ActionStep{domain.MoveTo(stepX, stepY, 0)},
		}
	default:
		return domain.PlanIntent{PlanID: planID}
	}
}

func manhattan(a, b domain.Position) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// ScoreEvaluator compiles and caches the utility formulas as
// expr-lang programs, mirroring a compiled-program condition cache.
type ScoreEvaluator struct {
	smokeProgram   *vm.Program
	advanceProgram *vm.Program
}

// NewScoreEvaluator compiles the two fixed formulas once.
func NewScoreEvaluator() *ScoreEvaluator {
	smoke, err := expr.Compile("1.0 + 0.01*hp", expr.Env(map[string]any{"hp": 0.0}))
	if err != nil {
		panic("planning: invalid smoke scoring expression: " + err.Error())
	}
	advance, err := expr.Compile("0.8 + 0.05*max(0.0, 3.0-dist)", expr.Env(map[string]any{"dist": 0.0}), expr.Function("max", func(params ...any) (any, error) {
		a := params[0].(float64)
		b := params[1].(float64)
		if a > b {
			return a, nil
		}
		return b, nil
	}))
	if err != nil {
		panic("planning: invalid advance scoring expression: " + err.Error())
	}
	return &ScoreEvaluator{smokeProgram: smoke, advanceProgram: advance}
}

// ScoreSmoke computes score = 1.0 + 0.01*enemy_hp.
func (e *ScoreEvaluator) ScoreSmoke(enemyHP float64) (float64, error) {
	out, err := expr.Run(e.smokeProgram, map[string]any{"hp": enemyHP})
	if err != nil {
		return 0, err
	}
	return out.(float64), nil
}

// ScoreAdvance computes score = 0.8 + 0.05*max(0, 3-manhattan_distance).
func (e *ScoreEvaluator) ScoreAdvance(manhattanDist float64) (float64, error) {
	out, err := expr.Run(e.advanceProgram, map[string]any{"dist": manhattanDist})
	if err != nil {
		return 0, err
	}
	return out.(float64), nil
}
