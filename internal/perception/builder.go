// Package perception implements the Perception stage of the fixed
// schedule: a pure function from World to
// WorldSnapshot, safe to call every tick with no side effects on World
// state.
package perception

import (
	"sort"

	"github.com/aisimcore/simcore/internal/domain"
	"github.com/aisimcore/simcore/internal/ecs"
)

// FocusTag marks the entity a snapshot is built around (the companion
// being controlled). BuildSnapshot does not read it: the focus entity
// is passed to BuildSnapshot directly.
type FocusTag struct{}

// BuildSnapshot constructs the immutable, AI-visible projection of the
// world as of the current tick, centered on focus. It MUST NOT mutate
// World state (I3) and runs in O(N) over the visible entity set,
// allocating only the final snapshot storage.
func BuildSnapshot(w *ecs.World, focus ecs.Entity, simTime float64, objective string) domain.WorldSnapshot {
	snap := domain.WorldSnapshot{T: simTime, Objective: objective}

	if self, ok := ecs.Get[domain.CompanionState](w, focus); ok {
		snap.Self = self.Clone()
	}

	playerRows := ecs.Query1[domain.PlayerState](w)
	if len(playerRows) > 0 {
		snap.Player = playerRows[0].A
	}

	enemyRows := ecs.Query1[domain.EnemyState](w)
	enemies := make([]domain.EnemyState, 0, len(enemyRows))
	for _, row := range enemyRows {
		enemies = append(enemies, row.A)
	}
	// Enemies MUST be emitted sorted by id — this is the single sort point in the pipeline; no
	// planner is allowed to re-sort or re-select by another order.
	sort.Slice(enemies, func(i, j int) bool { return enemies[i].ID < enemies[j].ID })
	snap.Enemies = enemies

	poiRows := ecs.Query1[domain.PointOfInterest](w)
	pois := make([]domain.PointOfInterest, 0, len(poiRows))
	for _, row := range poiRows {
		pois = append(pois, row.A)
	}
	snap.POIs = pois

	obstacleRows := ecs.Query1[domain.Obstacle](w)
	obstacles := make([]domain.Position, 0, len(obstacleRows))
	for _, row := range obstacleRows {
		obstacles = append(obstacles, row.A.Position)
	}
	snap.Obstacles = obstacles

	return snap
}
