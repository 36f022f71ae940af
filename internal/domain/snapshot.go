package domain

import "sort"

// WorldSnapshot is the immutable, AI-visible projection of World state
// built once per tick by the perception stage.
// Every field is a value copy — nothing aliases live World storage.
type WorldSnapshot struct {
	T float64 // simulation time in seconds

	Self      CompanionState
	Player    PlayerState
	Enemies   []EnemyState // MUST be sorted by ID
	POIs      []PointOfInterest
	Obstacles []Position
	Objective string // empty means "no objective set"
}

// SortedCooldownNames returns the companion's cooldown names in sorted
// order — the MANDATORY ordering anywhere the snapshot feeds the Plan
// Cache's fingerprint.
func (s WorldSnapshot) SortedCooldownNames() []string {
	names := make([]string, 0, len(s.Self.Cooldowns))
	for k := range s.Self.Cooldowns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Cooldown returns the remaining seconds for a named cooldown, or 0 if
// it is not tracked (treated as "ready").
func (s WorldSnapshot) Cooldown(name string) float64 {
	return s.Self.Cooldowns[name]
}

// FirstEnemyByID returns the lowest-id enemy, used by the Rule
// Planner. Enemies MUST already be sorted by BuildSnapshot; this
// never re-sorts, to keep selection deterministic and O(1).
func (s WorldSnapshot) FirstEnemyByID() (EnemyState, bool) {
	if len(s.Enemies) == 0 {
		return EnemyState{}, false
	}
	return s.Enemies[0], true
}
