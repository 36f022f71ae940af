// Package ecs implements a deterministic, archetype-indexed entity
// component store: generational entity handles, typed dense component
// storage, a World aggregate, and a fixed multi-stage Schedule.
package ecs

import "fmt"

// Entity is a generational handle: a pair of (ID, Generation). Two
// Entity values are equal (by Go's built-in ==, and therefore as map
// keys) iff both fields match — same-id-different-generation entities
// are neither == nor hash-equal.
type Entity struct {
	ID         uint32
	Generation uint32
}

// String renders the entity as "id#generation" for logs and snapshots.
func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.ID, e.Generation)
}

// Allocator issues generational entity IDs with free-list reuse.
// Despawning an id increments its slot's generation, invalidating every
// outstanding handle that carries the old generation.
type Allocator struct {
	generations []uint32 // generations[id] == current generation for that id slot
	alive       []bool   // alive[id] == true iff id's current generation is live
	freeList    []uint32 // LIFO stack of despawned ids available for reuse

	spawnedCount   uint64
	despawnedCount uint64
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Reserve pre-sizes the allocator's backing storage for at least n ids.
func (a *Allocator) Reserve(n int) {
	if n <= cap(a.generations) {
		return
	}
	grown := make([]uint32, len(a.generations), n)
	copy(grown, a.generations)
	a.generations = grown

	grownAlive := make([]bool, len(a.alive), n)
	copy(grownAlive, a.alive)
	a.alive = grownAlive
}

// Spawn returns a fresh Entity. If the free list is non-empty, Spawn
// MUST consume from it: it pops LIFO, which
// is deterministic regardless of despawn recency.
func (a *Allocator) Spawn() Entity {
	var id uint32
	if n := len(a.freeList); n > 0 {
		id = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
	} else {
		id = uint32(len(a.generations))
		a.generations = append(a.generations, 0)
		a.alive = append(a.alive, false)
	}

	a.alive[id] = true
	a.spawnedCount++

	return Entity{ID: id, Generation: a.generations[id]}
}

// Despawn invalidates e if it is alive, incrementing its slot's
// generation and returning the id to the free list. Returns false if e was
// already dead.
func (a *Allocator) Despawn(e Entity) bool {
	if !a.IsAlive(e) {
		return false
	}

	a.alive[e.ID] = false
	a.generations[e.ID]++ // wraps to 0 on overflow by design
	a.freeList = append(a.freeList, e.ID)
	a.despawnedCount++

	return true
}

// IsAlive reports whether e's generation matches the allocator's
// current generation for e.ID: constant-time compare.
func (a *Allocator) IsAlive(e Entity) bool {
	if int(e.ID) >= len(a.generations) {
		return false
	}
	return a.alive[e.ID] && a.generations[e.ID] == e.Generation
}

// SpawnedCount returns the lifetime count of Spawn calls.
func (a *Allocator) SpawnedCount() uint64 { return a.spawnedCount }

// DespawnedCount returns the lifetime count of successful Despawn calls.
func (a *Allocator) DespawnedCount() uint64 { return a.despawnedCount }

// AliveCount returns spawned minus despawned.
func (a *Allocator) AliveCount() uint64 { return a.spawnedCount - a.despawnedCount }
