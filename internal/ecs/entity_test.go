package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocator_Spawn_ShouldAssignSequentialIDs_WhenNoFreeListEntries(t *testing.T) {
	a := NewAllocator()

	e0 := a.Spawn()
	e1 := a.Spawn()
	e2 := a.Spawn()

	assert.Equal(t, Entity{ID: 0, Generation: 0}, e0)
	assert.Equal(t, Entity{ID: 1, Generation: 0}, e1)
	assert.Equal(t, Entity{ID: 2, Generation: 0}, e2)
	assert.EqualValues(t, 3, a.AliveCount())
}

func TestAllocator_Despawn_ShouldInvalidateOldHandle_AndBumpGeneration(t *testing.T) {
	a := NewAllocator()
	e := a.Spawn()

	ok := a.Despawn(e)

	assert.True(t, ok)
	assert.False(t, a.IsAlive(e))
	assert.EqualValues(t, 0, a.AliveCount())
}

func TestAllocator_Despawn_ShouldReturnFalse_WhenAlreadyDead(t *testing.T) {
	a := NewAllocator()
	e := a.Spawn()
	a.Despawn(e)

	ok := a.Despawn(e)

	assert.False(t, ok)
}

func TestAllocator_Spawn_ShouldReuseFreedSlot_WithBumpedGeneration(t *testing.T) {
	a := NewAllocator()
	e0 := a.Spawn()
	a.Despawn(e0)

	reused := a.Spawn()

	assert.Equal(t, e0.ID, reused.ID)
	assert.Equal(t, e0.Generation+1, reused.Generation)
	assert.False(t, a.IsAlive(e0), "stale handle must not report alive after reuse")
	assert.True(t, a.IsAlive(reused))
}

func TestAllocator_Spawn_ShouldPopFreeListLIFO_WhenMultipleSlotsFreed(t *testing.T) {
	a := NewAllocator()
	e0 := a.Spawn()
	e1 := a.Spawn()
	a.Despawn(e0)
	a.Despawn(e1)

	reused := a.Spawn()

	assert.Equal(t, e1.ID, reused.ID, "LIFO free list must hand back the most recently freed id first")
}

func TestAllocator_IsAlive_ShouldReturnFalse_ForNeverSpawnedID(t *testing.T) {
	a := NewAllocator()

	assert.False(t, a.IsAlive(Entity{ID: 42, Generation: 0}))
}
