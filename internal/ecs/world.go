package ecs

import (
	"reflect"
	"sort"
)

// World aggregates the entity allocator, one ComponentStorage per
// component type, and process-wide resource singletons.
// Component storages are type-erased in the map but only ever accessed
// through the generic helper functions below, which downcast at the
// boundary — the only place type-erasure safety is the implementor's
// concern.
type World struct {
	Allocator *Allocator

	storages  map[reflect.Type]any
	resources map[reflect.Type]any
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		Allocator: NewAllocator(),
		storages:  make(map[reflect.Type]any),
		resources: make(map[reflect.Type]any),
	}
}

// removableByID is implemented by every ComponentStorage[T]; it lets
// Despawn clear an id's component from a type-erased storage.
type removableByID interface {
	removeByID(id uint32)
}

// Despawn invalidates e through the Allocator and strips its
// components from every registered storage, so no later ecs.Get/
// EachMut/query call can observe them even under a reused id. Returns
// false if e was already dead.
func (w *World) Despawn(e Entity) bool {
	if !w.Allocator.Despawn(e) {
		return false
	}
	for _, s := range w.storages {
		s.(removableByID).removeByID(e.ID)
	}
	return true
}

func storageKey[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// storageFor returns (creating if necessary) the ComponentStorage[T]
// for the world.
func storageFor[T any](w *World) *ComponentStorage[T] {
	key := storageKey[T]()
	if s, ok := w.storages[key]; ok {
		return s.(*ComponentStorage[T])
	}
	s := NewComponentStorage[T]()
	w.storages[key] = s
	return s
}

// Insert upserts component T for e.
func Insert[T any](w *World, e Entity, v T) {
	storageFor[T](w).Insert(e, v)
}

// Get returns component T for e, if present and e is still alive.
// Liveness is checked against the Allocator directly (not just the
// storage's own generation bookkeeping) so a dead entity never yields
// a stale component, even if something despawned it via the bare
// Allocator instead of World.Despawn.
func Get[T any](w *World, e Entity) (T, bool) {
	if !w.Allocator.IsAlive(e) {
		var zero T
		return zero, false
	}
	return storageFor[T](w).Get(e)
}

// Remove deletes component T from e, returning whether it was present.
// Removing one component never disturbs an entity's other components
// or its liveness because
// each component type lives in its own independent storage.
func Remove[T any](w *World, e Entity) bool {
	return storageFor[T](w).Remove(e)
}

// Count returns the number of entities holding component T.
func Count[T any](w *World) int {
	return storageFor[T](w).Count()
}

// EachMut visits every live entity holding T, in id order, allowing
// in-place mutation.
func EachMut[T any](w *World, f func(Entity, *T)) {
	storageFor[T](w).EachMut(func(e Entity, v *T) {
		if !w.Allocator.IsAlive(e) {
			return
		}
		f(e, v)
	})
}

// Query1Row is one row of a single-component query.
type Query1Row[A any] struct {
	Entity Entity
	A      A
}

// Query1 returns (Entity, &A) tuples for live entities, ordered by id.
func Query1[A any](w *World) []Query1Row[A] {
	sa := storageFor[A](w)
	rows := make([]Query1Row[A], 0, sa.Count())
	sa.Each(func(e Entity, a A) {
		if !w.Allocator.IsAlive(e) {
			return
		}
		rows = append(rows, Query1Row[A]{Entity: e, A: a})
	})
	return rows
}

// Query2Row is one row of a two-component join.
type Query2Row[A any, B any] struct {
	Entity Entity
	A      A
	B      B
}

// Query2 yields (Entity, &A, &B) for entities holding BOTH components,
// ordered by entity id.
func Query2[A any, B any](w *World) []Query2Row[A, B] {
	sa := storageFor[A](w)
	sb := storageFor[B](w)

	// Iterate A's id set and probe B directly — deterministic because
	// the final slice is sorted by id below.
	idsA := sa.EntitiesWith()
	rows := make([]Query2Row[A, B], 0)
	for _, e := range idsA {
		if !w.Allocator.IsAlive(e) {
			continue
		}
		bv, ok := sb.Get(e)
		if !ok {
			continue
		}
		av, _ := sa.Get(e)
		rows = append(rows, Query2Row[A, B]{Entity: e, A: av, B: bv})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Entity.ID < rows[j].Entity.ID })
	return rows
}

// FilteredQuery1 yields (Entity, &T) for which pred holds, ordered by
// entity id.
func FilteredQuery1[A any](w *World, pred func(Entity, A) bool) []Query1Row[A] {
	all := Query1[A](w)
	out := make([]Query1Row[A], 0, len(all))
	for _, row := range all {
		if pred(row.Entity, row.A) {
			out = append(out, row)
		}
	}
	return out
}

// resourceKeyOf is an identity helper with no callers; SetResource and
// GetResource key the resources map by storageKey[T], the static type T.
func resourceKeyOf(t reflect.Type) reflect.Type { return t }

// SetResource installs a process-wide singleton resource, keyed by its
// concrete type.
func SetResource[T any](w *World, v T) {
	key := storageKey[T]()
	w.resources[key] = v
}

// GetResource retrieves the resource of type T, if one has been set.
func GetResource[T any](w *World) (T, bool) {
	key := storageKey[T]()
	v, ok := w.resources[key]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), ok
}
