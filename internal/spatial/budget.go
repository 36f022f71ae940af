package spatial

import "sort"

// CellGPUResources is the GPU footprint of one loaded cell.
type CellGPUResources struct {
	MemoryUsage int64
	Center      AABB // used to compute distance for furthest-first eviction
}

// GPUBudgetStats is the point-in-time view returned by Stats:
// total allocated, max budget, active cells, and utilization percent.
type GPUBudgetStats struct {
	TotalAllocated     int64
	MaxBudget          int64
	ActiveCells        int
	UtilizationPercent float64
}

// GPUResourceBudget tracks GPU memory usage per loaded cell and
// evicts the furthest cells from a reference point when an
// allocation would overflow the budget. Single-writer, so no internal
// locking — callers serialize access.
type GPUResourceBudget struct {
	maxMemoryBytes int64
	currentUsage   int64
	cells          map[GridCoord]CellGPUResources
}

// NewGPUResourceBudget creates a budget with the given byte ceiling.
func NewGPUResourceBudget(maxMemoryBytes int64) *GPUResourceBudget {
	return &GPUResourceBudget{maxMemoryBytes: maxMemoryBytes, cells: make(map[GridCoord]CellGPUResources)}
}

// CanAllocate reports whether bytes more can be allocated without
// exceeding the budget.
func (b *GPUResourceBudget) CanAllocate(bytes int64) bool {
	return b.currentUsage+bytes <= b.maxMemoryBytes
}

// AllocateCell records coord's GPU footprint. If the allocation would
// overflow the budget, cells are evicted furthest-first from
// (refX,refY,refZ) until it fits; if even evicting every other cell
// cannot make room, the allocation fails and nothing changes.
func (b *GPUResourceBudget) AllocateCell(coord GridCoord, resources CellGPUResources, refX, refY, refZ float64) bool {
	if _, exists := b.cells[coord]; exists {
		return true
	}

	if !b.CanAllocate(resources.MemoryUsage) {
		if resources.MemoryUsage > b.maxMemoryBytes {
			return false
		}
		b.evictFurthestUntilFits(resources.MemoryUsage, coord, refX, refY, refZ)
		if !b.CanAllocate(resources.MemoryUsage) {
			return false
		}
	}

	b.cells[coord] = resources
	b.currentUsage += resources.MemoryUsage
	return true
}

func (b *GPUResourceBudget) evictFurthestUntilFits(need int64, exclude GridCoord, refX, refY, refZ float64) {
	type candidate struct {
		coord GridCoord
		dist  float64
	}
	candidates := make([]candidate, 0, len(b.cells))
	for coord, res := range b.cells {
		if coord == exclude {
			continue
		}
		candidates = append(candidates, candidate{coord: coord, dist: res.Center.Distance(refX, refY, refZ)})
	}
	// Furthest first; tie-break by coordinate for determinism.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist > candidates[j].dist
		}
		return coordLess(candidates[i].coord, candidates[j].coord)
	})

	for _, cand := range candidates {
		if b.CanAllocate(need) {
			return
		}
		b.UnloadCell(cand.coord)
	}
}

func coordLess(a, b GridCoord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// UnloadCell decrements current usage by coord's recorded memory usage
// and removes the entry. A no-op if coord is not
// currently tracked.
func (b *GPUResourceBudget) UnloadCell(coord GridCoord) {
	res, ok := b.cells[coord]
	if !ok {
		return
	}
	b.currentUsage -= res.MemoryUsage
	delete(b.cells, coord)
}

// Stats returns a consistent snapshot of the budget's usage.
func (b *GPUResourceBudget) Stats() GPUBudgetStats {
	var utilization float64
	if b.maxMemoryBytes > 0 {
		utilization = float64(b.currentUsage) / float64(b.maxMemoryBytes) * 100
	}
	return GPUBudgetStats{
		TotalAllocated:     b.currentUsage,
		MaxBudget:          b.maxMemoryBytes,
		ActiveCells:        len(b.cells),
		UtilizationPercent: utilization,
	}
}
