package spatial

// Partition is the world partition: the cell size policy shared by
// grid math, streaming, and the GPU budget, plus the convenience
// queries built on top of them.
type Partition struct {
	CellSize float64
	Manager  *Manager
	Budget   *GPUResourceBudget
}

// NewPartition wires a Manager and GPUResourceBudget together under a
// common cell size.
func NewPartition(cellSize float64, manager *Manager, budget *GPUResourceBudget) *Partition {
	return &Partition{CellSize: cellSize, Manager: manager, Budget: budget}
}

// CellContaining returns the GridCoord containing a world position.
func (p *Partition) CellContaining(x, y, z float64) GridCoord {
	return FromWorldPos(x, y, z, p.CellSize)
}

// CellsOverlapping enumerates every cell whose AABB intersects box.
func (p *Partition) CellsOverlapping(box AABB) []GridCoord {
	return box.OverlappingCells(p.CellSize)
}
