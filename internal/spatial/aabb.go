package spatial

import "math"

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// ContainsPoint reports whether (x,y,z) lies within the box using
// closed intervals on every axis.
func (b AABB) ContainsPoint(x, y, z float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY &&
		z >= b.MinZ && z <= b.MaxZ
}

// Intersects reports whether b and other overlap, via the standard
// separating-axis test for AABBs.
func (b AABB) Intersects(other AABB) bool {
	if b.MaxX < other.MinX || other.MaxX < b.MinX {
		return false
	}
	if b.MaxY < other.MinY || other.MaxY < b.MinY {
		return false
	}
	if b.MaxZ < other.MinZ || other.MaxZ < b.MinZ {
		return false
	}
	return true
}

// OverlappingCells enumerates every GridCoord at cellSize whose cell
// AABB intersects b.
func (b AABB) OverlappingCells(cellSize float64) []GridCoord {
	minCoord := FromWorldPos(b.MinX, b.MinY, b.MinZ, cellSize)
	maxCoord := FromWorldPos(b.MaxX, b.MaxY, b.MaxZ, cellSize)

	var out []GridCoord
	for x := minCoord.X; x <= maxCoord.X; x++ {
		for y := minCoord.Y; y <= maxCoord.Y; y++ {
			for z := minCoord.Z; z <= maxCoord.Z; z++ {
				out = append(out, GridCoord{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// CellAABB returns the world-space AABB covering grid cell c at
// cellSize, used by Intersects-based range queries against cell
// bounds.
func CellAABB(c GridCoord, cellSize float64) AABB {
	return AABB{
		MinX: float64(c.X) * cellSize, MaxX: float64(c.X+1) * cellSize,
		MinY: float64(c.Y) * cellSize, MaxY: float64(c.Y+1) * cellSize,
		MinZ: float64(c.Z) * cellSize, MaxZ: float64(c.Z+1) * cellSize,
	}
}

// Distance returns the Euclidean distance from the AABB's center to
// (x,y,z), used by the GPU budget's furthest-first eviction policy.
func (b AABB) Distance(x, y, z float64) float64 {
	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	cz := (b.MinZ + b.MaxZ) / 2
	dx, dy, dz := cx-x, cy-y, cz-z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
