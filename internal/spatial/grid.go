// Package spatial implements the World Partition & Streaming
// subsystem: grid coordinates, axis-aligned bounding
// boxes, the cell load/unload state machine, and the GPU memory
// budget that backs it.
package spatial

import "math"

// GridCoord identifies one cell of the world partition.
type GridCoord struct {
	X, Y, Z int32
}

// FromWorldPos computes the GridCoord containing pos at the given
// cell size, using floor division per axis so negative positions
// round toward −∞ rather than toward zero.
func FromWorldPos(x, y, z float64, cellSize float64) GridCoord {
	return GridCoord{
		X: floorDiv32(x, cellSize),
		Y: floorDiv32(y, cellSize),
		Z: floorDiv32(z, cellSize),
	}
}

func floorDiv32(v, cellSize float64) int32 {
	return int32(math.Floor(v / cellSize))
}

// ToWorldCenter returns the world-space center of c at cellSize:
// coord*cell_size + cell_size/2 per axis.
func (c GridCoord) ToWorldCenter(cellSize float64) (x, y, z float64) {
	half := cellSize / 2
	return float64(c.X)*cellSize + half, float64(c.Y)*cellSize + half, float64(c.Z)*cellSize + half
}

// Neighbors2D yields the 8-cell Moore neighborhood in the X/Z plane,
// holding Y fixed.
func (c GridCoord) Neighbors2D() []GridCoord {
	out := make([]GridCoord, 0, 8)
	for dz := int32(-1); dz <= 1; dz++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			out = append(out, GridCoord{X: c.X + dx, Y: c.Y, Z: c.Z + dz})
		}
	}
	return out
}

// Neighbors3D yields all 26 surrounding cells.
func (c GridCoord) Neighbors3D() []GridCoord {
	out := make([]GridCoord, 0, 26)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out = append(out, GridCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz})
			}
		}
	}
	return out
}
