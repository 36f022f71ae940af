package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABB_ContainsPoint_ShouldIncludeBoundary(t *testing.T) {
	box := AABB{MinX: 0, MinY: 0, MinZ: 0, MaxX: 10, MaxY: 10, MaxZ: 10}

	assert.True(t, box.ContainsPoint(10, 10, 10))
	assert.True(t, box.ContainsPoint(0, 0, 0))
	assert.False(t, box.ContainsPoint(10.1, 0, 0))
}

func TestAABB_Intersects_ShouldDetectOverlap(t *testing.T) {
	a := AABB{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}
	b := AABB{MinX: 5, MaxX: 15, MinY: 5, MaxY: 15, MinZ: 5, MaxZ: 15}

	assert.True(t, a.Intersects(b))
}

func TestAABB_Intersects_ShouldDetectSeparation(t *testing.T) {
	a := AABB{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}
	b := AABB{MinX: 20, MaxX: 30, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}

	assert.False(t, a.Intersects(b))
}

func TestAABB_OverlappingCells_ShouldEnumerateEveryCellInRange(t *testing.T) {
	box := AABB{MinX: 0, MaxX: 19, MinY: 0, MaxY: 0, MinZ: 0, MaxZ: 0}

	cells := box.OverlappingCells(10)

	assert.Len(t, cells, 2)
}

func TestCellAABB_ShouldCoverExactlyOneCellWidth(t *testing.T) {
	box := CellAABB(GridCoord{X: 1, Y: 0, Z: 0}, 10)

	assert.Equal(t, 10.0, box.MinX)
	assert.Equal(t, 20.0, box.MaxX)
}

func TestAABB_Distance_ShouldBeZero_AtCenter(t *testing.T) {
	box := AABB{MinX: -5, MaxX: 5, MinY: -5, MaxY: 5, MinZ: -5, MaxZ: 5}

	assert.Equal(t, 0.0, box.Distance(0, 0, 0))
}

func TestAABB_Distance_ShouldMeasureFromCenterToPoint(t *testing.T) {
	box := AABB{MinX: 0, MaxX: 0, MinY: 0, MaxY: 0, MinZ: 0, MaxZ: 0}

	assert.Equal(t, 5.0, box.Distance(3, 4, 0))
}
