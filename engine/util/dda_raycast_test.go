package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidAt(solid ...voxel.Int3) func(cell voxel.Int3, point mgl64.Vec3) (voxel.Int3, bool) {
	return func(cell voxel.Int3, point mgl64.Vec3) (voxel.Int3, bool) {
		for _, s := range solid {
			if s == cell {
				return cell, true
			}
		}
		return voxel.Int3{}, false
	}
}

func TestTraceRayHitsFirstSolidCell(t *testing.T) {
	hit := TraceRay(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}, 0, solidAt(voxel.NewInt3(3, 0, 0), voxel.NewInt3(5, 0, 0)))

	require.True(t, hit.HasHit)
	assert.False(t, hit.Complete)
	assert.Equal(t, voxel.NewInt3(3, 0, 0), hit.Hit)
	assert.InDelta(t, 3.0, hit.Point.X(), 1e-9)
	assert.InDelta(t, 2.5, hit.Distance, 1e-9)
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, hit.Normal)
}

func TestTraceRayEscapes(t *testing.T) {
	visited := 0
	hit := TraceRay(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 2, 0}, 10, func(cell voxel.Int3, point mgl64.Vec3) (struct{}, bool) {
		visited++
		return struct{}{}, false
	})

	assert.True(t, hit.Complete)
	assert.False(t, hit.HasHit)
	assert.Equal(t, 11, visited, "start cell plus ten boundary crossings")
}

func TestTraceRayZeroDirectionIsComplete(t *testing.T) {
	called := false
	hit := TraceRay(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}, 0, func(cell voxel.Int3, point mgl64.Vec3) (bool, bool) {
		called = true
		return true, true
	})

	assert.True(t, hit.Complete)
	assert.False(t, called)
}

func TestTraceRayTiePriority(t *testing.T) {
	var cells []voxel.Int3
	TraceRay(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 1, 1}, 1, func(cell voxel.Int3, point mgl64.Vec3) (bool, bool) {
		cells = append(cells, cell)
		return false, false
	})

	require.GreaterOrEqual(t, len(cells), 4)
	assert.Equal(t, []voxel.Int3{
		voxel.NewInt3(0, 0, 0),
		voxel.NewInt3(1, 0, 0),
		voxel.NewInt3(1, 0, 1),
		voxel.NewInt3(1, 1, 1),
	}, cells[:4])
}

func TestTraceRayNegativeDirection(t *testing.T) {
	hit := TraceRay(mgl64.Vec3{4.5, 2.5, 0.5}, mgl64.Vec3{-1, 0, 0}, 0, solidAt(voxel.NewInt3(1, 2, 0)))

	require.True(t, hit.HasHit)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, hit.Normal)
	assert.InDelta(t, 2.0, hit.Point.X(), 1e-9)
}

func TestTraceRayIsDeterministic(t *testing.T) {
	origin := mgl64.Vec3{0.5, 0.5, 1.8}
	direction := mgl64.Vec3{2.5, 1.5, -1.8}
	query := solidAt(voxel.NewInt3(2, 1, 0))

	first := TraceRay(origin, direction, 0, query)
	second := TraceRay(origin, direction, 0, query)

	assert.Equal(t, first, second)
}

// execute with: go test -bench=. -test.benchmem
func BenchmarkTraceRay(b *testing.B) {
	query := solidAt(voxel.NewInt3(40, 30, 0))
	origin := mgl64.Vec3{0.5, 0.5, 1.8}
	direction := mgl64.Vec3{40, 30, -1.8}
	for i := 0; i < b.N; i++ {
		_ = TraceRay(origin, direction, 0, query)
	}
}
