package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/voxel"
)

// DefaultMaxDistance is the horizon a ray has to reach to count as unobstructed.
const DefaultMaxDistance = 64.0

type RayHit[T any] struct {
	Hit      T
	HasHit   bool
	Complete bool
	// Point is where the ray was when the query reported a hit.
	Point mgl64.Vec3
	// Normal faces back against the axis that was stepped last. Zero for a hit in the start cell.
	Normal   mgl64.Vec3
	Cell     voxel.Int3
	Distance float64
}

// TraceRay walks the ray cell by cell and asks query about every cell it
// enters, passing the cell and the ray position at the moment of entry.
// Ties between axes are stepped in x, z, y order.
// adapted from: https://github.com/fenomas/fast-voxel-raycast/blob/master/index.js
func TraceRay[T any](origin, direction mgl64.Vec3, maxDistance float64, query func(cell voxel.Int3, point mgl64.Vec3) (T, bool)) RayHit[T] {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	length := direction.Len()
	if length < 1e-8 || math.IsNaN(length) {
		return RayHit[T]{Complete: true, Point: origin}
	}
	rayDir := direction.Mul(1 / length)

	t := 0.0
	ix := int32(math.Floor(origin.X()))
	iy := int32(math.Floor(origin.Y()))
	iz := int32(math.Floor(origin.Z()))

	stepx, txDelta, txMax := axisSetup(origin.X(), rayDir.X(), ix)
	stepy, tyDelta, tyMax := axisSetup(origin.Y(), rayDir.Y(), iy)
	stepz, tzDelta, tzMax := axisSetup(origin.Z(), rayDir.Z(), iz)

	var normal mgl64.Vec3
	for t <= maxDistance {
		cell := voxel.Int3{X: ix, Y: iy, Z: iz}
		point := origin.Add(rayDir.Mul(t))
		if hit, isHit := query(cell, point); isHit {
			return RayHit[T]{
				Hit:      hit,
				HasHit:   true,
				Point:    point,
				Normal:   normal,
				Cell:     cell,
				Distance: t,
			}
		}

		if txMax <= tyMax && txMax <= tzMax {
			ix += stepx
			t = txMax
			txMax += txDelta
			normal = mgl64.Vec3{float64(-stepx), 0, 0}
		} else if tzMax <= tyMax {
			iz += stepz
			t = tzMax
			tzMax += tzDelta
			normal = mgl64.Vec3{0, 0, float64(-stepz)}
		} else {
			iy += stepy
			t = tyMax
			tyMax += tyDelta
			normal = mgl64.Vec3{0, float64(-stepy), 0}
		}
	}

	return RayHit[T]{
		Complete: true,
		Point:    origin.Add(rayDir.Mul(maxDistance)),
		Distance: maxDistance,
	}
}

// axisSetup returns the step direction, the ray length between two boundary
// crossings and the ray length to the first crossing for one axis.
func axisSetup(start, dir float64, cell int32) (int32, float64, float64) {
	step := int32(-1)
	if dir > 0 {
		step = 1
	}
	delta := math.Inf(1)
	if dir != 0 {
		delta = math.Abs(1 / dir)
	}
	dist := start - float64(cell)
	if step > 0 {
		dist = float64(cell+1) - start
	}
	tMax := math.Inf(1)
	if delta < math.Inf(1) {
		tMax = delta * dist
	}
	return step, delta, tMax
}
