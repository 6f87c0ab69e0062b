package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Int3 is an integer grid coordinate. Layers are flat, so Z is the height
// above the grid plane and is zero for every position.
type Int3 struct {
	X, Y, Z int32
}

func NewInt3(x, y, z int) Int3 {
	return Int3{X: int32(x), Y: int32(y), Z: int32(z)}
}

func (i Int3) Add(other Int3) Int3 {
	return Int3{i.X + other.X, i.Y + other.Y, i.Z + other.Z}
}

func (i Int3) Sub(tr Int3) Int3 {
	return Int3{i.X - tr.X, i.Y - tr.Y, i.Z - tr.Z}
}

func (i Int3) Mul(factor int32) Int3 {
	i.X *= factor
	i.Y *= factor
	i.Z *= factor
	return i
}

// Flat drops the height component.
func (i Int3) Flat() Int3 {
	return Int3{X: i.X, Y: i.Y}
}

func (i Int3) ToVec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(i.X), float64(i.Y), float64(i.Z)}
}

// ToCellCenterVec3 returns the center of the cell's footprint at the cell's height.
func (i Int3) ToCellCenterVec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(i.X) + 0.5, float64(i.Y) + 0.5, float64(i.Z)}
}

func (i Int3) ToString() string {
	return fmt.Sprintf("%d,%d,%d", i.X, i.Y, i.Z)
}

func (i Int3) String() string {
	return i.ToString()
}

func ToGridInt3(pos mgl64.Vec3) Int3 {
	return Int3{int32(math.Floor(pos.X())), int32(math.Floor(pos.Y())), int32(math.Floor(pos.Z()))}
}

func ManhattanDistance2(a, b Int3) int32 {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}

func Abs(i int32) int32 {
	if i < 0 {
		return -i
	}
	return i
}
