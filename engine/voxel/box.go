package voxel

import "github.com/go-gl/mathgl/mgl64"

// TopTolerance is shaved off the top face for hit tests, so rays grazing the
// exact top of a box pass over it instead of flickering between hit and miss.
const TopTolerance = 0.1

// Box is an axis aligned volume spanning [Origin, Origin+Size].
type Box struct {
	Origin mgl64.Vec3
	Size   mgl64.Vec3
}

func NewBox(origin, size mgl64.Vec3) Box {
	return Box{Origin: origin, Size: size}
}

func (b Box) Min() mgl64.Vec3 {
	return b.Origin
}

func (b Box) Max() mgl64.Vec3 {
	return b.Origin.Add(b.Size)
}

// Contains reports whether point lies inside the box. The side and bottom faces
// are inclusive, the top face is lowered by TopTolerance.
func (b Box) Contains(point mgl64.Vec3) bool {
	minVal := b.Min()
	maxVal := b.Max()
	return point.X() >= minVal.X() && point.X() <= maxVal.X() &&
		point.Y() >= minVal.Y() && point.Y() <= maxVal.Y() &&
		point.Z() >= minVal.Z() && point.Z() <= maxVal.Z()-TopTolerance
}

// Corners returns the four bottom corners followed by the four top corners,
// both rings in back, right, front, left order.
func (b Box) Corners() [8]mgl64.Vec3 {
	minVal := b.Min()
	maxVal := b.Max()
	return [8]mgl64.Vec3{
		{minVal.X(), minVal.Y(), minVal.Z()},
		{maxVal.X(), minVal.Y(), minVal.Z()},
		{maxVal.X(), maxVal.Y(), minVal.Z()},
		{minVal.X(), maxVal.Y(), minVal.Z()},
		{minVal.X(), minVal.Y(), maxVal.Z()},
		{maxVal.X(), minVal.Y(), maxVal.Z()},
		{maxVal.X(), maxVal.Y(), maxVal.Z()},
		{minVal.X(), maxVal.Y(), maxVal.Z()},
	}
}

// FootprintCorners returns the four corners of the cell's unit square at z = 0.
func FootprintCorners(cell Int3) [4]mgl64.Vec3 {
	x, y := float64(cell.X), float64(cell.Y)
	return [4]mgl64.Vec3{
		{x, y, 0},
		{x + 1, y, 0},
		{x + 1, y + 1, 0},
		{x, y + 1, 0},
	}
}
