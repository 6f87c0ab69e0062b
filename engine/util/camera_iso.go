package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/voxel"
)

// Vert names the corners and centers of a projected cuboid.
type Vert int

const (
	VertCenter Vert = iota
	VertCenterDown
	VertBackDown
	VertRightDown
	VertFrontDown
	VertLeftDown
	VertCenterUp
	VertBackUp
	VertRightUp
	VertFrontUp
	VertLeftUp
	VertCount
)

var vertNames = [VertCount]string{
	"center", "centerDown", "backDown", "rightDown", "frontDown", "leftDown",
	"centerUp", "backUp", "rightUp", "frontUp", "leftUp",
}

func (v Vert) String() string {
	if v < 0 || v >= VertCount {
		return "unknown"
	}
	return vertNames[v]
}

type Dimensions struct {
	LeftToRight float64
	BackToFront float64
	DownToUp    float64
}

// SpriteFrame is the screen rectangle a cell sprite is drawn into. Origin is
// the back corner of the cell relative to the frame.
type SpriteFrame struct {
	X, Y          float64
	Width, Height float64
	MaxX, MaxY    float64
	Origin        mgl64.Vec2
}

// ISOProjection converts between grid space and screen pixels for a fixed
// camera. Grid x runs to the lower right of the screen, grid y to the lower
// left and z straight up.
type ISOProjection struct {
	scale   float64
	angle   float64
	zHeight float64
	padding float64

	tileW, tileH, tileZ float64
	halfW, halfH        float64
}

// NewISOProjection builds a projection. angle is the camera pitch in degrees
// and gets clamped to [0, 90].
func NewISOProjection(scale, angle, zHeight, padding float64) ISOProjection {
	angle = Clamp(angle, 0, 90)
	w := math.Floor(scale * 2)
	h := math.Floor(scale * angle / 45)
	topZ := math.Ceil(math.Hypot(w/2, h/2))
	z := math.Floor(Remap(angle, 45, 90, topZ, 0))
	return ISOProjection{
		scale:   scale,
		angle:   angle,
		zHeight: zHeight,
		padding: padding,
		tileW:   w,
		tileH:   h,
		tileZ:   z,
		halfW:   w / 2,
		halfH:   h / 2,
	}
}

func (p ISOProjection) Dimensions() Dimensions {
	return Dimensions{LeftToRight: p.tileW, BackToFront: p.tileH, DownToUp: p.tileZ}
}

// GridToScreen projects a point in grid space, z being height units.
func (p ISOProjection) GridToScreen(point mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{
		(point.X() - point.Y()) * p.halfW,
		(point.X()+point.Y())*p.halfH - point.Z()*p.tileZ + p.padding,
	}
}

func (p ISOProjection) CellToScreen(cell voxel.Int3) mgl64.Vec2 {
	return p.GridToScreen(cell.ToVec3())
}

// ScreenToSpace undoes GridToScreen for a screen point assumed to lie at
// the given height. The result is continuous.
func (p ISOProjection) ScreenToSpace(screen mgl64.Vec2, height float64) mgl64.Vec3 {
	x := 0.0
	if p.halfW != 0 {
		x = screen.X() / p.halfW
	}
	y := 0.0
	if p.halfH != 0 {
		y = (screen.Y() - p.padding + height*p.tileZ) / p.halfH
	}
	return mgl64.Vec3{(y + x) / 2, (y - x) / 2, height}
}

// ScreenToGrid returns the cell under a screen point at the given height.
func (p ISOProjection) ScreenToGrid(screen mgl64.Vec2, height float64) voxel.Int3 {
	space := p.ScreenToSpace(screen, height)
	const epsilon = 1e-9
	return voxel.Int3{
		X: int32(math.Floor(space.X() + epsilon)),
		Y: int32(math.Floor(space.Y() + epsilon)),
		Z: int32(math.Floor(height + epsilon)),
	}
}

// CuboidCorners returns the named vertices in grid space for a box of the
// given size standing on cell. The footprint is centered in the cell.
func (p ISOProjection) CuboidCorners(cell voxel.Int3, size mgl64.Vec3) [VertCount]mgl64.Vec3 {
	ox := (1 - size.X()) / 2
	oy := (1 - size.Y()) / 2
	x := size.X() + ox
	y := size.Y() + oy
	z := size.Z()
	cx := ox + size.X()/2
	cy := oy + size.Y()/2

	var verts [VertCount]mgl64.Vec3
	verts[VertCenter] = mgl64.Vec3{cx, cy, z / 2}
	verts[VertCenterDown] = mgl64.Vec3{cx, cy, 0}
	verts[VertBackDown] = mgl64.Vec3{ox, oy, 0}
	verts[VertRightDown] = mgl64.Vec3{x, oy, 0}
	verts[VertFrontDown] = mgl64.Vec3{x, y, 0}
	verts[VertLeftDown] = mgl64.Vec3{ox, y, 0}
	verts[VertCenterUp] = mgl64.Vec3{cx, cy, z}
	verts[VertBackUp] = mgl64.Vec3{ox, oy, z}
	verts[VertRightUp] = mgl64.Vec3{x, oy, z}
	verts[VertFrontUp] = mgl64.Vec3{x, y, z}
	verts[VertLeftUp] = mgl64.Vec3{ox, y, z}

	offset := cell.ToVec3()
	for i := range verts {
		verts[i] = verts[i].Add(offset)
	}
	return verts
}

// CuboidVertices is CuboidCorners projected to the screen.
func (p ISOProjection) CuboidVertices(cell voxel.Int3, size mgl64.Vec3) [VertCount]mgl64.Vec2 {
	var projected [VertCount]mgl64.Vec2
	for i, corner := range p.CuboidCorners(cell, size) {
		projected[i] = p.GridToScreen(corner)
	}
	return projected
}

// Silhouette is the clockwise outline of a projected cuboid.
func (p ISOProjection) Silhouette(cell voxel.Int3, size mgl64.Vec3) []mgl64.Vec2 {
	v := p.CuboidVertices(cell, size)
	return []mgl64.Vec2{
		v[VertBackUp],
		v[VertRightUp],
		v[VertRightDown],
		v[VertFrontDown],
		v[VertLeftDown],
		v[VertLeftUp],
	}
}

func (p ISOProjection) SpriteSize() (float64, float64) {
	width := p.padding*2 + p.tileW
	height := p.padding*2 + p.tileH + p.zHeight*p.tileZ
	return width, height
}

func (p ISOProjection) SpriteFrame(cell voxel.Int3) SpriteFrame {
	screen := p.CellToScreen(cell)
	width, height := p.SpriteSize()
	x := screen.X() - p.halfW - p.padding
	y := screen.Y() - p.padding - p.tileZ*p.zHeight
	return SpriteFrame{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		MaxX:   x + width,
		MaxY:   y + height,
		Origin: mgl64.Vec2{p.padding + p.halfW, height - p.tileH - p.padding},
	}
}

func (p ISOProjection) String() string {
	return fmt.Sprintf("ISO(scale=%0.1f angle=%0.1f zHeight=%0.1f padding=%0.1f tile=%0.0fx%0.0fx%0.0f)",
		p.scale, p.angle, p.zHeight, p.padding, p.tileW, p.tileH, p.tileZ)
}
