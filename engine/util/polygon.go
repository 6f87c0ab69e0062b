package util

import "github.com/go-gl/mathgl/mgl64"

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(point mgl64.Vec2, polygon []mgl64.Vec2) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X(), polygon[i].Y()
		xj, yj := polygon[j].X(), polygon[j].Y()

		if ((yi > point.Y()) != (yj > point.Y())) &&
			(point.X() < (xj-xi)*(point.Y()-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}
