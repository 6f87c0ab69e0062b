package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Remap maps value from [inMin, inMax] onto [outMin, outMax], clamping at both ends.
func Remap(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	factor := Clamp((value-inMin)/(inMax-inMin), 0, 1)
	return Mix(outMin, outMax, factor)
}

func Mix(a, b, factor float64) float64 {
	return a*(1-factor) + factor*b
}

func EucledianDistance3D(one, two mgl64.Vec3) float64 {
	return one.Sub(two).Len()
}
