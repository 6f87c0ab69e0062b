package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestPointInPolygon(t *testing.T) {
	diamond := []mgl64.Vec2{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	assert.True(t, PointInPolygon(mgl64.Vec2{0, 0}, diamond))
	assert.True(t, PointInPolygon(mgl64.Vec2{0.4, 0.4}, diamond))
	assert.False(t, PointInPolygon(mgl64.Vec2{0.6, 0.6}, diamond))
	assert.False(t, PointInPolygon(mgl64.Vec2{0, 0}, nil))
}
