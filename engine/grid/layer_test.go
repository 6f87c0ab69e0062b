package grid

import (
	"bytes"
	"testing"

	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type block struct {
	name   string
	height float64
}

func blockHeight(b *block) float64 {
	return b.height
}

func layerFromRows(rows []string) *Layer[*block] {
	return Build(len(rows[0]), len(rows), "p", func(x, y int) (*block, bool) {
		switch rows[y][x] {
		case '#':
			return &block{name: "wall", height: 2}, true
		case '=':
			return &block{name: "low", height: 1}, true
		}
		return nil, false
	})
}

func TestBuildLayer(t *testing.T) {
	layer := layerFromRows([]string{
		"#..",
		".=.",
	})

	require.Equal(t, 3, layer.Width())
	require.Equal(t, 2, layer.Height())

	ids := map[string]bool{}
	layer.Each(func(position *Position[*block]) {
		ids[position.ID] = true
		assert.Equal(t, int32(0), position.Point.Z)
	})
	assert.Len(t, ids, 6, "position ids are unique")

	wall, ok := layer.Content(0, 0)
	require.True(t, ok)
	assert.Equal(t, "wall", wall.name)
	assert.Equal(t, voxel.NewInt3(1, 1, 0), layer.At(1, 1).Point)

	_, ok = layer.Content(2, 0)
	assert.False(t, ok)
	assert.Nil(t, layer.At(3, 0))
}

func TestBuildEmptyLayer(t *testing.T) {
	layer := Build[*block](0, 4, "p", nil)

	assert.True(t, layer.IsEmpty())
	assert.Nil(t, layer.At(0, 0))
	count := 0
	layer.Each(func(*Position[*block]) { count++ })
	assert.Zero(t, count)
}

func TestClamp(t *testing.T) {
	layer := Build[*block](3, 2, "p", nil)

	x, y, inBounds := layer.Clamp(voxel.NewInt3(5, -1, 0))
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
	assert.False(t, inBounds)

	x, y, inBounds = layer.Clamp(voxel.NewInt3(1, 1, 0))
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
	assert.True(t, inBounds)
}

func TestCloneDoesNotShareContent(t *testing.T) {
	layer := layerFromRows([]string{"#."})
	clone := layer.Clone(func(b *block) *block {
		copied := *b
		return &copied
	})

	clonedWall, _ := clone.Content(0, 0)
	clonedWall.height = 7
	clone.At(1, 0).Set(&block{name: "new"})

	original, _ := layer.Content(0, 0)
	assert.Equal(t, 2.0, original.height)
	assert.True(t, layer.At(1, 0).IsEmpty())
}

func TestAdjacencyMatchesHeightExactly(t *testing.T) {
	layer := layerFromRows([]string{
		"##.",
		"#=.",
		"...",
	})

	corner := AdjacencyAt(layer, 0, 0, blockHeight)
	assert.True(t, corner.Connected(East))
	assert.True(t, corner.Connected(South))
	assert.False(t, corner.Connected(SouthEast), "a lower block is a seam")
	assert.False(t, corner.Connected(North), "outside the layer")

	low := AdjacencyAt(layer, 1, 1, blockHeight)
	for _, direction := range Compass {
		assert.False(t, low.Connected(direction), direction.String())
	}

	empty := AdjacencyAt(layer, 2, 2, blockHeight)
	assert.Equal(t, Adjacency{}, empty)
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, NorthEast, DirectionOf(voxel.NewInt3(1, -1, 0)))
	assert.Equal(t, South, DirectionOf(voxel.NewInt3(0, 1, 0)))
	assert.Equal(t, DirectionNone, DirectionOf(voxel.NewInt3(2, 0, 0)))
	assert.Equal(t, DirectionNone, DirectionOf(voxel.Int3{}))
}

func TestDirectionText(t *testing.T) {
	var direction Direction
	require.NoError(t, direction.UnmarshalText([]byte("southWest")))
	assert.Equal(t, SouthWest, direction)
	assert.True(t, direction.IsDiagonal())

	text, err := West.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "west", string(text))

	assert.Error(t, direction.UnmarshalText([]byte("up")))
}

func TestDeriveAdjacencyVisitsOccupiedCells(t *testing.T) {
	layer := layerFromRows([]string{"##", "=."})
	var derived []Adjacency

	DeriveAdjacency(layer, blockHeight, func(b *block, adjacent Adjacency) {
		if b.name == "wall" {
			derived = append(derived, adjacent)
		}
	})

	require.Len(t, derived, 2)
	assert.True(t, derived[0].Connected(East))
	assert.False(t, derived[0].Connected(South), "a lower block is a seam")
	assert.True(t, derived[1].Connected(West))
}

func TestBuildLogsAtDebugLevel(t *testing.T) {
	var logged bytes.Buffer
	previous := util.SetLogOutput(&logged)
	defer util.SetLogOutput(previous)
	util.SetLogFilter(util.LogLevelDebug, util.LogGrid)
	defer util.SetLogFilter(util.LogLevelInfo, util.LogWorld|util.LogConfig)

	Build[*block](3, 2, "t", nil)

	assert.Equal(t, "[Grid] built t layer 3x2\n", logged.String())
}
