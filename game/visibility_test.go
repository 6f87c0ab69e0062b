package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisionInOpenField(t *testing.T) {
	layer := testBlocking(t,
		"...",
		".@.",
		"...",
	)

	character := characterAt(t, layer.Snapshot(), 1, 1)

	require.Len(t, character.Vision, 3)
	for y, row := range character.Vision {
		require.Len(t, row, 3)
		for x, value := range row {
			assert.Equal(t, 1.0, value, "cell %d,%d", x, y)
		}
	}
}

func TestWallHidesTileBehindIt(t *testing.T) {
	layer := testBlocking(t, "@#.")

	character := characterAt(t, layer.Snapshot(), 0, 0)

	assert.Equal(t, [][]float64{{1, 0.25, 0}}, character.Vision)
	assert.Greater(t, character.VisibilityAt(1, 0), 0.0)
	assert.Equal(t, 0.0, character.VisibilityAt(2, 0))
	assert.Equal(t, 0.0, character.VisibilityAt(9, 9))
}

func TestOwnCellIsAlwaysVisible(t *testing.T) {
	layer := testBlocking(t,
		"###",
		"#@#",
		"###",
	)
	crouch := StanceCrouch
	require.NoError(t, layer.Dispatch(ActionUpdate{Entries: []UpdateEntry{UpdateWith(pt(1, 1), Change{Stance: &crouch})}}))

	character := characterAt(t, layer.Snapshot(), 1, 1)

	assert.Equal(t, 1.0, character.VisibilityAt(1, 1))
}

func TestEnclosedCharacterSeesNothingBeyondTheWalls(t *testing.T) {
	layer := testBlocking(t,
		".....",
		".###.",
		".#@#.",
		".###.",
		".....",
	)

	character := characterAt(t, layer.Snapshot(), 2, 2)

	assert.Equal(t, 1.0, character.VisibilityAt(2, 2))
	for _, cell := range [][2]int{{0, 0}, {4, 4}, {2, 0}, {0, 2}, {4, 1}} {
		assert.Equal(t, 0.0, character.VisibilityAt(cell[0], cell[1]), "cell %v", cell)
	}
	for y, row := range character.Vision {
		for x, value := range row {
			assert.GreaterOrEqual(t, value, 0.0, "cell %d,%d", x, y)
			assert.LessOrEqual(t, value, 1.0, "cell %d,%d", x, y)
		}
	}
}

func TestVisionValuesAreQuarterSteps(t *testing.T) {
	layer := testBlocking(t,
		"@....",
		"..#..",
		".=...",
		"....@",
	)

	for _, character := range layer.Snapshot().Characters() {
		for _, row := range character.Vision {
			for _, value := range row {
				steps := value / VisibilityStep
				assert.Equal(t, float64(int(steps)), steps, "%v is not a multiple of %v", value, VisibilityStep)
			}
		}
	}
}

func TestBoxVisibility(t *testing.T) {
	cases := map[int]float64{0: 0, 1: 0, 2: 0.25, 3: 0.25, 4: 0.5, 7: 0.75, 8: 1}
	for corners, want := range cases {
		assert.Equal(t, want, BoxVisibility(corners), "%d corners", corners)
	}
}

func TestVisionOfEmptyGrid(t *testing.T) {
	deriver := NewVisibilityDeriver(0)
	layer := grid.Build[Occupant](0, 0, "p", nil)

	vision := deriver.VisionOf(layer, NewCharacter(mgl64.Vec3{0.35, 0.35, 1.8}))

	assert.Empty(t, vision)
	assert.NoError(t, deriver.Derive(layer))
	assert.Equal(t, 64.0, deriver.MaxDistance())
}

func TestEyePositionFollowsStance(t *testing.T) {
	character := NewCharacter(mgl64.Vec3{0.35, 0.35, 1.8})
	character.Point = voxel.NewInt3(2, 3, 0)

	assert.Equal(t, mgl64.Vec3{2.5, 3.5, 1.8}, character.EyePosition())
	character.Stance = StanceCrouch
	assert.Equal(t, mgl64.Vec3{2.5, 3.5, 0.9}, character.EyePosition())
	character.Stance = StanceCrawl
	assert.Equal(t, 1.8, character.EffectiveHeight())
}

func TestCanSee(t *testing.T) {
	open := testBlocking(t, "@.@")
	blocked := testBlocking(t, "@#@")
	low := testBlocking(t, "@=@")

	canSee := func(layer *BlockingLayer) bool {
		snapshot := layer.Snapshot()
		observer := characterAt(t, snapshot, 0, 0)
		target := characterAt(t, snapshot, 2, 0)
		return NewVisibilityDeriver(0).CanSee(snapshot, observer, target)
	}

	assert.True(t, canSee(open))
	assert.False(t, canSee(blocked))
	assert.True(t, canSee(low), "standing characters look over a low wall")

	crouch := StanceCrouch
	require.NoError(t, low.Dispatch(ActionUpdate{Entries: []UpdateEntry{
		UpdateWith(pt(0, 0), Change{Stance: &crouch}),
		UpdateWith(pt(2, 0), Change{Stance: &crouch}),
	}}))
	assert.False(t, canSee(low), "crouching behind a low wall")

	crawl := StanceCrawl
	require.NoError(t, low.Dispatch(ActionUpdate{Entries: []UpdateEntry{
		UpdateWith(pt(0, 0), Change{Stance: &crawl}),
		UpdateWith(pt(2, 0), Change{Stance: &crawl}),
	}}))
	assert.False(t, canSee(low), "crawling behind a low wall")
}

func TestSightPositionIsLowerForAnyStanceButStanding(t *testing.T) {
	character := NewCharacter(mgl64.Vec3{0.35, 0.35, 1.8})
	character.Point = voxel.NewInt3(2, 3, 0)

	assert.Equal(t, mgl64.Vec3{2.5, 3.5, 1.8}, character.SightPosition())
	character.Stance = StanceCrouch
	assert.Equal(t, mgl64.Vec3{2.5, 3.5, 0.9}, character.SightPosition())
	character.Stance = StanceCrawl
	assert.Equal(t, mgl64.Vec3{2.5, 3.5, 0.9}, character.SightPosition())
	assert.Equal(t, mgl64.Vec3{2.5, 3.5, 1.8}, character.EyePosition(), "vision keeps full height when crawling")
}
