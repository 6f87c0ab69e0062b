package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallWorld = `
camera:
  scale: 16
  angle: 60
  zHeight: 2
  padding: 8
pathing:
  diagonal: true
  cornerCutting: true
tileLegend:
  g: {type: grass, texture: grass, walkable: true, size: {x: 1, y: 1, z: 0.5}}
  w: {type: water, texture: water, walkable: false, size: {x: 1, y: 1, z: 0.35}}
tiles:
  - ggw
  - ggg
blockingLegend:
  "#": {type: terrain, texture: stone, size: {x: 1, y: 1, z: 2}}
  "@":
    type: character
    size: {x: 0.35, y: 0.35, z: 1.8}
    health: {min: 0, max: 20, current: 20}
    accuracy: 0.5
    damage: {min: 2, max: 4}
    direction: southEast
    stance: crouch
blocking:
  - "#.."
  - "..@"
`

func TestParseWorldConfig(t *testing.T) {
	config, err := ParseWorldConfig([]byte(smallWorld))
	require.NoError(t, err)

	assert.Equal(t, 3, config.Width)
	assert.Equal(t, 2, config.Height)
	assert.Equal(t, CameraConfig{Scale: 16, Angle: 60, ZHeight: 2, Padding: 8}, config.Camera)
	assert.True(t, config.Pathing.CornerCutting)

	character := config.BlockingLegend["@"]
	assert.Equal(t, grid.SouthEast, character.Direction)
	assert.Equal(t, StanceCrouch, character.Stance)
	assert.Equal(t, Damage{Min: 2, Max: 4}, character.Damage)

	occupant, err := character.NewOccupant()
	require.NoError(t, err)
	require.IsType(t, &Character{}, occupant)
	assert.True(t, strings.HasPrefix(occupant.GetBody().ID, "c."))
	assert.Equal(t, mgl64.Vec3{0.35, 0.35, 1.8}, occupant.GetBody().Size)
}

func TestParseWorldConfigDefaults(t *testing.T) {
	config, err := ParseWorldConfig([]byte(`
blockingLegend:
  "#": {type: terrain, size: {x: 1, y: 1, z: 2}}
blocking: ["#.", ".#"]
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultCamera(), config.Camera)
	assert.True(t, config.Pathing.Diagonal)
	tile, ok := config.TileFactory()(1, 1)
	require.True(t, ok)
	assert.True(t, tile.Walkable)
}

func TestParseWorldConfigErrors(t *testing.T) {
	cases := map[string]struct {
		yaml string
		want error
	}{
		"ragged rows": {
			yaml: "blockingLegend: {\"#\": {type: terrain}}\nblocking: [\"#..\", \"#.\"]",
			want: ErrRaggedMap,
		},
		"unknown symbol": {
			yaml: "blockingLegend: {\"#\": {type: terrain}}\nblocking: [\"#X\"]",
			want: ErrUnknownSymbol,
		},
		"unknown blocker type": {
			yaml: "blockingLegend: {\"#\": {type: tree}}\nblocking: [\"#\"]",
			want: ErrUnknownSymbol,
		},
		"missing tile rows": {
			yaml: "height: 2\ntileLegend: {g: {type: grass}}\ntiles: [\"g\"]",
			want: ErrRaggedMap,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWorldConfig([]byte(c.yaml))
			assert.Equal(t, c.want, errors.Cause(err))
		})
	}

	_, err := ParseWorldConfig([]byte("width: [1"))
	assert.Error(t, err)
	_, err = ParseWorldConfig([]byte("blockingLegend: {\"@\": {type: character, direction: up}}"))
	assert.Error(t, err)
}

func TestNewOccupantRejectsUnknownType(t *testing.T) {
	_, err := BlockerOptions{Type: "tree"}.NewOccupant()
	assert.Equal(t, ErrInvalidOccupant, errors.Cause(err))
}

func TestLoadWorldConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(file, []byte(smallWorld), 0o644))

	config, err := LoadWorldConfig(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"#..", "..@"}, config.Blocking)

	t.Setenv(ConfigEnv, file)
	fromEnv, err := LoadWorldConfig("")
	require.NoError(t, err)
	assert.Equal(t, config, fromEnv)

	t.Setenv(ConfigEnv, "")
	fallback, err := LoadWorldConfig("")
	require.NoError(t, err)
	assert.Equal(t, 15, fallback.Width)

	_, err = LoadWorldConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWorldConfigRoundTrip(t *testing.T) {
	data, err := DefaultWorldConfig().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "direction: north")

	parsed, err := ParseWorldConfig(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultWorldConfig(), parsed)
}

func TestDefaultWorldConfig(t *testing.T) {
	config := DefaultWorldConfig()

	require.Len(t, config.Tiles, 15)
	require.Len(t, config.Blocking, 15)
	characters := 0
	for _, row := range config.Blocking {
		characters += strings.Count(row, "@")
	}
	assert.Equal(t, 4, characters)
}

func TestGenerateWorldConfigIsDeterministic(t *testing.T) {
	first := GenerateWorldConfig(DefaultGeneratorConfig(7))
	second := GenerateWorldConfig(DefaultGeneratorConfig(7))
	other := GenerateWorldConfig(DefaultGeneratorConfig(8))

	assert.Equal(t, first.Tiles, second.Tiles)
	assert.Equal(t, first.Blocking, second.Blocking)
	assert.NotEqual(t, first.Tiles, other.Tiles)

	require.Len(t, first.Blocking, 15)
	characters := 0
	for y, row := range first.Blocking {
		require.Len(t, row, 15)
		for x, symbol := range row {
			if symbol == '@' {
				characters++
				assert.NotEqual(t, 'w', rune(first.Tiles[y][x]), "character on water at %d,%d", x, y)
			}
		}
	}
	assert.LessOrEqual(t, characters, 4)

	world, err := NewWorld(first, nil)
	require.NoError(t, err)
	assert.Len(t, world.Snapshot().Characters(), characters)
}

func TestParseWorldConfigWithGenerator(t *testing.T) {
	config, err := ParseWorldConfig([]byte(`
camera: {scale: 8, angle: 45, zHeight: 1, padding: 0}
generator: {seed: 3, width: 10, height: 6}
`))
	require.NoError(t, err)

	assert.Equal(t, 10, config.Width)
	assert.Equal(t, 6, config.Height)
	assert.Len(t, config.Tiles, 6)
	assert.Equal(t, 8.0, config.Camera.Scale)
	require.NotNil(t, config.Generator)
	assert.Equal(t, int64(3), config.Generator.Seed)
}
