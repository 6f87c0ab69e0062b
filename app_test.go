package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/memmaker/isotactics/engine/path"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/memmaker/isotactics/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarthestWalkable(t *testing.T) {
	g := path.Grid{
		{0, 0, 1},
		{0, 1, 1},
	}

	assert.Equal(t, voxel.NewInt3(1, 0, 0), farthestWalkable(g, voxel.NewInt3(0, 1, 0)))
	assert.Equal(t, voxel.NewInt3(5, 5, 0), farthestWalkable(path.Grid{{1}}, voxel.NewInt3(5, 5, 0)))
}

func TestRunDemo(t *testing.T) {
	world, err := game.NewWorld(game.DefaultWorldConfig(), nil, game.WithSeed(3))
	require.NoError(t, err)
	var out bytes.Buffer

	require.NoError(t, runDemo(context.Background(), world, 1, &out))

	assert.Contains(t, out.String(), "now crouch")
	assert.Error(t, runDemo(context.Background(), world, 9, &out))
}

func TestLoadConfigGenerates(t *testing.T) {
	config, err := loadConfig("", true, 5)
	require.NoError(t, err)
	require.NotNil(t, config.Generator)
	assert.Equal(t, int64(5), config.Generator.Seed)
}
