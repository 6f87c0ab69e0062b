package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/voxel"
)

// Tile is a floor cell. Tiles never change after the layer is built.
type Tile struct {
	ID       string
	Point    voxel.Int3
	Size     mgl64.Vec3
	Type     string
	Texture  string
	Color    string
	Walkable bool
	Adjacent grid.Adjacency
}

type TileFactory func(x, y int) (*Tile, bool)

// TileLayer is the static floor. Adjacency is computed once on construction.
type TileLayer struct {
	layer *grid.Layer[*Tile]
	byID  map[string]*Tile
}

func NewTileLayer(width, height int, factory TileFactory) *TileLayer {
	layer := grid.Build(width, height, "t", func(x, y int) (*Tile, bool) {
		if factory == nil {
			return nil, false
		}
		tile, ok := factory(x, y)
		if !ok || tile == nil {
			return nil, false
		}
		placed := *tile
		placed.Point = voxel.NewInt3(x, y, 0)
		return &placed, true
	})
	grid.DeriveAdjacency(layer, func(t *Tile) float64 {
		return t.Size.Z()
	}, func(t *Tile, adjacent grid.Adjacency) {
		t.Adjacent = adjacent
	})

	byID := make(map[string]*Tile)
	layer.Each(func(position *grid.Position[*Tile]) {
		if tile, ok := position.Content(); ok {
			byID[tile.ID] = tile
		}
	})
	return &TileLayer{layer: layer, byID: byID}
}

func (t *TileLayer) Width() int {
	return t.layer.Width()
}

func (t *TileLayer) Height() int {
	return t.layer.Height()
}

func (t *TileLayer) At(x, y int) (*Tile, bool) {
	return t.layer.Content(x, y)
}

func (t *TileLayer) ByID(id string) (*Tile, bool) {
	tile, ok := t.byID[id]
	return tile, ok
}

// Tiles lists all tiles row by row.
func (t *TileLayer) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(t.byID))
	t.layer.Each(func(position *grid.Position[*Tile]) {
		if tile, ok := position.Content(); ok {
			tiles = append(tiles, tile)
		}
	})
	return tiles
}
