package path

import (
	"fmt"
	"math"

	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/pkg/errors"
)

var ErrNoPath = errors.New("no path")

const (
	Walkable = 0
	Blocked  = 1
)

// Grid is a walkability matrix addressed as grid[y][x].
type Grid [][]int

func (g Grid) Height() int {
	return len(g)
}

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) Contains(point voxel.Int3) bool {
	return point.Y >= 0 && int(point.Y) < len(g) && point.X >= 0 && int(point.X) < len(g[point.Y])
}

func (g Grid) IsWalkable(point voxel.Int3) bool {
	return g.Contains(point) && g[point.Y][point.X] == Walkable
}

type Options struct {
	Diagonal      bool
	CornerCutting bool
}

// WalkGrid is the neighbour source for searches over a Grid.
type WalkGrid struct {
	grid    Grid
	options Options
}

func NewWalkGrid(g Grid, options Options) *WalkGrid {
	return &WalkGrid{grid: g, options: options}
}

func (w *WalkGrid) GetNeighbors(node voxel.Int3) []voxel.Int3 {
	neighbors := make([]voxel.Int3, 0, 8)
	for _, direction := range grid.Straights {
		next := node.Add(direction.Offset())
		if w.grid.IsWalkable(next) {
			neighbors = append(neighbors, next)
		}
	}
	if !w.options.Diagonal {
		return neighbors
	}
	for _, direction := range grid.Diagonals {
		offset := direction.Offset()
		next := node.Add(offset)
		if !w.grid.IsWalkable(next) {
			continue
		}
		if !w.options.CornerCutting {
			alongX := node.Add(voxel.Int3{X: offset.X})
			alongY := node.Add(voxel.Int3{Y: offset.Y})
			if !w.grid.IsWalkable(alongX) || !w.grid.IsWalkable(alongY) {
				continue
			}
		}
		neighbors = append(neighbors, next)
	}
	return neighbors
}

func (w *WalkGrid) GetCost(currentNode, neighbor voxel.Int3) float64 {
	delta := neighbor.Sub(currentNode)
	if delta.X != 0 && delta.Y != 0 {
		return math.Sqrt2
	}
	return 1
}

// FindPath returns the points after start up to and including end. The start
// cell itself does not need to be walkable, it is usually occupied by the mover.
func FindPath(g Grid, start, end voxel.Int3, options Options) ([]voxel.Int3, error) {
	if start == end {
		return []voxel.Int3{}, nil
	}
	if !g.Contains(start) || !g.IsWalkable(end) {
		return nil, errors.Wrapf(ErrNoPath, "from %s to %s", start, end)
	}
	_, prev := Dijkstra[voxel.Int3](start, math.MaxFloat64, NewWalkGrid(g, options))
	points, found := Backtrack(prev, start, end)
	if !found {
		return nil, errors.Wrapf(ErrNoPath, "from %s to %s", start, end)
	}
	util.LogPathDebug(fmt.Sprintf("[Path] %s -> %s in %d steps", start, end, len(points)))
	return points, nil
}
