package game

import "github.com/memmaker/isotactics/engine/path"

// Walkability builds the pathing grid: a cell is walkable if it has a
// walkable tile and no blocker, or only a dead one.
func Walkability(tiles *TileLayer, snapshot *Snapshot) path.Grid {
	g := make(path.Grid, tiles.Height())
	for y := range g {
		row := make([]int, tiles.Width())
		for x := range row {
			row[x] = path.Blocked
			tile, hasTile := tiles.At(x, y)
			if !hasTile || !tile.Walkable {
				continue
			}
			blocker, isBlocked := snapshot.At(x, y)
			if !isBlocked || blocker.GetBody().Dead {
				row[x] = path.Walkable
			}
		}
		g[y] = row
	}
	return g
}
