package game

import "github.com/memmaker/isotactics/engine/grid"

// deriveAdjacency refreshes the adjacency of all terrain. Neighbours of any
// kind connect as long as their height matches exactly.
func deriveAdjacency(layer *grid.Layer[Occupant]) {
	grid.DeriveAdjacency(layer, occupantHeight, func(occupant Occupant, adjacent grid.Adjacency) {
		switch o := occupant.(type) {
		case *Terrain:
			o.Adjacent = adjacent
		case *Character:
		}
	})
}
