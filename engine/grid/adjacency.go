package grid

// Adjacency records, per compass heading, whether the neighbouring cell holds
// an occupant of exactly the same height. Index i belongs to Compass[i].
type Adjacency [8]bool

func (a Adjacency) Connected(direction Direction) bool {
	if direction == DirectionNone {
		return false
	}
	return a[direction-North]
}

func (a *Adjacency) set(direction Direction, connected bool) {
	a[direction-North] = connected
}

// AdjacencyAt computes the adjacency of the cell at (x, y). Height equality is
// exact: boxes of slightly different heights count as disconnected, which is
// where a seam gets drawn.
func AdjacencyAt[T any](layer *Layer[T], x, y int, heightOf func(T) float64) Adjacency {
	var adjacent Adjacency
	content, ok := layer.Content(x, y)
	if !ok {
		return adjacent
	}
	height := heightOf(content)
	for _, direction := range Compass {
		offset := direction.Offset()
		neighbor, isOccupied := layer.Content(x+int(offset.X), y+int(offset.Y))
		adjacent.set(direction, isOccupied && heightOf(neighbor) == height)
	}
	return adjacent
}

// DeriveAdjacency computes the adjacency of every occupied cell and hands it
// to apply. Occupants that do not track adjacency can ignore the call.
func DeriveAdjacency[T any](layer *Layer[T], heightOf func(T) float64, apply func(content T, adjacent Adjacency)) {
	layer.Each(func(position *Position[T]) {
		content, isOccupied := position.Content()
		if !isOccupied {
			return
		}
		apply(content, AdjacencyAt(layer, int(position.Point.X), int(position.Point.Y), heightOf))
	})
}
