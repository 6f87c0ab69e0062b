package path

import (
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/voxel"
)

type Step struct {
	Direction grid.Direction
	From      voxel.Int3
	To        voxel.Int3
	Diagonal  bool
}

// StepBetween names the move from a to b. A jump that is not a single
// compass step gets grid.DirectionNone.
func StepBetween(a, b voxel.Int3) Step {
	direction := grid.DirectionOf(b.Sub(a))
	return Step{
		Direction: direction,
		From:      a,
		To:        b,
		Diagonal:  direction.IsDiagonal(),
	}
}

// Steps turns a path as returned by FindPath into moves starting at start.
func Steps(start voxel.Int3, points []voxel.Int3) []Step {
	steps := make([]Step, 0, len(points))
	from := start
	for _, to := range points {
		steps = append(steps, StepBetween(from, to))
		from = to
	}
	return steps
}
