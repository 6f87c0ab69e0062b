package game

import (
	"fmt"

	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/path"
	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/pkg/errors"
)

// Reasons for actions that were refused without an error.
const (
	rejectOutOfBounds = "out_of_bounds"
	rejectOccupied    = "occupied"
	rejectEmptyGrid   = "empty_grid"
)

// Action is one mutation of the blocking layer. apply works on a private
// copy of the layer and returns a non-empty rejection when it left the copy
// untouched on purpose.
type Action interface {
	Name() string
	apply(layer *grid.Layer[Occupant]) (rejection string, err error)
}

// ActionSet replaces the content of the cell at Point. A nil Occupant clears it.
type ActionSet struct {
	Point    voxel.Int3
	Occupant Occupant
}

func (a ActionSet) Name() string { return "set" }

func (a ActionSet) apply(layer *grid.Layer[Occupant]) (string, error) {
	return "", place(layer, a.Point, a.Occupant)
}

// ActionFill applies its entries in order as one unit.
type ActionFill struct {
	Entries []ActionSet
}

func (a ActionFill) Name() string { return "fill" }

func (a ActionFill) apply(layer *grid.Layer[Occupant]) (string, error) {
	for i, entry := range a.Entries {
		if err := place(layer, entry.Point, entry.Occupant); err != nil {
			return "", errors.Wrapf(err, "entry %d", i)
		}
	}
	return "", nil
}

type ActionClear struct {
	Point voxel.Int3
}

func (a ActionClear) Name() string { return "clear" }

func (a ActionClear) apply(layer *grid.Layer[Occupant]) (string, error) {
	x, y, _ := layer.Clamp(a.Point)
	layer.At(x, y).Clear()
	return "", nil
}

// UpdateEntry either clears the cell or merges Change into its occupant.
type UpdateEntry struct {
	Point  voxel.Int3
	Change Change
	Clear  bool
}

func UpdateWith(point voxel.Int3, change Change) UpdateEntry {
	return UpdateEntry{Point: point, Change: change}
}

func UpdateClear(point voxel.Int3) UpdateEntry {
	return UpdateEntry{Point: point, Clear: true}
}

type ActionUpdate struct {
	Entries []UpdateEntry
}

func (a ActionUpdate) Name() string { return "update" }

func (a ActionUpdate) apply(layer *grid.Layer[Occupant]) (string, error) {
	for i, entry := range a.Entries {
		x, y, _ := layer.Clamp(entry.Point)
		position := layer.At(x, y)
		occupant, ok := position.Content()
		if !ok {
			continue
		}
		if entry.Clear {
			position.Clear()
			continue
		}
		if err := entry.Change.applyTo(occupant); err != nil {
			return "", errors.Wrapf(err, "entry %d at %s", i, position.Point)
		}
	}
	return "", nil
}

type ActionMove struct {
	From      voxel.Int3
	To        voxel.Int3
	Direction grid.Direction
}

// MoveAlong turns a path step into a move.
func MoveAlong(step path.Step) ActionMove {
	return ActionMove{From: step.From, To: step.To, Direction: step.Direction}
}

func (a ActionMove) Name() string { return "move" }

func (a ActionMove) apply(layer *grid.Layer[Occupant]) (string, error) {
	toX, toY, inBounds := layer.Clamp(a.To)
	if !inBounds {
		return rejectOutOfBounds, nil
	}
	target := layer.At(toX, toY)
	if !target.IsEmpty() {
		return rejectOccupied, nil
	}
	fromX, fromY, _ := layer.Clamp(a.From)
	source := layer.At(fromX, fromY)
	mover, ok := source.Content()
	if !ok {
		util.LogWorldError(fmt.Sprintf("[BlockingLayer] tried to move from empty cell %s to %s", a.From, a.To))
		return "", errors.Wrapf(ErrMoveFromEmpty, "%s", a.From)
	}
	body := mover.GetBody()
	body.Point = target.Point
	body.Direction = a.Direction
	target.Set(mover)
	source.Clear()
	return "", nil
}

type ActionSwap struct {
	A voxel.Int3
	B voxel.Int3
}

func (a ActionSwap) Name() string { return "swap" }

func (a ActionSwap) apply(layer *grid.Layer[Occupant]) (string, error) {
	if !layer.ContainsGrid(a.A) || !layer.ContainsGrid(a.B) {
		return rejectOutOfBounds, nil
	}
	first := layer.At(int(a.A.X), int(a.A.Y))
	second := layer.At(int(a.B.X), int(a.B.Y))
	firstContent, firstOccupied := first.Content()
	secondContent, secondOccupied := second.Content()

	first.Clear()
	second.Clear()
	if secondOccupied {
		secondContent.GetBody().Point = first.Point
		first.Set(secondContent)
	}
	if firstOccupied {
		firstContent.GetBody().Point = second.Point
		second.Set(firstContent)
	}
	return "", nil
}

// place puts a copy of occupant into the clamped cell at point.
func place(layer *grid.Layer[Occupant], point voxel.Int3, occupant Occupant) error {
	x, y, _ := layer.Clamp(point)
	position := layer.At(x, y)
	if occupant == nil {
		position.Clear()
		return nil
	}
	if err := validateOccupant(occupant); err != nil {
		return err
	}
	placed := occupant.Clone()
	placed.GetBody().Point = position.Point
	position.Set(placed)
	return nil
}
