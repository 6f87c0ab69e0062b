package grid

import (
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/pkg/errors"
)

// Direction is a compass heading on the grid. North is towards negative Y.
type Direction int

const (
	DirectionNone Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Compass lists the eight headings clockwise, starting at North.
var Compass = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Straights and Diagonals are split out because step derivation prefers diagonals.
var Straights = [4]Direction{North, South, West, East}
var Diagonals = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}

var directionNames = map[Direction]string{
	DirectionNone: "none",
	North:         "north",
	NorthEast:     "northEast",
	East:          "east",
	SouthEast:     "southEast",
	South:         "south",
	SouthWest:     "southWest",
	West:          "west",
	NorthWest:     "northWest",
}

var directionOffsets = map[Direction]voxel.Int3{
	DirectionNone: {},
	North:         {X: 0, Y: -1},
	NorthEast:     {X: 1, Y: -1},
	East:          {X: 1, Y: 0},
	SouthEast:     {X: 1, Y: 1},
	South:         {X: 0, Y: 1},
	SouthWest:     {X: -1, Y: 1},
	West:          {X: -1, Y: 0},
	NorthWest:     {X: -1, Y: -1},
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "none"
}

// Offset is the unit grid delta for one step in this direction.
func (d Direction) Offset() voxel.Int3 {
	return directionOffsets[d]
}

func (d Direction) IsDiagonal() bool {
	switch d {
	case NorthEast, SouthEast, SouthWest, NorthWest:
		return true
	}
	return false
}

func (d Direction) IsStraight() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func ParseDirection(name string) (Direction, error) {
	for direction, directionName := range directionNames {
		if directionName == name {
			return direction, nil
		}
	}
	return DirectionNone, errors.Errorf("unknown direction %q", name)
}

// DirectionOf matches a delta against the unit offsets, diagonals first.
// Anything that is not a single step maps to DirectionNone.
func DirectionOf(delta voxel.Int3) Direction {
	flat := delta.Flat()
	for _, direction := range Diagonals {
		if direction.Offset() == flat {
			return direction
		}
	}
	for _, direction := range Straights {
		if direction.Offset() == flat {
			return direction
		}
	}
	return DirectionNone
}
