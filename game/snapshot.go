package game

import (
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/pkg/errors"
)

// Snapshot is one consistent state of the blocking layer. It is never
// modified after it has been published; treat the occupants it hands out as
// read-only.
type Snapshot struct {
	layer   *grid.Layer[Occupant]
	byID    map[string]Occupant
	version uint64
}

func newSnapshot(layer *grid.Layer[Occupant], version uint64) (*Snapshot, error) {
	byID := make(map[string]Occupant)
	var duplicate error
	layer.Each(func(position *grid.Position[Occupant]) {
		occupant, ok := position.Content()
		if !ok || duplicate != nil {
			return
		}
		id := occupant.GetBody().ID
		if _, exists := byID[id]; exists {
			duplicate = errors.Wrapf(ErrDuplicateOccupant, "%s at %s", id, position.Point)
			return
		}
		byID[id] = occupant
	})
	if duplicate != nil {
		return nil, duplicate
	}
	return &Snapshot{layer: layer, byID: byID, version: version}, nil
}

func (s *Snapshot) Width() int {
	return s.layer.Width()
}

func (s *Snapshot) Height() int {
	return s.layer.Height()
}

// Version counts the actions that changed the layer.
func (s *Snapshot) Version() uint64 {
	return s.version
}

func (s *Snapshot) At(x, y int) (Occupant, bool) {
	return s.layer.Content(x, y)
}

// PositionID is the stable id of the cell at (x, y).
func (s *Snapshot) PositionID(x, y int) string {
	position := s.layer.At(x, y)
	if position == nil {
		return ""
	}
	return position.ID
}

func (s *Snapshot) ByID(id string) (Occupant, bool) {
	occupant, ok := s.byID[id]
	return occupant, ok
}

func (s *Snapshot) Character(id string) (*Character, bool) {
	occupant, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	character, isCharacter := occupant.(*Character)
	return character, isCharacter
}

// Occupants lists every occupant row by row.
func (s *Snapshot) Occupants() []Occupant {
	occupants := make([]Occupant, 0, len(s.byID))
	s.layer.Each(func(position *grid.Position[Occupant]) {
		if occupant, ok := position.Content(); ok {
			occupants = append(occupants, occupant)
		}
	})
	return occupants
}

func (s *Snapshot) Characters() []*Character {
	return charactersOf(s.layer)
}

func (s *Snapshot) Terrain() []*Terrain {
	var terrain []*Terrain
	for _, occupant := range s.Occupants() {
		if t, ok := occupant.(*Terrain); ok {
			terrain = append(terrain, t)
		}
	}
	return terrain
}

func charactersOf(layer *grid.Layer[Occupant]) []*Character {
	var characters []*Character
	layer.Each(func(position *grid.Position[Occupant]) {
		occupant, ok := position.Content()
		if !ok {
			return
		}
		switch o := occupant.(type) {
		case *Character:
			characters = append(characters, o)
		case *Terrain:
		}
	})
	return characters
}
