package game

import (
	"github.com/memmaker/isotactics/engine/path"
	"github.com/pkg/errors"
)

var (
	ErrMoveFromEmpty     = errors.New("move from empty cell")
	ErrDuplicateOccupant = errors.New("occupant placed twice")
	ErrInvalidChange     = errors.New("invalid change")
	ErrInvalidOccupant   = errors.New("invalid occupant")
	ErrUnknownSymbol     = errors.New("unknown map symbol")
	ErrRaggedMap         = errors.New("map rows differ in length")
	ErrUnknownOccupant   = errors.New("unknown occupant")
	ErrNotACharacter     = errors.New("not a character")
	ErrTargetNotVisible  = errors.New("target not visible")
	ErrAttackerDead      = errors.New("attacker is dead")
	ErrNoPath            = path.ErrNoPath
)
