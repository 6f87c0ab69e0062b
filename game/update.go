package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/pkg/errors"
)

// Change is a partial update. Nil fields are left alone; an empty Change
// leaves the occupant as it is.
type Change struct {
	Health    *Health
	Dead      *bool
	Direction *grid.Direction
	Color     *string
	Size      *mgl64.Vec3
	// character only
	Stance   *Stance
	Accuracy *float64
	Damage   *Damage
	// terrain only
	Texture *string
}

func (c Change) IsEmpty() bool {
	return c == Change{}
}

// applyTo merges the change into occupant. The occupant is untouched if the
// change does not fit it.
func (c Change) applyTo(occupant Occupant) error {
	if err := c.validate(occupant); err != nil {
		return err
	}
	body := occupant.GetBody()
	if c.Health != nil {
		body.Health = *c.Health
	}
	if c.Dead != nil {
		body.Dead = *c.Dead
	}
	if c.Direction != nil {
		body.Direction = *c.Direction
	}
	if c.Color != nil {
		body.Color = *c.Color
	}
	if c.Size != nil {
		body.Size = *c.Size
	}
	switch o := occupant.(type) {
	case *Character:
		if c.Stance != nil {
			o.Stance = *c.Stance
		}
		if c.Accuracy != nil {
			o.Accuracy = *c.Accuracy
		}
		if c.Damage != nil {
			o.Damage = *c.Damage
		}
	case *Terrain:
		if c.Texture != nil {
			o.Texture = *c.Texture
		}
	}
	return nil
}

func (c Change) validate(occupant Occupant) error {
	id := occupant.GetBody().ID
	if c.Size != nil && (c.Size.X() <= 0 || c.Size.Y() <= 0 || c.Size.Z() < 0) {
		return errors.Wrapf(ErrInvalidChange, "size %v for %s", *c.Size, id)
	}
	switch occupant.(type) {
	case *Character:
		if c.Texture != nil {
			return errors.Wrapf(ErrInvalidChange, "texture for character %s", id)
		}
		if c.Accuracy != nil && (*c.Accuracy < 0 || *c.Accuracy > 1) {
			return errors.Wrapf(ErrInvalidChange, "accuracy %0.2f for %s", *c.Accuracy, id)
		}
	case *Terrain:
		if c.Stance != nil || c.Accuracy != nil || c.Damage != nil {
			return errors.Wrapf(ErrInvalidChange, "character stats for terrain %s", id)
		}
	}
	return nil
}

// Ptr returns a pointer to v, for building changes.
func Ptr[T any](v T) *T {
	return &v
}
