package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/pkg/errors"
)

type Health struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Current int `yaml:"current"`
}

type Damage struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Body holds what terrain and characters have in common.
type Body struct {
	ID        string
	Point     voxel.Int3
	Size      mgl64.Vec3
	Color     string
	Direction grid.Direction
	Health    Health
	Dead      bool
}

func (b *Body) GetBody() *Body {
	return b
}

func (b *Body) occupant() {}

// Occupant is either a *Terrain or a *Character.
type Occupant interface {
	GetBody() *Body
	// HitBox is the volume rays are tested against.
	HitBox() voxel.Box
	Clone() Occupant
	occupant()
}

type Terrain struct {
	Body
	Texture  string
	Adjacent grid.Adjacency
}

func NewTerrain(size mgl64.Vec3) *Terrain {
	return &Terrain{Body: Body{ID: newOccupantID("e"), Size: size, Direction: grid.North}}
}

func (t *Terrain) HitBox() voxel.Box {
	return voxel.NewBox(t.Point.ToVec3(), t.Size)
}

func (t *Terrain) Clone() Occupant {
	clone := *t
	return &clone
}

// Character is a unit that sees. Vision is addressed as Vision[y][x] and is
// replaced as a whole on every derivation, never written in place.
type Character struct {
	Body
	Accuracy float64
	Damage   Damage
	Stance   Stance
	Vision   [][]float64
}

func NewCharacter(size mgl64.Vec3) *Character {
	return &Character{Body: Body{ID: newOccupantID("c"), Size: size, Direction: grid.North}}
}

func (c *Character) EffectiveHeight() float64 {
	return c.Size.Z() * c.Stance.HeightFactor()
}

func (c *Character) EyePosition() mgl64.Vec3 {
	return c.Point.ToCellCenterVec3().Add(mgl64.Vec3{0, 0, c.EffectiveHeight()})
}

// SightPosition is the point line of sight checks between characters start
// and end at.
func (c *Character) SightPosition() mgl64.Vec3 {
	return c.Point.ToCellCenterVec3().Add(mgl64.Vec3{0, 0, c.Size.Z() * c.Stance.SightFactor()})
}

func (c *Character) HitBox() voxel.Box {
	return voxel.NewBox(c.Point.ToVec3(), mgl64.Vec3{c.Size.X(), c.Size.Y(), c.EffectiveHeight()})
}

func (c *Character) Clone() Occupant {
	clone := *c
	return &clone
}

// VisibilityAt returns the character's visibility of cell (x, y), 0 outside the grid.
func (c *Character) VisibilityAt(x, y int) float64 {
	if y < 0 || y >= len(c.Vision) || x < 0 || x >= len(c.Vision[y]) {
		return 0
	}
	return c.Vision[y][x]
}

func (c *Character) String() string {
	return fmt.Sprintf("Character(%s at %s, %s, hp %d/%d)", c.ID, c.Point, c.Stance, c.Health.Current, c.Health.Max)
}

func (t *Terrain) String() string {
	return fmt.Sprintf("Terrain(%s at %s, %0.2f high)", t.ID, t.Point, t.Size.Z())
}

func newOccupantID(prefix string) string {
	return prefix + "." + uuid.NewString()
}

func cloneOccupant(o Occupant) Occupant {
	return o.Clone()
}

func occupantHeight(o Occupant) float64 {
	return o.GetBody().Size.Z()
}

func validateOccupant(o Occupant) error {
	switch occupant := o.(type) {
	case nil:
		return nil
	case *Character:
		if occupant == nil {
			return errors.Wrap(ErrInvalidOccupant, "nil character")
		}
	case *Terrain:
		if occupant == nil {
			return errors.Wrap(ErrInvalidOccupant, "nil terrain")
		}
	}
	body := o.GetBody()
	if body.ID == "" {
		return errors.Wrap(ErrInvalidOccupant, "missing id")
	}
	size := body.Size
	if size.X() <= 0 || size.Y() <= 0 || size.Z() < 0 {
		return errors.Wrapf(ErrInvalidOccupant, "%s has size %v", body.ID, size)
	}
	switch occupant := o.(type) {
	case *Character:
		if occupant.Accuracy < 0 || occupant.Accuracy > 1 {
			return errors.Wrapf(ErrInvalidOccupant, "%s has accuracy %0.2f", body.ID, occupant.Accuracy)
		}
	case *Terrain:
	}
	return nil
}
