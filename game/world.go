package game

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/path"
	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// World ties the static tiles, the blocking layer, vision, pathing and the
// camera together.
type World struct {
	Config     WorldConfig
	Projection util.ISOProjection
	Tiles      *TileLayer
	Blocking   *BlockingLayer
	Vision     *VisibilityDeriver
	Paths      *path.Service
	Metrics    *Metrics

	rngMutex sync.Mutex
	rng      *rand.Rand
}

type WorldOption func(*World)

// WithSeed makes attack rolls reproducible.
func WithSeed(seed int64) WorldOption {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed))
	}
}

// NewWorld builds a world from config. Metrics are registered on reg unless
// it is nil.
func NewWorld(config WorldConfig, reg prometheus.Registerer, options ...WorldOption) (*World, error) {
	if err := config.normalize(); err != nil {
		return nil, err
	}
	camera := config.Camera
	if camera.Scale <= 0 {
		camera = DefaultCamera()
	}
	w := &World{
		Config:     config,
		Projection: util.NewISOProjection(camera.Scale, camera.Angle, camera.ZHeight, camera.Padding),
		Tiles:      NewTileLayer(config.Width, config.Height, config.TileFactory()),
		Vision:     NewVisibilityDeriver(config.Vision.MaxDistance),
		Paths:      path.NewService(path.Options{Diagonal: config.Pathing.Diagonal, CornerCutting: config.Pathing.CornerCutting}),
		Metrics:    NewMetrics(reg),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(w)
	}
	blocking, err := NewBlockingLayer(config.Width, config.Height, config.BlockingFactory(), w.Vision, w.Metrics)
	if err != nil {
		return nil, errors.Wrap(err, "building blocking layer")
	}
	w.Blocking = blocking
	util.LogWorldInfo(fmt.Sprintf("[World] %dx%d with %d characters, %s", config.Width, config.Height, len(blocking.Snapshot().Characters()), w.Projection))
	return w, nil
}

func (w *World) Snapshot() *Snapshot {
	return w.Blocking.Snapshot()
}

func (w *World) Dispatch(action Action) error {
	return w.Blocking.Dispatch(action)
}

// Walkability is the pathing grid for the current snapshot.
func (w *World) Walkability() path.Grid {
	return Walkability(w.Tiles, w.Snapshot())
}

func (w *World) character(snapshot *Snapshot, id string) (*Character, error) {
	occupant, ok := snapshot.ByID(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOccupant, "%s", id)
	}
	character, isCharacter := occupant.(*Character)
	if !isCharacter {
		return nil, errors.Wrapf(ErrNotACharacter, "%s", id)
	}
	return character, nil
}

// FindPath searches a path for character id to the cell at to in the
// background. A newer search for the same character supersedes this one and
// done is then never called.
func (w *World) FindPath(ctx context.Context, id string, to voxel.Int3, done func(path.Result)) error {
	snapshot := w.Snapshot()
	character, err := w.character(snapshot, id)
	if err != nil {
		return err
	}
	w.Paths.Search(ctx, id, Walkability(w.Tiles, snapshot), character.Point, to, done)
	return nil
}

// Walk moves character id along steps and returns how many steps were taken.
// It stops at the first step that does not start where the character stands
// or that the blocking layer refuses.
func (w *World) Walk(id string, steps []path.Step) (int, error) {
	taken := 0
	for _, step := range steps {
		character, err := w.character(w.Snapshot(), id)
		if err != nil {
			return taken, err
		}
		if character.Point != step.From {
			util.LogWorldWarning(fmt.Sprintf("[World] %s is at %s, not at %s", id, character.Point, step.From))
			return taken, nil
		}
		if err := w.Dispatch(MoveAlong(step)); err != nil {
			return taken, err
		}
		moved, err := w.character(w.Snapshot(), id)
		if err != nil {
			return taken, err
		}
		if moved.Point != step.To {
			return taken, nil
		}
		taken++
	}
	return taken, nil
}

// ToggleStance switches character id between standing and crouching.
func (w *World) ToggleStance(id string) (Stance, error) {
	character, err := w.character(w.Snapshot(), id)
	if err != nil {
		return StanceStand, err
	}
	stance := character.Stance.Toggled()
	if err := w.Dispatch(ActionUpdate{Entries: []UpdateEntry{UpdateWith(character.Point, Change{Stance: &stance})}}); err != nil {
		return character.Stance, err
	}
	return stance, nil
}

// CanSee reports whether observer has a clear line of sight to target.
func (w *World) CanSee(observerID, targetID string) (bool, error) {
	snapshot := w.Snapshot()
	observer, err := w.character(snapshot, observerID)
	if err != nil {
		return false, err
	}
	target, err := w.character(snapshot, targetID)
	if err != nil {
		return false, err
	}
	return w.Vision.CanSee(snapshot, observer, target), nil
}

type AttackResult struct {
	Hit    bool
	Damage int
	Killed bool
	Target *Body
}

// Attack lets attacker shoot at the occupant targetID. The target cell must
// be visible to the attacker. A hit deals damage within the attacker's
// damage range and kills the target when its health drops to the minimum.
func (w *World) Attack(attackerID, targetID string) (AttackResult, error) {
	snapshot := w.Snapshot()
	attacker, err := w.character(snapshot, attackerID)
	if err != nil {
		return AttackResult{}, err
	}
	if attacker.Dead {
		return AttackResult{}, errors.Wrapf(ErrAttackerDead, "%s", attackerID)
	}
	target, ok := snapshot.ByID(targetID)
	if !ok {
		return AttackResult{}, errors.Wrapf(ErrUnknownOccupant, "%s", targetID)
	}
	body := target.GetBody()
	if attacker.VisibilityAt(int(body.Point.X), int(body.Point.Y)) <= 0 {
		return AttackResult{}, errors.Wrapf(ErrTargetNotVisible, "%s from %s", targetID, attackerID)
	}

	hit, damage := w.roll(attacker)
	if !hit {
		util.LogWorldInfo(fmt.Sprintf("[World] %s missed %s", attackerID, targetID))
		return AttackResult{Target: body}, nil
	}
	health := body.Health
	health.Current = max(health.Current-damage, health.Min)
	dead := health.Current <= health.Min
	change := Change{Health: &health, Dead: &dead}
	if err := w.Dispatch(ActionUpdate{Entries: []UpdateEntry{UpdateWith(body.Point, change)}}); err != nil {
		return AttackResult{}, err
	}
	result := AttackResult{Hit: true, Damage: damage, Killed: dead && !body.Dead}
	if updated, ok := w.Snapshot().ByID(targetID); ok {
		result.Target = updated.GetBody()
	}
	util.LogWorldInfo(fmt.Sprintf("[World] %s hit %s for %d", attackerID, targetID, damage))
	return result, nil
}

func (w *World) roll(attacker *Character) (bool, int) {
	w.rngMutex.Lock()
	defer w.rngMutex.Unlock()
	if w.rng.Float64() >= attacker.Accuracy {
		return false, 0
	}
	low, high := attacker.Damage.Min, attacker.Damage.Max
	if high < low {
		low, high = high, low
	}
	return true, low + w.rng.Intn(high-low+1)
}

// PickCell returns the floor cell under a screen point.
func (w *World) PickCell(screen mgl64.Vec2) (voxel.Int3, bool) {
	cell := w.Projection.ScreenToGrid(screen, 0)
	if cell.X < 0 || cell.Y < 0 || int(cell.X) >= w.Config.Width || int(cell.Y) >= w.Config.Height {
		return cell, false
	}
	return cell, true
}

// PickOccupant returns the front-most occupant whose projected outline
// contains the screen point.
func (w *World) PickOccupant(screen mgl64.Vec2) (Occupant, bool) {
	occupants := w.Snapshot().Occupants()
	sort.SliceStable(occupants, func(i, j int) bool {
		a, b := occupants[i].GetBody().Point, occupants[j].GetBody().Point
		return a.X+a.Y > b.X+b.Y
	})
	for _, occupant := range occupants {
		outline := w.Projection.Silhouette(occupant.GetBody().Point, occupant.HitBox().Size)
		if util.PointInPolygon(screen, outline) {
			return occupant, true
		}
	}
	return nil, false
}
