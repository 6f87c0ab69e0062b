package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/util"
	"github.com/pkg/errors"
)

type BlockingFactory func(x, y int) (Occupant, bool)

// BlockingLayer owns the mutable obstacles and characters. Every accepted
// action produces a new Snapshot with adjacency and vision derived over the
// whole layer; readers only ever see complete snapshots.
type BlockingLayer struct {
	mu       sync.Mutex
	current  *Snapshot
	deriver  *VisibilityDeriver
	metrics  *Metrics
	timer    *util.Timer
	onChange func(*Snapshot)
}

func NewBlockingLayer(width, height int, factory BlockingFactory, deriver *VisibilityDeriver, metrics *Metrics) (*BlockingLayer, error) {
	if deriver == nil {
		deriver = NewVisibilityDeriver(0)
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	var invalid error
	layer := grid.Build(width, height, "p", func(x, y int) (Occupant, bool) {
		if factory == nil {
			return nil, false
		}
		occupant, ok := factory(x, y)
		if !ok || occupant == nil {
			return nil, false
		}
		if err := validateOccupant(occupant); err != nil {
			if invalid == nil {
				invalid = errors.Wrapf(err, "cell %d,%d", x, y)
			}
			return nil, false
		}
		placed := occupant.Clone()
		placed.GetBody().Point = voxelAt(x, y)
		return placed, true
	})
	if invalid != nil {
		return nil, invalid
	}
	b := &BlockingLayer{deriver: deriver, metrics: metrics, timer: util.NewTimer()}
	snapshot, err := b.derive(layer, 0)
	if err != nil {
		return nil, err
	}
	b.current = snapshot
	return b, nil
}

// Snapshot returns the latest published state.
func (b *BlockingLayer) Snapshot() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// OnChange registers a callback that receives every newly published snapshot.
// It runs while the layer is locked and must not dispatch.
func (b *BlockingLayer) OnChange(callback func(*Snapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = callback
}

// Dispatch applies one action. Actions that are refused as a normal outcome
// (blocked or out of bounds moves and swaps) return nil and change nothing.
// Invalid actions return an error and change nothing either.
func (b *BlockingLayer) Dispatch(action Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := action.Name()
	if b.current.layer.IsEmpty() {
		b.metrics.reject(name, rejectEmptyGrid)
		return nil
	}

	next := b.current.layer.Clone(cloneOccupant)
	rejection, err := action.apply(next)
	if err != nil {
		b.metrics.reject(name, reasonOf(err))
		return errors.Wrap(err, name)
	}
	if rejection != "" {
		b.metrics.reject(name, rejection)
		util.LogWorldDebug(fmt.Sprintf("[BlockingLayer] %s refused: %s", name, rejection))
		return nil
	}

	snapshot, err := b.derive(next, b.current.version+1)
	if err != nil {
		b.metrics.reject(name, reasonOf(err))
		return errors.Wrap(err, name)
	}
	b.current = snapshot
	b.metrics.applied(name)
	if b.onChange != nil {
		b.onChange(snapshot)
	}
	return nil
}

func (b *BlockingLayer) derive(layer *grid.Layer[Occupant], version uint64) (*Snapshot, error) {
	snapshot, err := newSnapshot(layer, version)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	stopAdjacency := b.timer.Start("adjacency")
	deriveAdjacency(layer)
	stopAdjacency()
	stopVision := b.timer.Start("vision")
	if err := b.deriver.Derive(layer); err != nil {
		return nil, err
	}
	stopVision()
	b.metrics.derived(time.Since(started).Seconds(), len(snapshot.Characters()))
	return snapshot, nil
}

// Timings reports how long the derivation phases took so far.
func (b *BlockingLayer) Timings() string {
	return b.timer.String()
}

func reasonOf(err error) string {
	switch errors.Cause(err) {
	case ErrMoveFromEmpty:
		return "move_from_empty"
	case ErrDuplicateOccupant:
		return "duplicate_occupant"
	case ErrInvalidChange:
		return "invalid_change"
	case ErrInvalidOccupant:
		return "invalid_occupant"
	}
	return "error"
}
