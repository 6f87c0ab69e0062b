package game

import (
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/engine/voxel"
	"golang.org/x/sync/errgroup"
)

// VisibilityStep is the granularity of vision values.
const VisibilityStep = 0.25

// VisibilityDeriver computes what characters can see by tracing rays from
// their eye to sample points on every cell.
type VisibilityDeriver struct {
	maxDistance float64
	parallelism int
}

// NewVisibilityDeriver uses util.DefaultMaxDistance when maxDistance is not positive.
func NewVisibilityDeriver(maxDistance float64) *VisibilityDeriver {
	if maxDistance <= 0 {
		maxDistance = util.DefaultMaxDistance
	}
	return &VisibilityDeriver{maxDistance: maxDistance, parallelism: runtime.GOMAXPROCS(0)}
}

func (v *VisibilityDeriver) MaxDistance() float64 {
	return v.maxDistance
}

// Derive replaces the vision of every character in layer. Each character
// gets a freshly allocated matrix; the layer itself is only read.
func (v *VisibilityDeriver) Derive(layer *grid.Layer[Occupant]) error {
	characters := charactersOf(layer)
	matrices := make([][][]float64, len(characters))

	var group errgroup.Group
	group.SetLimit(v.parallelism)
	for i, character := range characters {
		group.Go(func() error {
			matrices[i] = v.VisionOf(layer, character)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	for i, character := range characters {
		character.Vision = matrices[i]
	}
	util.LogVisionDebug(fmt.Sprintf("[Visibility] derived vision for %d characters", len(characters)))
	return nil
}

// VisionOf computes the visibility matrix of one character, Vision[y][x].
func (v *VisibilityDeriver) VisionOf(layer *grid.Layer[Occupant], character *Character) [][]float64 {
	matrix := make([][]float64, layer.Height())
	eye := character.EyePosition()
	for y := range matrix {
		row := make([]float64, layer.Width())
		for x := range row {
			if character.Point.X == int32(x) && character.Point.Y == int32(y) {
				row[x] = 1
				continue
			}
			row[x] = v.cellVisibility(layer, eye, x, y)
		}
		matrix[y] = row
	}
	return matrix
}

// cellVisibility samples the four floor corners of an empty cell or the
// eight corners of an occupant's hit box.
func (v *VisibilityDeriver) cellVisibility(layer *grid.Layer[Occupant], eye mgl64.Vec3, x, y int) float64 {
	target, occupied := layer.Content(x, y)
	if !occupied {
		visible := 0
		for _, corner := range voxel.FootprintCorners(voxel.NewInt3(x, y, 0)) {
			if v.isUnoccluded(layer, eye, corner) {
				visible++
			}
		}
		return float64(visible) * VisibilityStep
	}
	visible := 0
	for _, corner := range target.HitBox().Corners() {
		if v.isUnoccluded(layer, eye, corner) {
			visible++
		}
	}
	return BoxVisibility(visible)
}

// BoxVisibility collapses the number of visible box corners (out of 8) onto
// the tile scale: every two corners count as one step, so 3 corners are 0.25.
func BoxVisibility(visibleCorners int) float64 {
	return float64(visibleCorners/2) * VisibilityStep
}

func (v *VisibilityDeriver) isUnoccluded(layer *grid.Layer[Occupant], from, to mgl64.Vec3) bool {
	hit := util.TraceRay(from, to.Sub(from), v.maxDistance, occluderQuery(layer, voxel.ToGridInt3(from)))
	return hit.Complete
}

// occluderQuery reports the occupant of a cell if the ray point lies in its
// hit box. The cell the ray starts in never occludes.
func occluderQuery(layer *grid.Layer[Occupant], origin voxel.Int3, ignored ...voxel.Int3) func(cell voxel.Int3, point mgl64.Vec3) (Occupant, bool) {
	return func(cell voxel.Int3, point mgl64.Vec3) (Occupant, bool) {
		if cell.X == origin.X && cell.Y == origin.Y {
			return nil, false
		}
		for _, skip := range ignored {
			if cell.X == skip.X && cell.Y == skip.Y {
				return nil, false
			}
		}
		occupant, ok := layer.Content(int(cell.X), int(cell.Y))
		if !ok || !occupant.HitBox().Contains(point) {
			return nil, false
		}
		return occupant, true
	}
}

// CanSee traces between the sight positions of both characters. Neither
// character's own cell blocks the line.
func (v *VisibilityDeriver) CanSee(snapshot *Snapshot, observer, target *Character) bool {
	from := observer.SightPosition()
	to := target.SightPosition()
	distance := util.EucledianDistance3D(from, to)
	if distance < 1e-8 {
		return true
	}
	distance = math.Min(distance, v.maxDistance)
	hit := util.TraceRay(from, to.Sub(from), distance, occluderQuery(snapshot.layer, voxel.ToGridInt3(from), target.Point))
	return hit.Complete
}
