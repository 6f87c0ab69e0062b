package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/memmaker/isotactics/engine/path"
	"github.com/memmaker/isotactics/engine/voxel"
	"github.com/memmaker/isotactics/game"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// runDemo prints the world, walks one character to the farthest reachable
// cell, crouches it, shoots at the first enemy in sight and shows its vision.
func runDemo(ctx context.Context, world *game.World, index int, out io.Writer) error {
	fmt.Fprintln(out, world.Snapshot().Render(world.Tiles))

	characters := world.Snapshot().Characters()
	if len(characters) == 0 {
		fmt.Fprintln(out, "no characters on the map")
		return nil
	}
	if index < 0 || index >= len(characters) {
		return errors.Errorf("character %d out of range, the map has %d", index, len(characters))
	}
	hero := characters[index]
	fmt.Fprintf(out, "%s\n", hero)

	if result, ok := searchPath(ctx, world, hero.ID, farthestWalkable(world.Walkability(), hero.Point)); ok {
		taken, err := world.Walk(hero.ID, result.Steps)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "walked %d of %d steps to %s\n", taken, len(result.Steps), result.End)
	}

	stance, err := world.ToggleStance(hero.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "now %s\n", stance)

	for _, other := range world.Snapshot().Characters() {
		if other.ID == hero.ID || other.Dead {
			continue
		}
		visible, err := world.CanSee(hero.ID, other.ID)
		if err != nil {
			return err
		}
		if !visible {
			continue
		}
		result, err := world.Attack(hero.ID, other.ID)
		if err != nil {
			fmt.Fprintf(out, "attack on %s: %v\n", other.ID, err)
			continue
		}
		fmt.Fprintf(out, "attacked %s: hit=%t damage=%d killed=%t\n", other.ID, result.Hit, result.Damage, result.Killed)
		break
	}

	snapshot := world.Snapshot()
	fmt.Fprintln(out, snapshot.Render(world.Tiles))
	if current, ok := snapshot.Character(hero.ID); ok {
		printVision(out, current.Vision)
	}
	return nil
}

func searchPath(ctx context.Context, world *game.World, id string, to voxel.Int3) (path.Result, bool) {
	results := make(chan path.Result, 1)
	if err := world.FindPath(ctx, id, to, func(result path.Result) {
		results <- result
	}); err != nil {
		return path.Result{}, false
	}
	select {
	case result := <-results:
		return result, result.Err == nil
	case <-ctx.Done():
		return path.Result{}, false
	}
}

// farthestWalkable is the walkable cell with the largest manhattan distance from start.
func farthestWalkable(g path.Grid, start voxel.Int3) voxel.Int3 {
	best := start
	bestDistance := int32(-1)
	for y, row := range g {
		for x, cell := range row {
			point := voxel.NewInt3(x, y, 0)
			if cell != path.Walkable {
				continue
			}
			if distance := voxel.ManhattanDistance2(start, point); distance > bestDistance {
				best, bestDistance = point, distance
			}
		}
	}
	return best
}

// printVision draws a grey scale heat map when stdout is a wide enough
// terminal and falls back to shade characters otherwise.
func printVision(out io.Writer, vision [][]float64) {
	fd := int(os.Stdout.Fd())
	if out != io.Writer(os.Stdout) || !term.IsTerminal(fd) {
		fmt.Fprint(out, game.VisionString(vision))
		return
	}
	width, _, err := term.GetSize(fd)
	if err != nil || len(vision) == 0 || width < len(vision[0])*2 {
		fmt.Fprint(out, game.VisionString(vision))
		return
	}
	var sb strings.Builder
	for _, row := range vision {
		for _, value := range row {
			// 232..255 is the grey ramp of the 256 colour palette
			grey := 232 + int(value*23)
			sb.WriteString(fmt.Sprintf("\x1b[48;5;%dm  ", grey))
		}
		sb.WriteString("\x1b[0m\n")
	}
	fmt.Fprint(out, sb.String())
}
