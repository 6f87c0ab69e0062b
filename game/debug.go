package game

import (
	"strings"

	"github.com/memmaker/isotactics/engine/util"
)

var visionShades = []rune{' ', '░', '▒', '▓', '█'}

// Render draws the world as text: blockers over tiles, one rune per cell.
// '@' is a character, 'x' a dead one, '#' and '=' tall and low terrain,
// '.' walkable floor, '~' floor that is not walkable.
func (s *Snapshot) Render(tiles *TileLayer) string {
	var sb strings.Builder
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			sb.WriteRune(cellRune(s, tiles, x, y))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func cellRune(s *Snapshot, tiles *TileLayer, x, y int) rune {
	if occupant, ok := s.At(x, y); ok {
		switch o := occupant.(type) {
		case *Character:
			if o.Dead {
				return 'x'
			}
			return '@'
		case *Terrain:
			if o.Size.Z() >= 2 {
				return '#'
			}
			return '='
		}
	}
	if tiles == nil {
		return '.'
	}
	tile, ok := tiles.At(x, y)
	if !ok {
		return ' '
	}
	if !tile.Walkable {
		return '~'
	}
	return '.'
}

// VisionString shades a vision matrix, one rune per cell.
func VisionString(vision [][]float64) string {
	var sb strings.Builder
	for _, row := range vision {
		for _, value := range row {
			sb.WriteRune(VisionShade(value))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func VisionShade(value float64) rune {
	index := util.ClampInt(int(value/VisibilityStep+0.5), 0, len(visionShades)-1)
	return visionShades[index]
}
