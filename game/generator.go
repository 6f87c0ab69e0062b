package game

import (
	"fmt"

	"github.com/memmaker/isotactics/engine/util"
	"github.com/ojrac/opensimplex-go"
)

// GeneratorConfig describes a noise generated world. Noise values above
// WallThreshold become full walls, values above LowWallThreshold low walls.
type GeneratorConfig struct {
	Seed             int64   `yaml:"seed"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Frequency        float64 `yaml:"frequency"`
	WallThreshold    float64 `yaml:"wallThreshold"`
	LowWallThreshold float64 `yaml:"lowWallThreshold"`
	WaterThreshold   float64 `yaml:"waterThreshold"`
	Characters       int     `yaml:"characters"`
}

func DefaultGeneratorConfig(seed int64) GeneratorConfig {
	return GeneratorConfig{
		Seed:             seed,
		Width:            15,
		Height:           15,
		Frequency:        0.25,
		WallThreshold:    0.78,
		LowWallThreshold: 0.7,
		WaterThreshold:   0.22,
		Characters:       4,
	}
}

// GenerateWorldConfig lays out tiles and obstacles from two noise fields and
// places characters on free walkable cells. The same seed gives the same world.
func GenerateWorldConfig(gen GeneratorConfig) WorldConfig {
	defaults := DefaultGeneratorConfig(gen.Seed)
	if gen.Width <= 0 {
		gen.Width = defaults.Width
	}
	if gen.Height <= 0 {
		gen.Height = defaults.Height
	}
	if gen.Frequency <= 0 {
		gen.Frequency = defaults.Frequency
	}
	if gen.WallThreshold <= 0 {
		gen.WallThreshold = defaults.WallThreshold
	}
	if gen.LowWallThreshold <= 0 {
		gen.LowWallThreshold = defaults.LowWallThreshold
	}

	obstacles := opensimplex.NewNormalized(gen.Seed)
	ground := opensimplex.NewNormalized(gen.Seed + 1)

	tiles := make([][]rune, gen.Height)
	blocking := make([][]rune, gen.Height)
	for y := 0; y < gen.Height; y++ {
		tiles[y] = make([]rune, gen.Width)
		blocking[y] = make([]rune, gen.Width)
		for x := 0; x < gen.Width; x++ {
			fx, fy := float64(x)*gen.Frequency, float64(y)*gen.Frequency
			groundValue := ground.Eval2(fx, fy)
			switch {
			case groundValue < gen.WaterThreshold:
				tiles[y][x] = 'w'
			case groundValue < 0.45:
				tiles[y][x] = 'd'
			case groundValue < 0.65:
				tiles[y][x] = 'g'
			default:
				tiles[y][x] = 't'
			}

			obstacleValue := obstacles.Eval2(fx+100, fy+100)
			switch {
			case obstacleValue > gen.WallThreshold:
				blocking[y][x] = '#'
			case obstacleValue > gen.LowWallThreshold:
				blocking[y][x] = '='
			default:
				blocking[y][x] = EmptySymbol
			}
		}
	}

	placed := 0
	cells := gen.Width * gen.Height
	stride := coprimeStride(cells)
	for i := 0; i < cells && placed < gen.Characters; i++ {
		// spread the scan over the grid instead of filling the first row
		cell := (i * stride) % cells
		x, y := cell%gen.Width, cell/gen.Width
		if tiles[y][x] == 'w' || blocking[y][x] != EmptySymbol {
			continue
		}
		blocking[y][x] = '@'
		placed++
	}

	config := DefaultWorldConfig()
	config.Width = gen.Width
	config.Height = gen.Height
	config.Tiles = runeRows(tiles)
	config.Blocking = runeRows(blocking)
	config.Generator = &gen
	util.LogConfigInfo(fmt.Sprintf("[Generator] seed %d: %dx%d with %d characters", gen.Seed, gen.Width, gen.Height, placed))
	return config
}

func runeRows(rows [][]rune) []string {
	result := make([]string, len(rows))
	for i, row := range rows {
		result[i] = string(row)
	}
	return result
}

func coprimeStride(n int) int {
	gcd := func(a, b int) int {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}
	stride := 7
	for n > 1 && gcd(stride, n) != 1 {
		stride++
	}
	return stride
}
