package game

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/isotactics/engine/grid"
	"github.com/memmaker/isotactics/engine/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EmptySymbol marks a cell without content in map rows.
const EmptySymbol = '.'

// ConfigEnv names the environment variable LoadWorldConfig falls back to.
const ConfigEnv = "ISOTACTICS_CONFIG"

type WorldConfig struct {
	Width          int                       `yaml:"width"`
	Height         int                       `yaml:"height"`
	Camera         CameraConfig              `yaml:"camera"`
	Pathing        PathingConfig             `yaml:"pathing"`
	Vision         VisionConfig              `yaml:"vision"`
	TileLegend     map[string]TileOptions    `yaml:"tileLegend"`
	Tiles          []string                  `yaml:"tiles"`
	BlockingLegend map[string]BlockerOptions `yaml:"blockingLegend"`
	Blocking       []string                  `yaml:"blocking"`
	Generator      *GeneratorConfig          `yaml:"generator,omitempty"`
}

type CameraConfig struct {
	Scale   float64 `yaml:"scale"`
	Angle   float64 `yaml:"angle"`
	ZHeight float64 `yaml:"zHeight"`
	Padding float64 `yaml:"padding"`
}

type PathingConfig struct {
	Diagonal      bool `yaml:"diagonal"`
	CornerCutting bool `yaml:"cornerCutting"`
}

type VisionConfig struct {
	MaxDistance float64 `yaml:"maxDistance"`
}

type Size struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (s Size) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{s.X, s.Y, s.Z}
}

type TileOptions struct {
	Type     string `yaml:"type"`
	Texture  string `yaml:"texture"`
	Color    string `yaml:"color"`
	Walkable bool   `yaml:"walkable"`
	Size     Size   `yaml:"size"`
}

const (
	BlockerTerrain   = "terrain"
	BlockerCharacter = "character"
)

type BlockerOptions struct {
	Type      string         `yaml:"type"`
	Texture   string         `yaml:"texture,omitempty"`
	Color     string         `yaml:"color"`
	Size      Size           `yaml:"size"`
	Health    Health         `yaml:"health"`
	Dead      bool           `yaml:"dead,omitempty"`
	Direction grid.Direction `yaml:"direction"`
	Accuracy  float64        `yaml:"accuracy,omitempty"`
	Damage    Damage         `yaml:"damage,omitempty"`
	Stance    Stance         `yaml:"stance,omitempty"`
}

// NewOccupant creates a fresh occupant with a new id from the legend entry.
func (o BlockerOptions) NewOccupant() (Occupant, error) {
	body := Body{
		Size:      o.Size.Vec3(),
		Color:     o.Color,
		Direction: o.Direction,
		Health:    o.Health,
		Dead:      o.Dead,
	}
	switch o.Type {
	case BlockerTerrain:
		body.ID = newOccupantID("e")
		return &Terrain{Body: body, Texture: o.Texture}, nil
	case BlockerCharacter:
		body.ID = newOccupantID("c")
		return &Character{Body: body, Accuracy: o.Accuracy, Damage: o.Damage, Stance: o.Stance}, nil
	}
	return nil, errors.Wrapf(ErrInvalidOccupant, "unknown blocker type %q", o.Type)
}

// LoadWorldConfig reads a YAML world file. An empty path falls back to
// $ISOTACTICS_CONFIG and then to DefaultWorldConfig.
func LoadWorldConfig(path string) (WorldConfig, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
		if path == "" {
			util.LogConfigInfo("[Config] no world file given, using the demo world")
			return DefaultWorldConfig(), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldConfig{}, errors.Wrapf(err, "reading %s", path)
	}
	config, err := ParseWorldConfig(data)
	if err != nil {
		return WorldConfig{}, errors.Wrapf(err, "in %s", path)
	}
	util.LogConfigInfo(fmt.Sprintf("[Config] loaded %s (%dx%d)", path, config.Width, config.Height))
	return config, nil
}

// ParseWorldConfig decodes YAML, fills in defaults and validates the result.
func ParseWorldConfig(data []byte) (WorldConfig, error) {
	config := WorldConfig{Camera: DefaultCamera(), Pathing: PathingConfig{Diagonal: true}}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return WorldConfig{}, errors.Wrap(err, "decoding world config")
	}
	if config.Generator != nil && len(config.Blocking) == 0 {
		generated := GenerateWorldConfig(*config.Generator)
		generated.Camera = config.Camera
		generated.Pathing = config.Pathing
		generated.Vision = config.Vision
		config = generated
	}
	if err := config.normalize(); err != nil {
		return WorldConfig{}, err
	}
	return config, nil
}

func (c WorldConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func DefaultCamera() CameraConfig {
	return CameraConfig{Scale: 32, Angle: 45, ZHeight: 2, Padding: 16}
}

// normalize derives missing dimensions from the map rows and checks that
// every row fits the grid and every symbol is in its legend.
func (c *WorldConfig) normalize() error {
	if c.Height == 0 {
		c.Height = max(len(c.Tiles), len(c.Blocking))
	}
	if c.Width == 0 {
		for _, row := range append(append([]string{}, c.Tiles...), c.Blocking...) {
			c.Width = max(c.Width, len([]rune(row)))
		}
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("negative grid size %dx%d", c.Width, c.Height)
	}
	if err := checkRows("tiles", c.Tiles, c.Width, c.Height, func(symbol rune) bool {
		_, ok := c.TileLegend[string(symbol)]
		return ok
	}); err != nil {
		return err
	}
	if err := checkRows("blocking", c.Blocking, c.Width, c.Height, func(symbol rune) bool {
		options, ok := c.BlockingLegend[string(symbol)]
		return ok && (options.Type == BlockerTerrain || options.Type == BlockerCharacter)
	}); err != nil {
		return err
	}
	return nil
}

func checkRows(name string, rows []string, width, height int, known func(rune) bool) error {
	if len(rows) == 0 {
		return nil
	}
	if len(rows) != height {
		return errors.Wrapf(ErrRaggedMap, "%s has %d rows, want %d", name, len(rows), height)
	}
	for y, row := range rows {
		symbols := []rune(row)
		if len(symbols) != width {
			return errors.Wrapf(ErrRaggedMap, "%s row %d has %d cells, want %d", name, y, len(symbols), width)
		}
		for x, symbol := range symbols {
			if symbol != EmptySymbol && !known(symbol) {
				return errors.Wrapf(ErrUnknownSymbol, "%q in %s at %d,%d", symbol, name, x, y)
			}
		}
	}
	return nil
}

func symbolAt(rows []string, x, y int) rune {
	if y < 0 || y >= len(rows) {
		return EmptySymbol
	}
	symbols := []rune(rows[y])
	if x < 0 || x >= len(symbols) {
		return EmptySymbol
	}
	return symbols[x]
}

// TileFactory builds tiles from the tile map. Without tile rows every cell
// gets plain walkable floor.
func (c WorldConfig) TileFactory() TileFactory {
	return func(x, y int) (*Tile, bool) {
		options := TileOptions{Type: "floor", Texture: "floor", Color: "#999", Walkable: true, Size: Size{1, 1, 0.5}}
		if len(c.Tiles) > 0 {
			symbol := symbolAt(c.Tiles, x, y)
			if symbol == EmptySymbol {
				return nil, false
			}
			options = c.TileLegend[string(symbol)]
		}
		return &Tile{
			ID:       newOccupantID("i"),
			Size:     options.Size.Vec3(),
			Type:     options.Type,
			Texture:  options.Texture,
			Color:    options.Color,
			Walkable: options.Walkable,
		}, true
	}
}

// BlockingFactory builds occupants from the blocking map.
func (c WorldConfig) BlockingFactory() BlockingFactory {
	return func(x, y int) (Occupant, bool) {
		symbol := symbolAt(c.Blocking, x, y)
		if symbol == EmptySymbol {
			return nil, false
		}
		options, ok := c.BlockingLegend[string(symbol)]
		if !ok {
			return nil, false
		}
		occupant, err := options.NewOccupant()
		if err != nil {
			util.LogConfigError(fmt.Sprintf("[Config] %v", err))
			return nil, false
		}
		return occupant, true
	}
}

func DefaultTileLegend() map[string]TileOptions {
	return map[string]TileOptions{
		"g": {Type: "grass", Texture: "grass", Color: "#71aa34", Walkable: true, Size: Size{1, 1, 0.5}},
		"d": {Type: "dirt", Texture: "dirt", Color: "#a05b53", Walkable: true, Size: Size{1, 1, 0.5}},
		"t": {Type: "tile", Texture: "tile", Color: "#999", Walkable: true, Size: Size{1, 1, 0.5}},
		"w": {Type: "water", Texture: "water", Color: "#28ccdf", Walkable: false, Size: Size{1, 1, 0.35}},
	}
}

func DefaultBlockingLegend() map[string]BlockerOptions {
	wallHealth := Health{Min: 0, Max: 10, Current: 10}
	return map[string]BlockerOptions{
		"#": {Type: BlockerTerrain, Texture: "stone", Color: "#bf7958", Size: Size{1, 1, 2}, Health: wallHealth, Direction: grid.North},
		"=": {Type: BlockerTerrain, Texture: "stone", Color: "#bf7958", Size: Size{1, 1, 1}, Health: wallHealth, Direction: grid.North},
		"@": {
			Type:      BlockerCharacter,
			Color:     "#f47e1c",
			Size:      Size{0.35, 0.35, 1.8},
			Health:    Health{Min: 0, Max: 50, Current: 50},
			Direction: grid.North,
			Accuracy:  0.8,
			Damage:    Damage{Min: 8, Max: 10},
			Stance:    StanceStand,
		},
	}
}

// DefaultWorldConfig is the 15x15 demo world.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Width:          15,
		Height:         15,
		Camera:         DefaultCamera(),
		Pathing:        PathingConfig{Diagonal: true, CornerCutting: false},
		Vision:         VisionConfig{MaxDistance: util.DefaultMaxDistance},
		TileLegend:     DefaultTileLegend(),
		BlockingLegend: DefaultBlockingLegend(),
		Tiles: strings.Fields(`
			gggdwwwddtwwddt
			wgdgddwdddwwddt
			dwgtggwwdtwwddt
			ggdgdgdwdtttgdt
			wtgttdttttwwddt
			wwggggwdtgwwddt
			wwdtggwwdgwwgdt
			gwtttddwddwdgdt
			wwggtddwwgwdtdt
			wdgtdtdwwddttdt
			wdgtdtdwwdddddt
			wwdtggwwdgwwddt
			gwtttddwddwwddt
			wwggtddwwgwwddt
			wwggggwdtgwwddt`),
		Blocking: strings.Fields(`
			...............
			...............
			....@..........
			#...#..........
			.........=.....
			...@.....#.....
			..#......=.....
			.........=.....
			...............
			..........@....
			..#......=.....
			.........=.....
			...............
			......=........
			.....@=........`),
	}
}
