package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/milk9111/rigid2d/ecs/component"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a tile grid split into layers. Each layer is a flat row-major
// array of Width*Height tile values, 0 meaning empty.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	return LoadLevel(LevelsFS, name)
}

func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	if l.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %v", ErrInvalidLevel, l.TileSize)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
	}
	if len(l.LayerMeta) > len(l.Layers) {
		return fmt.Errorf("%w: %d layer_meta entries for %d layers", ErrInvalidLevel, len(l.LayerMeta), len(l.Layers))
	}
	return nil
}

// IsPhysicsLayer reports whether tiles on layer i collide. Layers without
// metadata do not.
func (l *Level) IsPhysicsLayer(i int) bool {
	return i >= 0 && i < len(l.LayerMeta) && l.LayerMeta[i].Physics
}

// PhysicsTiles flattens every physics layer into one grid. A cell holds the
// value from the topmost physics layer that has a tile there.
func (l *Level) PhysicsTiles() []int {
	out := make([]int, l.Width*l.Height)
	for i, layer := range l.Layers {
		if !l.IsPhysicsLayer(i) {
			continue
		}
		for idx, v := range layer {
			if v != 0 && idx < len(out) {
				out[idx] = v
			}
		}
	}
	return out
}

// Tilemap builds the collision tilemap for the level.
func (l *Level) Tilemap() *component.Tilemap {
	return &component.Tilemap{
		Columns:    l.Width,
		Rows:       l.Height,
		TileWidth:  l.TileSize,
		TileHeight: l.TileSize,
		Tiles:      l.PhysicsTiles(),
	}
}
