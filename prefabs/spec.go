package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes a physics scene: engine settings plus the bodies to
// spawn, in spawn order.
type SceneSpec struct {
	Name    string      `yaml:"name"`
	Physics PhysicsSpec `yaml:"physics"`
	Bodies  []BodySpec  `yaml:"bodies"`
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return SceneSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

type PhysicsSpec struct {
	FixedTimestep float64    `yaml:"fixed_timestep"`
	Gravity       VectorSpec `yaml:"gravity"`
	// Mode is "stepped" or "threaded".
	Mode    string `yaml:"mode"`
	Workers int    `yaml:"workers"`
}

// BodySpec is one entity. Trigger bodies get a collider and no rigidbody:
// they never move and never block, they only report overlaps.
type BodySpec struct {
	Name     string       `yaml:"name"`
	Position VectorSpec   `yaml:"position"`
	Velocity VectorSpec   `yaml:"velocity"`
	Static   bool         `yaml:"static"`
	Trigger  bool         `yaml:"trigger"`
	Sprite   *SpriteSpec  `yaml:"sprite"`
	Tilemap  *TilemapSpec `yaml:"tilemap"`
	Script   string       `yaml:"script"`
	Color    *YAMLColor   `yaml:"color"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type SpriteSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type TilemapSpec struct {
	Level string `yaml:"level"`
	Merge bool   `yaml:"merge"`
}

// Validate checks what Build cannot recover from.
func (s SceneSpec) Validate() error {
	if s.Physics.FixedTimestep <= 0 {
		return fmt.Errorf("%w: physics.fixed_timestep must be positive", ErrInvalidSpec)
	}
	if s.Physics.Workers < 0 {
		return fmt.Errorf("%w: physics.workers must not be negative", ErrInvalidSpec)
	}
	seen := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidSpec, i)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidSpec, b.Name)
		}
		seen[b.Name] = true
		if (b.Sprite == nil) == (b.Tilemap == nil) {
			return fmt.Errorf("%w: body %q needs exactly one of sprite or tilemap", ErrInvalidSpec, b.Name)
		}
		if b.Sprite != nil && (b.Sprite.Width <= 0 || b.Sprite.Height <= 0) {
			return fmt.Errorf("%w: body %q sprite must have a positive size", ErrInvalidSpec, b.Name)
		}
		if b.Tilemap != nil && b.Tilemap.Level == "" {
			return fmt.Errorf("%w: body %q tilemap needs a level", ErrInvalidSpec, b.Name)
		}
		if b.Tilemap != nil && !b.Static {
			return fmt.Errorf("%w: body %q tilemap bodies must be static", ErrInvalidSpec, b.Name)
		}
		if b.Script != "" && (b.Static || b.Trigger) {
			return fmt.Errorf("%w: body %q only dynamic bodies can be scripted", ErrInvalidSpec, b.Name)
		}
		if b.Trigger && b.Tilemap != nil {
			return fmt.Errorf("%w: body %q tilemaps cannot be triggers", ErrInvalidSpec, b.Name)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
