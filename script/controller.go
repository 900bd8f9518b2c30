// Package script drives rigidbody velocities from tengo scripts.
package script

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/collision"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
)

var ErrNoRigidbody = errors.New("script: controller needs a Rigidbody component")

// Input answers whether an action is held this frame.
type Input interface {
	Pressed(action string) bool
}

// Actions is a fixed Input, handy for headless runs.
type Actions map[string]bool

func (a Actions) Pressed(action string) bool { return a[action] }

var actions = []string{"left", "right", "up", "down", "jump"}

// Controller runs a tengo script once per frame. The script sees the input
// actions, dt, grounded, blocked, the body position as x and y and its
// velocity as vx and vy. The vx and vy it leaves behind become the new
// velocity. A state map survives between runs.
type Controller struct {
	Name string

	mu       sync.Mutex
	source   []byte
	compiled *tengo.Compiled
	state    *tengo.Map

	input    Input
	body     *physics.Rigidbody
	collider collision.Collider
}

var ControllerComponent = component.NewComponent[*Controller]()

func NewController(name string, source []byte, input Input) *Controller {
	return &Controller{
		Name:   name,
		source: source,
		input:  input,
		state:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
}

func compile(name string, source []byte) (*tengo.Compiled, error) {
	s := tengo.NewScript(source)
	_ = s.Add("dt", 0.0)
	for _, a := range actions {
		_ = s.Add(a, false)
	}
	_ = s.Add("grounded", false)
	_ = s.Add("blocked", false)
	_ = s.Add("x", 0.0)
	_ = s.Add("y", 0.0)
	_ = s.Add("vx", 0.0)
	_ = s.Add("vy", 0.0)
	_ = s.Add("state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: compile: %w", name, err)
	}
	return compiled, nil
}

func (c *Controller) Start(w *ecs.World, e ecs.Entity) error {
	rb, ok := ecs.Get(w, e, physics.RigidbodyComponent)
	if !ok {
		return ErrNoRigidbody
	}
	compiled, err := compile(c.Name, c.source)
	if err != nil {
		return err
	}
	c.body = rb
	c.collider, _ = ecs.Get(w, e, collision.ColliderComponent)

	c.mu.Lock()
	c.compiled = compiled
	c.mu.Unlock()
	return nil
}

// Reload swaps in new source. On a compile error the old script keeps
// running.
func (c *Controller) Reload(source []byte) error {
	compiled, err := compile(c.Name, source)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.source = source
	c.compiled = compiled
	c.mu.Unlock()
	return nil
}

func (c *Controller) Update(w *ecs.World, e ecs.Entity, ctx *ecs.UpdateContext) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.compiled == nil || c.body == nil {
		return
	}

	pos, vel := c.body.Position(), c.body.Velocity()
	blocked := false
	if c.collider != nil {
		if hit, err := c.collider.RaycastAgainstScene(); err == nil {
			blocked = hit
		}
	}

	vars := map[string]any{
		"dt":       ctx.DeltaTime,
		"grounded": c.body.Contacts().Bottom,
		"blocked":  blocked,
		"x":        pos.X,
		"y":        pos.Y,
		"vx":       vel.X,
		"vy":       vel.Y,
	}
	for _, a := range actions {
		vars[a] = c.input != nil && c.input.Pressed(a)
	}
	for name, v := range vars {
		if err := c.compiled.Set(name, v); err != nil {
			log.Printf("Script: %s: set %s: %v", c.Name, name, err)
			return
		}
	}
	if err := c.compiled.Set("state", c.state); err != nil {
		log.Printf("Script: %s: set state: %v", c.Name, err)
		return
	}

	if err := c.compiled.Run(); err != nil {
		log.Printf("Script: %s: %v", c.Name, err)
		return
	}

	c.body.SetVelocity(cp.Vector{
		X: c.compiled.Get("vx").Float(),
		Y: c.compiled.Get("vy").Float(),
	})
}
