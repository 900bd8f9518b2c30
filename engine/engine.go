// Package engine ties the entity world to a physics engine and drives both
// from the host's frame loop.
package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/rigid2d/collision"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/geom"
	"github.com/milk9111/rigid2d/physics"
)

// Mode picks who steps the physics engine.
type Mode string

const (
	// ModeStepped runs one physics step per Update on the caller's goroutine.
	ModeStepped Mode = "stepped"
	// ModeThreaded runs physics on its own goroutine at the fixed timestep.
	ModeThreaded Mode = "threaded"
)

var (
	ErrPhysicsInitialized = errors.New("engine: physics engine already initialized")
	ErrUnknownMode        = errors.New("engine: unknown physics mode")
)

// ParseMode maps a flag or config value to a Mode. Empty means stepped.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeStepped:
		return ModeStepped, nil
	case ModeThreaded:
		return ModeThreaded, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Engine owns one world and at most one physics engine.
type Engine struct {
	world   *ecs.World
	physics *physics.Engine
	mode    Mode
	frame   int
}

func New() *Engine {
	return &Engine{world: ecs.NewWorld(), mode: ModeStepped}
}

func (g *Engine) World() *ecs.World { return g.world }

// Physics returns the physics engine, or nil before InitializePhysicsEngine.
func (g *Engine) Physics() *physics.Engine { return g.physics }

func (g *Engine) Mode() Mode { return g.mode }

func (g *Engine) Frame() int { return g.frame }

// InitializePhysicsEngine creates the physics engine. A run gets exactly one.
func (g *Engine) InitializePhysicsEngine(fixedTimestep float64, mode Mode) (*physics.Engine, error) {
	if g.physics != nil {
		return nil, ErrPhysicsInitialized
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	p, err := physics.NewEngine(fixedTimestep)
	if err != nil {
		return nil, err
	}
	g.physics = p
	g.mode = mode
	log.Printf("Engine: physics initialized (timestep %v, %s)", fixedTimestep, mode)
	return p, nil
}

// InstantiateGameObject creates an entity with a Transform at the origin.
func (g *Engine) InstantiateGameObject() (ecs.Entity, *component.Transform) {
	e := g.world.CreateEntity()
	t := &component.Transform{}
	if err := ecs.Add(g.world, e, component.TransformComponent, t); err != nil {
		panic(fmt.Sprintf("engine: add transform to fresh entity: %v", err))
	}
	return e, t
}

// Startup starts every entity and, in threaded mode, the physics loop.
func (g *Engine) Startup() error {
	if err := g.world.Start(); err != nil {
		return fmt.Errorf("engine: startup: %w", err)
	}
	if g.physics != nil && g.mode == ModeThreaded {
		g.physics.RunPhysicsSimulation()
	}
	return nil
}

// Update runs one frame: a physics step in stepped mode, Start for entities
// created since the last frame, then the world update pass.
func (g *Engine) Update(dt float64) error {
	if g.physics != nil && g.mode == ModeStepped {
		g.physics.Update()
	}
	if err := g.world.Start(); err != nil {
		return fmt.Errorf("engine: start new entities: %w", err)
	}
	g.world.Update(&ecs.UpdateContext{DeltaTime: dt, Frame: g.frame})
	g.frame++
	return nil
}

// IsColliding reports whether rect blocks against any active collider other
// than c.
func (g *Engine) IsColliding(c collision.Collider, rect geom.Bounds) bool {
	return collision.Overlapping(g.world, c, rect)
}

// Shutdown stops physics before tearing down the entities.
func (g *Engine) Shutdown() {
	if g.physics != nil {
		g.physics.Shutdown()
	}
	for _, e := range g.world.Entities() {
		g.world.DestroyEntity(e)
	}
	log.Printf("Engine: shut down after %d frames", g.frame)
}
