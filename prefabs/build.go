package prefabs

import (
	"fmt"
	"image/color"
	"log"

	"github.com/milk9111/rigid2d/collision"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/engine"
	"github.com/milk9111/rigid2d/levels"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/script"
)

// Scene is what Build spawned, in spec order.
type Scene struct {
	Spec   SceneSpec
	Bodies []Body

	collected int
	triggers  int
}

type Body struct {
	Name       string
	Entity     ecs.Entity
	Collider   collision.Collider
	Rigidbody  *physics.Rigidbody
	Controller *script.Controller
	Color      color.Color
}

func (s *Scene) Find(name string) (Body, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}

// Collected reports how many triggers have been picked up so far.
func (s *Scene) Collected() (int, int) {
	return s.collected, s.triggers
}

// Build spawns every body of spec into eng. The physics engine is created
// from the spec when eng does not have one yet.
func Build(eng *engine.Engine, spec SceneSpec, input script.Input) (*Scene, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	p := eng.Physics()
	if p == nil {
		mode, err := engine.ParseMode(spec.Physics.Mode)
		if err != nil {
			return nil, err
		}
		if p, err = eng.InitializePhysicsEngine(spec.Physics.FixedTimestep, mode); err != nil {
			return nil, err
		}
	}
	ApplyPhysics(p, spec.Physics)

	scene := &Scene{Spec: spec}
	for _, bs := range spec.Bodies {
		body, err := buildBody(eng, p, bs, input)
		if err != nil {
			return nil, fmt.Errorf("prefabs: build %s: %w", bs.Name, err)
		}
		if bs.Trigger {
			scene.triggers++
		}
		scene.Bodies = append(scene.Bodies, body)
	}
	if scene.triggers > 0 {
		eng.World().AddSystem(ecs.SystemFunc(scene.collect))
	}
	return scene, nil
}

// ApplyPhysics pushes the tunable parts of a physics spec into p.
func ApplyPhysics(p *physics.Engine, ps PhysicsSpec) {
	p.SetGravity(ps.Gravity.Vector())
	p.SetWorkers(ps.Workers)
}

func buildBody(eng *engine.Engine, p *physics.Engine, bs BodySpec, input script.Input) (Body, error) {
	w := eng.World()
	e, tr := eng.InstantiateGameObject()
	tr.SetPosition(bs.Position.Vector())
	if err := ecs.Add(w, e, component.NameComponent, &component.Name{Value: bs.Name}); err != nil {
		return Body{}, err
	}

	body := Body{Name: bs.Name, Entity: e, Color: color.White}
	if bs.Color != nil {
		body.Color = bs.Color.Color
	}

	switch {
	case bs.Sprite != nil:
		sprite := &component.Sprite{
			Width:   bs.Sprite.Width,
			Height:  bs.Sprite.Height,
			OffsetX: bs.Sprite.OffsetX,
			OffsetY: bs.Sprite.OffsetY,
		}
		if err := ecs.Add(w, e, component.SpriteComponent, sprite); err != nil {
			return Body{}, err
		}
		body.Collider = collision.NewSpriteCollider(w, e)
	case bs.Tilemap != nil:
		lvl, err := levels.LoadLevelFromFS(bs.Tilemap.Level)
		if err != nil {
			return Body{}, err
		}
		if err := ecs.Add(w, e, component.TilemapComponent, lvl.Tilemap()); err != nil {
			return Body{}, err
		}
		tc := collision.NewTilemapCollider(w, e)
		tc.Merge = bs.Tilemap.Merge
		body.Collider = tc
	}
	body.Collider.SetTrigger(bs.Trigger)
	if err := ecs.Add(w, e, collision.ColliderComponent, body.Collider); err != nil {
		return Body{}, err
	}
	if bs.Trigger {
		return body, nil
	}

	body.Rigidbody = physics.NewRigidbody(p, bs.Static)
	body.Rigidbody.SetVelocity(bs.Velocity.Vector())
	if err := ecs.Add(w, e, physics.RigidbodyComponent, body.Rigidbody); err != nil {
		return Body{}, err
	}

	if bs.Script != "" {
		src, err := LoadScript(bs.Script)
		if err != nil {
			return Body{}, fmt.Errorf("load script %s: %w", bs.Script, err)
		}
		body.Controller = script.NewController(bs.Script, src, input)
		if err := ecs.Add(w, e, script.ControllerComponent, body.Controller); err != nil {
			return Body{}, err
		}
	}
	return body, nil
}

// collect turns trigger notifications into pickups: the trigger entity is
// deactivated and counted once.
func (s *Scene) collect(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		if evt.Type != collision.TriggerMessage {
			continue
		}
		e, ok := evt.Data.(ecs.Entity)
		if !ok || !w.IsActive(e) {
			continue
		}
		w.SetActive(e, false)
		s.collected++

		name := e.String()
		if n, ok := ecs.Get(w, e, component.NameComponent); ok {
			name = n.Value
		}
		log.Printf("Scene: collected %s (%d/%d)", name, s.collected, s.triggers)
		if s.collected == s.triggers {
			log.Printf("Scene: everything collected")
		}
	}
}

// ReloadScripts recompiles every controller that runs the named script.
func (s *Scene) ReloadScripts(name string) error {
	src, err := LoadScript(name)
	if err != nil {
		return err
	}
	for _, b := range s.Bodies {
		if b.Controller == nil || cleanScriptPath(b.Controller.Name) != cleanScriptPath(name) {
			continue
		}
		if err := b.Controller.Reload(src); err != nil {
			return err
		}
	}
	return nil
}
