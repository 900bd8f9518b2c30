package prefabs

import (
	"testing"

	"github.com/milk9111/rigid2d/collision"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/engine"
	"github.com/milk9111/rigid2d/levels"
	"github.com/milk9111/rigid2d/script"
)

func TestBuildEmbeddedScene(t *testing.T) {
	spec, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	eng := engine.New()
	scene, err := Build(eng, spec, script.Actions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	eng.Physics().SetLogger(nil)
	if err := eng.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	defer eng.Shutdown()

	if len(scene.Bodies) != len(spec.Bodies) {
		t.Fatalf("built %d bodies, want %d", len(scene.Bodies), len(spec.Bodies))
	}

	p := eng.Physics()
	if got := p.Gravity(); got != spec.Physics.Gravity.Vector() {
		t.Fatalf("gravity = %v", got)
	}

	level, ok := scene.Find("level")
	if !ok || level.Rigidbody == nil || !level.Rigidbody.IsStatic() {
		t.Fatalf("expected a static level body")
	}
	boxes, ok := p.StaticBounds(level.Rigidbody)
	if !ok {
		t.Fatalf("level not registered as static")
	}
	lvl, err := levels.LoadLevelFromFS("sandbox.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	if want := len(collision.MergeSolidTiles(lvl.Tilemap())); len(boxes) != want {
		t.Fatalf("level has %d static boxes, want %d merged", len(boxes), want)
	}

	player, ok := scene.Find("player")
	if !ok || player.Controller == nil || player.Rigidbody == nil {
		t.Fatalf("expected a scripted player body")
	}
	name, ok := ecs.Get(eng.World(), player.Entity, component.NameComponent)
	if !ok || name.Value != "player" {
		t.Fatalf("player name component missing")
	}

	coin, ok := scene.Find("coin_low")
	if !ok || coin.Rigidbody != nil || !coin.Collider.IsTrigger() {
		t.Fatalf("coins should be trigger colliders without a rigidbody")
	}
	if _, total := scene.Collected(); total != 3 {
		t.Fatalf("expected 3 triggers, got %d", total)
	}

	for i := 0; i < 10; i++ {
		if err := eng.Update(spec.Physics.FixedTimestep); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if p.Steps() != 10 {
		t.Fatalf("steps = %d, want 10", p.Steps())
	}
}

func TestBuildCollectsTriggers(t *testing.T) {
	spec := SceneSpec{
		Physics: PhysicsSpec{FixedTimestep: 1},
		Bodies: []BodySpec{
			{Name: "hero", Sprite: &SpriteSpec{Width: 10, Height: 10}, Script: "player.tengo"},
			{Name: "gem", Position: VectorSpec{X: 2, Y: 2}, Trigger: true, Sprite: &SpriteSpec{Width: 4, Height: 4}},
			{Name: "far", Position: VectorSpec{X: 50, Y: 50}, Trigger: true, Sprite: &SpriteSpec{Width: 4, Height: 4}},
		},
	}
	eng := engine.New()
	scene, err := Build(eng, spec, script.Actions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	eng.Physics().SetLogger(nil)
	if err := eng.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	if err := eng.Update(1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, total := scene.Collected(); got != 1 || total != 2 {
		t.Fatalf("collected %d/%d, want 1/2", got, total)
	}
	gem, _ := scene.Find("gem")
	if eng.World().IsActive(gem.Entity) {
		t.Fatalf("collected trigger should be inactive")
	}

	if err := eng.Update(1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, _ := scene.Collected(); got != 1 {
		t.Fatalf("a trigger must only be collected once, got %d", got)
	}
}

func TestBuildReusesPhysicsEngine(t *testing.T) {
	eng := engine.New()
	p, err := eng.InitializePhysicsEngine(0.25, engine.ModeStepped)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	spec := SceneSpec{
		Physics: PhysicsSpec{FixedTimestep: 1, Workers: 3},
		Bodies:  []BodySpec{{Name: "box", Sprite: &SpriteSpec{Width: 1, Height: 1}}},
	}
	if _, err := Build(eng, spec, nil); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if eng.Physics() != p || p.FixedTimestep() != 0.25 {
		t.Fatalf("Build should keep the existing physics engine")
	}
}

func TestBuildReportsMissingAssets(t *testing.T) {
	tests := []struct {
		name string
		body BodySpec
	}{
		{"missing level", BodySpec{Name: "lvl", Static: true, Tilemap: &TilemapSpec{Level: "nope.json"}}},
		{"missing script", BodySpec{Name: "p", Sprite: &SpriteSpec{Width: 1, Height: 1}, Script: "nope.tengo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := SceneSpec{Physics: PhysicsSpec{FixedTimestep: 1}, Bodies: []BodySpec{tt.body}}
			if _, err := Build(engine.New(), spec, nil); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
