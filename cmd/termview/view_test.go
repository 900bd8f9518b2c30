package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/rigid2d/engine"
	"github.com/milk9111/rigid2d/geom"
	"github.com/milk9111/rigid2d/prefabs"
)

func TestCells(t *testing.T) {
	tests := []struct {
		name           string
		b              geom.Bounds
		x0, y0, x1, y1 int
	}{
		{"one cell", geom.NewBounds(0, 0, 8, 16), 0, 0, 0, 0},
		{"straddles cells", geom.NewBounds(4, 10, 12, 20), 0, 0, 1, 1},
		{"thin box", geom.NewBounds(20, 40, 20, 40), 2, 2, 2, 2},
		{"negative", geom.NewBounds(-8, -16, 0, 0), -1, -1, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1 := cells(tt.b)
			if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
				t.Fatalf("cells = (%d,%d,%d,%d), want (%d,%d,%d,%d)", x0, y0, x1, y1, tt.x0, tt.y0, tt.x1, tt.y1)
			}
		})
	}
}

func TestKeyInputHolds(t *testing.T) {
	k := newKeyInput()
	k.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !k.Pressed("jump") {
		t.Fatalf("expected jump held")
	}
	for i := 0; i < holdFrames; i++ {
		k.tick()
	}
	if k.Pressed("jump") {
		t.Fatalf("jump should release after %d frames", holdFrames)
	}
}

func TestViewerDraw(t *testing.T) {
	spec := prefabs.SceneSpec{
		Physics: prefabs.PhysicsSpec{FixedTimestep: 1},
		Bodies: []prefabs.BodySpec{
			{Name: "floor", Static: true, Position: prefabs.VectorSpec{X: 0, Y: 32}, Sprite: &prefabs.SpriteSpec{Width: 32, Height: 16}},
			{Name: "coin", Trigger: true, Position: prefabs.VectorSpec{X: 24, Y: 16}, Sprite: &prefabs.SpriteSpec{Width: 8, Height: 16}},
		},
	}
	eng := engine.New()
	scene, err := prefabs.Build(eng, spec, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	eng.Physics().SetLogger(nil)
	if err := eng.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 4)

	v := &viewer{screen: screen, eng: eng, scene: scene}
	v.draw()

	at := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}
	for x := 0; x < 4; x++ {
		if got := at(x, 2); got != '█' {
			t.Fatalf("floor cell %d = %q", x, got)
		}
	}
	if got := at(3, 1); got != '$' {
		t.Fatalf("coin cell = %q", got)
	}
	if got := at(5, 3); got != ' ' {
		t.Fatalf("empty cell = %q", got)
	}
}
