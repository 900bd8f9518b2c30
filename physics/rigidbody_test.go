package physics

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/collision"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/geom"
)

func newTestEngine(t *testing.T, dt float64) *Engine {
	t.Helper()
	eng, err := NewEngine(dt)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	eng.SetLogger(nil)
	return eng
}

// spriteBody builds an entity with a sprite collider and a rigidbody. The
// world is not started.
func spriteBody(t *testing.T, w *ecs.World, eng *Engine, x, y, wd, ht float64, static bool) (ecs.Entity, *Rigidbody) {
	t.Helper()
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent, &component.Sprite{Width: wd, Height: ht}); err != nil {
		t.Fatalf("add sprite: %v", err)
	}
	if err := ecs.Add[collision.Collider](w, e, collision.ColliderComponent, collision.NewSpriteCollider(w, e)); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	rb := NewRigidbody(eng, static)
	if err := ecs.Add(w, e, RigidbodyComponent, rb); err != nil {
		t.Fatalf("add rigidbody: %v", err)
	}
	return e, rb
}

// box returns an unregistered dynamic body covering (x, y, x+w, y+h).
func box(x, y, w, h float64) *Rigidbody {
	return &Rigidbody{
		position:    cp.Vector{X: x, Y: y},
		localBounds: geom.NewBounds(0, 0, w, h),
	}
}

func TestRigidbodyStart(t *testing.T) {
	w := ecs.NewWorld()
	eng := newTestEngine(t, 1)
	e, rb := spriteBody(t, w, eng, 4, 6, 10, 20, false)

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if rb.Entity() != e {
		t.Fatalf("entity = %v, want %v", rb.Entity(), e)
	}
	if got := rb.Position(); got != (cp.Vector{X: 4, Y: 6}) {
		t.Fatalf("position = %v", got)
	}
	if got := rb.LocalBounds(); got != geom.NewBounds(0, 0, 10, 20) {
		t.Fatalf("local bounds = %+v", got)
	}
	if got := rb.CenterOfMass(); got != (cp.Vector{X: 5, Y: 10}) {
		t.Fatalf("center of mass = %v", got)
	}
	if got := rb.BoundingBox(); got != geom.NewBounds(4, 6, 14, 26) {
		t.Fatalf("bounding box = %+v", got)
	}
	if bodies := eng.DynamicBodies(); len(bodies) != 1 || bodies[0] != rb {
		t.Fatalf("dynamic bodies = %v", bodies)
	}
	if err := rb.Start(w, e); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestRigidbodyStartErrors(t *testing.T) {
	eng := newTestEngine(t, 1)

	tests := []struct {
		name  string
		setup func(w *ecs.World, e ecs.Entity) *Rigidbody
		want  error
	}{
		{
			name: "no engine",
			setup: func(w *ecs.World, e ecs.Entity) *Rigidbody {
				return NewRigidbody(nil, false)
			},
			want: ErrNoEngine,
		},
		{
			name: "no transform",
			setup: func(w *ecs.World, e ecs.Entity) *Rigidbody {
				return NewRigidbody(eng, false)
			},
			want: ErrNoTransform,
		},
		{
			name: "no collider",
			setup: func(w *ecs.World, e ecs.Entity) *Rigidbody {
				_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{})
				return NewRigidbody(eng, false)
			},
			want: ErrNoCollider,
		},
		{
			name: "no boxes",
			setup: func(w *ecs.World, e ecs.Entity) *Rigidbody {
				_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{})
				_ = ecs.Add[collision.Collider](w, e, collision.ColliderComponent, collision.NewSpriteCollider(w, e))
				return NewRigidbody(eng, false)
			},
			want: ErrNoBoundingBoxes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := w.CreateEntity()
			rb := tt.setup(w, e)
			if err := rb.Start(w, e); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFixedUpdateSemiImplicitEuler(t *testing.T) {
	rb := box(0, 0, 1, 1)
	rb.FixedUpdate(UpdateContext{Gravity: cp.Vector{X: 0, Y: 10}, FixedTimestep: 0.5})

	if got := rb.Velocity(); got != (cp.Vector{X: 0, Y: 5}) {
		t.Fatalf("velocity = %v, want (0, 5)", got)
	}
	if got := rb.Position(); got != (cp.Vector{X: 0, Y: 2.5}) {
		t.Fatalf("position = %v, want (0, 2.5)", got)
	}
}

func TestStaticFixedUpdateNeverMoves(t *testing.T) {
	tests := []UpdateContext{
		{Gravity: cp.Vector{X: 0, Y: 10}, FixedTimestep: 1},
		{Gravity: cp.Vector{X: -3, Y: 7}, FixedTimestep: 0.016},
		{Gravity: cp.Vector{}, FixedTimestep: 100},
	}
	for _, ctx := range tests {
		rb := box(3, 4, 1, 1)
		rb.static = true
		rb.velocity = cp.Vector{X: 1, Y: 2}
		rb.FixedUpdate(ctx)
		if rb.Position() != (cp.Vector{X: 3, Y: 4}) || rb.Velocity() != (cp.Vector{X: 1, Y: 2}) {
			t.Fatalf("static body moved under %+v: pos %v vel %v", ctx, rb.Position(), rb.Velocity())
		}
	}
}

func TestResolveCollisions(t *testing.T) {
	tests := []struct {
		name     string
		velocity cp.Vector
		overlaps []geom.Bounds
		wantPos  cp.Vector
		wantVel  cp.Vector
		contacts Contacts
	}{
		{
			name:     "falling onto floor",
			velocity: cp.Vector{X: 0, Y: 3},
			overlaps: []geom.Bounds{geom.NewBounds(0, 7, 10, 10)},
			wantPos:  cp.Vector{X: 0, Y: -3},
			wantVel:  cp.Vector{X: 0, Y: 0},
			contacts: Contacts{Bottom: true},
		},
		{
			name:     "leaving floor keeps velocity",
			velocity: cp.Vector{X: 0, Y: -5},
			overlaps: []geom.Bounds{geom.NewBounds(0, 7, 10, 10)},
			wantPos:  cp.Vector{X: 0, Y: -3},
			wantVel:  cp.Vector{X: 0, Y: -5},
			contacts: Contacts{Bottom: true},
		},
		{
			name:     "ceiling",
			velocity: cp.Vector{X: 0, Y: -4},
			overlaps: []geom.Bounds{geom.NewBounds(0, 0, 10, 3)},
			wantPos:  cp.Vector{X: 0, Y: 3},
			wantVel:  cp.Vector{X: 0, Y: 0},
			contacts: Contacts{Top: true},
		},
		{
			name:     "wall on the left",
			velocity: cp.Vector{X: -1, Y: 2},
			overlaps: []geom.Bounds{geom.NewBounds(0, 0, 2, 10)},
			wantPos:  cp.Vector{X: 2, Y: 0},
			wantVel:  cp.Vector{X: 0, Y: 2},
			contacts: Contacts{Left: true},
		},
		{
			name:     "wall on the right",
			velocity: cp.Vector{X: 1, Y: 0},
			overlaps: []geom.Bounds{geom.NewBounds(8, 0, 10, 10)},
			wantPos:  cp.Vector{X: -2, Y: 0},
			wantVel:  cp.Vector{X: 0, Y: 0},
			contacts: Contacts{Right: true},
		},
		{
			name:     "floor and wall",
			velocity: cp.Vector{X: 2, Y: 2},
			overlaps: []geom.Bounds{
				geom.NewBounds(0, 9, 10, 10),
				geom.NewBounds(9, 0, 10, 10),
			},
			wantPos:  cp.Vector{X: -1, Y: -1},
			wantVel:  cp.Vector{X: 0, Y: 0},
			contacts: Contacts{Right: true, Bottom: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := box(0, 0, 10, 10)
			rb.velocity = tt.velocity

			hits := make([]Hit2D, 0, len(tt.overlaps))
			for _, o := range tt.overlaps {
				hits = append(hits, Hit2D{Bounds: o, Static: true})
			}
			rb.ResolveCollisions(hits)

			if got := rb.Position(); got != tt.wantPos {
				t.Fatalf("position = %v, want %v", got, tt.wantPos)
			}
			if got := rb.Velocity(); got != tt.wantVel {
				t.Fatalf("velocity = %v, want %v", got, tt.wantVel)
			}
			if got := rb.Contacts(); got != tt.contacts {
				t.Fatalf("contacts = %+v, want %+v", got, tt.contacts)
			}
		})
	}
}

// Edge matching only pushes along an axis where exactly one edge lines up.
// Overlaps inside the box or covering it entirely give no push at all, and
// a diagonal corner overlap pushes on both axes.
func TestResolveCollisionsEdgeMatchingApproximation(t *testing.T) {
	tests := []struct {
		name    string
		overlap geom.Bounds
		wantPos cp.Vector
	}{
		{"interior overlap is ignored", geom.NewBounds(3, 3, 6, 6), cp.Vector{}},
		{"body buried in a static box is ignored", geom.NewBounds(0, 0, 10, 10), cp.Vector{}},
		{"full height side strip only pushes sideways", geom.NewBounds(0, 0, 4, 10), cp.Vector{X: 4}},
		{"corner overlap pushes on both axes", geom.NewBounds(8, 8, 10, 10), cp.Vector{X: -2, Y: -2}},
		{"mid-edge overlap pushes on one axis", geom.NewBounds(4, 8, 6, 10), cp.Vector{Y: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := box(0, 0, 10, 10)
			rb.ResolveCollisions([]Hit2D{{Bounds: tt.overlap, Static: true}})
			if got := rb.Position(); got != tt.wantPos {
				t.Fatalf("position = %v, want %v", got, tt.wantPos)
			}
		})
	}
}

func TestRigidbodyUpdateCopiesPosition(t *testing.T) {
	w := ecs.NewWorld()
	eng := newTestEngine(t, 1)
	e, rb := spriteBody(t, w, eng, 0, 0, 1, 1, false)
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	rb.SetPosition(cp.Vector{X: 7, Y: -3})
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.X != 0 || tr.Y != 0 {
		t.Fatalf("transform moved before the update pass")
	}

	w.Update(&ecs.UpdateContext{DeltaTime: 1})
	if tr.X != 7 || tr.Y != -3 {
		t.Fatalf("transform = (%v, %v), want (7, -3)", tr.X, tr.Y)
	}
}

func TestDestroyEntityRemovesBody(t *testing.T) {
	w := ecs.NewWorld()
	eng := newTestEngine(t, 1)
	dyn, _ := spriteBody(t, w, eng, 0, 0, 1, 1, false)
	stat, _ := spriteBody(t, w, eng, 0, 5, 1, 1, true)
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	w.DestroyEntity(dyn)
	w.DestroyEntity(stat)
	if n := len(eng.DynamicBodies()); n != 0 {
		t.Fatalf("expected no dynamic bodies, got %d", n)
	}
	if n := len(eng.StaticBodies()); n != 0 {
		t.Fatalf("expected no static bodies, got %d", n)
	}
}
