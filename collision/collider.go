package collision

import (
	"errors"

	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/geom"
)

// TriggerMessage is broadcast to a trigger collider's entity whenever a
// rectangle query overlaps it.
const TriggerMessage = "trigger_collided"

var (
	ErrNoSprite           = errors.New("collision: sprite collider needs a Sprite component")
	ErrNoTilemap          = errors.New("collision: tilemap collider needs a Tilemap component")
	ErrNoTransform        = errors.New("collision: collider needs a Transform component")
	ErrRaycastUnsupported = errors.New("collision: scene raycast is not implemented for tilemap colliders")
)

// Collider is the capability an entity exposes to the physics engine and
// to scene queries. SpriteCollider and TilemapCollider are the only
// implementations.
type Collider interface {
	// BoundingBoxes reports the collider's rectangles at the entity's
	// current world position.
	BoundingBoxes() []geom.Bounds
	// CheckCollisionWithRectangle reports whether r blocks against this
	// collider. Triggers notify their entity instead and never block.
	CheckCollisionWithRectangle(r geom.Bounds) bool
	// RaycastAgainstScene reports whether this collider overlaps any other
	// active collider in the world.
	RaycastAgainstScene() (bool, error)

	IsTrigger() bool
	SetTrigger(trigger bool)
	Entity() ecs.Entity
}

var ColliderComponent = component.NewComponent[Collider]()

type base struct {
	world   *ecs.World
	entity  ecs.Entity
	trigger bool
}

func (b *base) Entity() ecs.Entity { return b.entity }

func (b *base) IsTrigger() bool { return b.trigger }

func (b *base) SetTrigger(trigger bool) { b.trigger = trigger }

func (b *base) origin() (*component.Transform, bool) {
	return ecs.Get(b.world, b.entity, component.TransformComponent)
}

func (b *base) check(collides bool) bool {
	if collides && b.trigger {
		b.world.BroadcastMessage(b.entity, TriggerMessage)
	}
	return !b.trigger && collides
}

// Overlapping asks every other active collider in w whether r blocks
// against it. All colliders are visited so each overlapped trigger hears
// about it.
func Overlapping(w *ecs.World, self Collider, r geom.Bounds) bool {
	hit := false
	for _, e := range w.Query(ColliderComponent.ID()) {
		if !w.IsActive(e) {
			continue
		}
		other, ok := ecs.Get(w, e, ColliderComponent)
		if !ok || other == self {
			continue
		}
		if other.CheckCollisionWithRectangle(r) {
			hit = true
		}
	}
	return hit
}

// intersects is the strict test used by rectangle queries: shapes that only
// touch along an edge do not collide.
func intersects(a, b geom.Bounds) bool {
	o, ok := a.Overlap(b)
	return ok && o.Width() > 0 && o.Height() > 0
}
