package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/geom"
)

// SpriteCollider uses the entity's sprite rectangle as its only box.
type SpriteCollider struct {
	base
}

func NewSpriteCollider(w *ecs.World, e ecs.Entity) *SpriteCollider {
	return &SpriteCollider{base: base{world: w, entity: e}}
}

// Start fails when the entity has nothing to take the rectangle from.
func (c *SpriteCollider) Start(w *ecs.World, e ecs.Entity) error {
	if _, ok := c.origin(); !ok {
		return ErrNoTransform
	}
	if _, ok := ecs.Get(c.world, c.entity, component.SpriteComponent); !ok {
		return ErrNoSprite
	}
	return nil
}

// Rect returns the collision rectangle in world space.
func (c *SpriteCollider) Rect() (geom.Bounds, bool) {
	t, ok := c.origin()
	if !ok {
		return geom.Bounds{}, false
	}
	s, ok := ecs.Get(c.world, c.entity, component.SpriteComponent)
	if !ok {
		return geom.Bounds{}, false
	}
	pos := t.Position().Add(cp.Vector{X: s.OffsetX, Y: s.OffsetY})
	return geom.FromRect(pos, cp.Vector{X: s.Width, Y: s.Height}), true
}

func (c *SpriteCollider) BoundingBoxes() []geom.Bounds {
	r, ok := c.Rect()
	if !ok {
		return nil
	}
	return []geom.Bounds{r}
}

func (c *SpriteCollider) CheckCollisionWithRectangle(r geom.Bounds) bool {
	rect, ok := c.Rect()
	if !ok {
		return false
	}
	return c.check(intersects(rect, r))
}

func (c *SpriteCollider) RaycastAgainstScene() (bool, error) {
	rect, ok := c.Rect()
	if !ok {
		return false, ErrNoSprite
	}
	return Overlapping(c.world, c, rect), nil
}
