package collision

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/geom"
)

// TilemapCollider reports one box per solid tile, or greedy merged runs of
// solid tiles when Merge is set.
type TilemapCollider struct {
	base

	Merge bool
}

func NewTilemapCollider(w *ecs.World, e ecs.Entity) *TilemapCollider {
	return &TilemapCollider{base: base{world: w, entity: e}}
}

func (c *TilemapCollider) Start(w *ecs.World, e ecs.Entity) error {
	if _, ok := c.origin(); !ok {
		return ErrNoTransform
	}
	if _, ok := c.tilemap(); !ok {
		return ErrNoTilemap
	}
	return nil
}

func (c *TilemapCollider) tilemap() (*component.Tilemap, bool) {
	return ecs.Get(c.world, c.entity, component.TilemapComponent)
}

func (c *TilemapCollider) BoundingBoxes() []geom.Bounds {
	t, ok := c.origin()
	if !ok {
		return nil
	}
	tm, ok := c.tilemap()
	if !ok {
		return nil
	}

	var rects []TileRect
	if c.Merge {
		rects = MergeSolidTiles(tm)
	} else {
		rects = SolidTiles(tm)
	}

	origin := t.Position()
	out := make([]geom.Bounds, 0, len(rects))
	for _, r := range rects {
		pos := origin.Add(cp.Vector{X: float64(r.X) * tm.TileWidth, Y: float64(r.Y) * tm.TileHeight})
		size := cp.Vector{X: float64(r.W) * tm.TileWidth, Y: float64(r.H) * tm.TileHeight}
		out = append(out, geom.FromRect(pos, size))
	}
	return out
}

// CheckCollisionWithRectangle scans only the tiles under r.
func (c *TilemapCollider) CheckCollisionWithRectangle(r geom.Bounds) bool {
	return c.check(c.collidesWithRectangle(r))
}

func (c *TilemapCollider) collidesWithRectangle(r geom.Bounds) bool {
	t, ok := c.origin()
	if !ok {
		return false
	}
	tm, ok := c.tilemap()
	if !ok || tm.TileWidth <= 0 || tm.TileHeight <= 0 {
		return false
	}

	local := r.Translate(t.Position().Neg())
	x0, y0 := tm.TileAt(local.Left(), local.Top())
	x1 := int(math.Ceil(local.Right()/tm.TileWidth)) - 1
	y1 := int(math.Ceil(local.Bottom()/tm.TileHeight)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if tm.Solid(x, y) {
				return true
			}
		}
	}
	return false
}

func (c *TilemapCollider) RaycastAgainstScene() (bool, error) {
	return false, ErrRaycastUnsupported
}
