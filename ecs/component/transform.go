package component

import "github.com/jakecoffman/cp"

// Transform is the render-side position of an entity. For entities with a
// dynamic rigidbody it is a copy refreshed once per frame, not the source
// of truth.
type Transform struct {
	X float64
	Y float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X = p.X
	t.Y = p.Y
}

var TransformComponent = NewComponent[*Transform]()
