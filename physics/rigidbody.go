package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/collision"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/geom"
)

// Rigidbody is the per-entity simulation state. A body is static or dynamic
// for its whole life and joins the engine once, in Start.
type Rigidbody struct {
	engine  *Engine
	static  bool
	started bool
	entity  ecs.Entity

	position cp.Vector
	velocity cp.Vector
	contacts Contacts

	localBounds       geom.Bounds
	localCenterOfMass cp.Vector
}

var RigidbodyComponent = component.NewComponent[*Rigidbody]()

func NewRigidbody(engine *Engine, static bool) *Rigidbody {
	return &Rigidbody{engine: engine, static: static}
}

func (rb *Rigidbody) lock() {
	if rb.engine != nil {
		rb.engine.mu.Lock()
	}
}

func (rb *Rigidbody) unlock() {
	if rb.engine != nil {
		rb.engine.mu.Unlock()
	}
}

// Start captures the collider's boxes relative to the entity position and
// registers the body with its engine.
func (rb *Rigidbody) Start(w *ecs.World, e ecs.Entity) error {
	if rb.started {
		return ErrAlreadyStarted
	}
	if rb.engine == nil {
		return ErrNoEngine
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return ErrNoTransform
	}
	col, ok := ecs.Get(w, e, collision.ColliderComponent)
	if !ok {
		return ErrNoCollider
	}
	boxes := col.BoundingBoxes()
	if len(boxes) == 0 {
		return ErrNoBoundingBoxes
	}

	pos := t.Position()
	rb.lock()
	rb.started = true
	rb.entity = e
	rb.position = pos
	rb.localBounds = geom.FromBounds(boxes...).Translate(pos.Neg())
	rb.localCenterOfMass = rb.localBounds.Center()
	rb.unlock()

	if rb.static {
		rb.engine.AddStaticColliders(rb, boxes)
	} else {
		rb.engine.AddDynamicBody(rb)
	}
	return nil
}

// Update copies the simulated position onto the transform. It belongs to
// the render pass and never runs inside a physics step.
func (rb *Rigidbody) Update(w *ecs.World, e ecs.Entity, _ *ecs.UpdateContext) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	t.SetPosition(rb.Position())
}

// Destroy drops the body from its engine.
func (rb *Rigidbody) Destroy(w *ecs.World, e ecs.Entity) {
	if rb.engine != nil {
		rb.engine.RemoveBody(rb)
	}
}

func (rb *Rigidbody) IsStatic() bool { return rb.static }

func (rb *Rigidbody) Entity() ecs.Entity { return rb.entity }

func (rb *Rigidbody) Position() cp.Vector {
	rb.lock()
	defer rb.unlock()
	return rb.position
}

func (rb *Rigidbody) SetPosition(p cp.Vector) {
	rb.lock()
	defer rb.unlock()
	rb.position = p
}

func (rb *Rigidbody) Velocity() cp.Vector {
	rb.lock()
	defer rb.unlock()
	return rb.velocity
}

func (rb *Rigidbody) SetVelocity(v cp.Vector) {
	rb.lock()
	defer rb.unlock()
	rb.velocity = v
}

func (rb *Rigidbody) Contacts() Contacts {
	rb.lock()
	defer rb.unlock()
	return rb.contacts
}

func (rb *Rigidbody) LocalBounds() geom.Bounds {
	rb.lock()
	defer rb.unlock()
	return rb.localBounds
}

func (rb *Rigidbody) CenterOfMass() cp.Vector {
	rb.lock()
	defer rb.unlock()
	return rb.localCenterOfMass
}

// BoundingBox returns the body's box in world space.
func (rb *Rigidbody) BoundingBox() geom.Bounds {
	rb.lock()
	defer rb.unlock()
	return rb.boundingBox()
}

func (rb *Rigidbody) boundingBox() geom.Bounds {
	return rb.localBounds.Translate(rb.position)
}

// FixedUpdate integrates one step with semi-implicit Euler: velocity first,
// then position with the new velocity. Static bodies never move.
func (rb *Rigidbody) FixedUpdate(ctx UpdateContext) {
	rb.lock()
	defer rb.unlock()
	rb.fixedUpdate(ctx)
}

func (rb *Rigidbody) fixedUpdate(ctx UpdateContext) {
	if rb.static {
		return
	}
	rb.velocity = rb.velocity.Add(ctx.Gravity.Mult(ctx.FixedTimestep))
	rb.position = rb.position.Add(rb.velocity.Mult(ctx.FixedTimestep))
}

// ResolveCollisions pushes the body out of every hit along the axes where
// exactly one of its edges lines up with the overlap. Overlaps spanning the
// whole width (or height) or sitting inside the box give no push on that
// axis.
func (rb *Rigidbody) ResolveCollisions(hits []Hit2D) {
	rb.lock()
	defer rb.unlock()
	rb.resolveCollisions(hits)
}

func (rb *Rigidbody) resolveCollisions(hits []Hit2D) {
	box := rb.boundingBox()

	var net cp.Vector
	var contacts Contacts
	for _, hit := range hits {
		o := hit.Bounds
		left := o.Left() == box.Left()
		right := o.Right() == box.Right()
		top := o.Top() == box.Top()
		bottom := o.Bottom() == box.Bottom()

		if left != right {
			if left {
				net.X += o.Width()
				contacts.Left = true
			} else {
				net.X -= o.Width()
				contacts.Right = true
			}
		}
		if top != bottom {
			if top {
				net.Y += o.Height()
				contacts.Top = true
			} else {
				net.Y -= o.Height()
				contacts.Bottom = true
			}
		}
	}

	if (contacts.Left && rb.velocity.X < 0) || (contacts.Right && rb.velocity.X > 0) {
		rb.velocity.X = 0
	}
	if (contacts.Top && rb.velocity.Y < 0) || (contacts.Bottom && rb.velocity.Y > 0) {
		rb.velocity.Y = 0
	}
	rb.position = rb.position.Add(net)
	rb.contacts = contacts
}
