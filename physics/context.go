package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/geom"
)

// UpdateContext carries the per-step inputs every body integrates with.
type UpdateContext struct {
	Gravity       cp.Vector
	FixedTimestep float64
}

// Hit2D is one overlap found during detection. Hits live for a single step.
type Hit2D struct {
	// Bounds is the world-space overlap rectangle.
	Bounds geom.Bounds
	Static bool
	Body   *Rigidbody
}

// Contacts records which sides of a body were blocked in the last step.
type Contacts struct {
	Left   bool
	Right  bool
	Top    bool
	Bottom bool
}

func (c Contacts) Any() bool {
	return c.Left || c.Right || c.Top || c.Bottom
}
