package geom

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

// ErrUninitialized is the panic value for overlap or union queries on a
// Bounds that was built from nothing.
var ErrUninitialized = errors.New("geom: bounds not initialized")

// Bounds is an axis-aligned rectangle in screen space (y grows downward),
// so Min is the top-left corner and Max the bottom-right one.
type Bounds struct {
	Min, Max cp.Vector

	initialized bool
}

// NewBounds builds a rectangle from its edges.
func NewBounds(left, top, right, bottom float64) Bounds {
	return FromPoints(cp.Vector{X: left, Y: top}, cp.Vector{X: right, Y: bottom})
}

// FromRect builds a rectangle from a top-left position and a size.
func FromRect(pos, size cp.Vector) Bounds {
	return FromPoints(pos, pos.Add(size))
}

// FromPoints returns the smallest rectangle holding every point. With no
// points the result is uninitialized.
func FromPoints(points ...cp.Vector) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	bb := cp.BB{L: points[0].X, B: points[0].Y, R: points[0].X, T: points[0].Y}
	for _, p := range points[1:] {
		bb = bb.Expand(p)
	}
	return fromBB(bb)
}

// FromBounds returns the rectangle enclosing every initialized input.
// Uninitialized inputs are skipped.
func FromBounds(bounds ...Bounds) Bounds {
	var out Bounds
	for _, b := range bounds {
		if !b.initialized {
			continue
		}
		if !out.initialized {
			out = b
			continue
		}
		out = out.Union(b)
	}
	return out
}

func fromBB(bb cp.BB) Bounds {
	return Bounds{
		Min:         cp.Vector{X: bb.L, Y: bb.B},
		Max:         cp.Vector{X: bb.R, Y: bb.T},
		initialized: true,
	}
}

// BB converts to a Chipmunk bounding box. cp's bottom/top map to our
// min/max y.
func (b Bounds) BB() cp.BB {
	return cp.BB{L: b.Min.X, B: b.Min.Y, R: b.Max.X, T: b.Max.Y}
}

func (b Bounds) Initialized() bool { return b.initialized }

func (b Bounds) Left() float64   { return b.Min.X }
func (b Bounds) Top() float64    { return b.Min.Y }
func (b Bounds) Right() float64  { return b.Max.X }
func (b Bounds) Bottom() float64 { return b.Max.Y }

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

func (b Bounds) Size() cp.Vector {
	return b.Max.Sub(b.Min)
}

func (b Bounds) Center() cp.Vector {
	return b.Min.Add(b.Max).Mult(0.5)
}

// Translate returns the rectangle moved by v.
func (b Bounds) Translate(v cp.Vector) Bounds {
	b.Min = b.Min.Add(v)
	b.Max = b.Max.Add(v)
	return b
}

// Contains reports whether other lies entirely inside b, edges included.
func (b Bounds) Contains(other Bounds) bool {
	b.mustBeInitialized()
	other.mustBeInitialized()
	return b.BB().Contains(other.BB())
}

// Overlap returns the intersection of b and other. Touching edges count as
// an overlap and yield a zero-width or zero-height rectangle.
func (b Bounds) Overlap(other Bounds) (Bounds, bool) {
	b.mustBeInitialized()
	other.mustBeInitialized()

	if !b.BB().Intersects(other.BB()) {
		return Bounds{}, false
	}
	return Bounds{
		Min: cp.Vector{
			X: math.Max(b.Min.X, other.Min.X),
			Y: math.Max(b.Min.Y, other.Min.Y),
		},
		Max: cp.Vector{
			X: math.Min(b.Max.X, other.Max.X),
			Y: math.Min(b.Max.Y, other.Max.Y),
		},
		initialized: true,
	}, true
}

// Union returns the smallest rectangle holding both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	b.mustBeInitialized()
	other.mustBeInitialized()
	return fromBB(b.BB().Merge(other.BB()))
}

func (b Bounds) mustBeInitialized() {
	if !b.initialized {
		panic(ErrUninitialized)
	}
}
