package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/rigid2d/engine"
	"github.com/milk9111/rigid2d/geom"
	"github.com/milk9111/rigid2d/prefabs"
)

// One terminal cell covers this much of the world. Cells are about twice as
// tall as they are wide.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

type viewer struct {
	screen tcell.Screen
	eng    *engine.Engine
	scene  *prefabs.Scene
}

// cells returns the inclusive cell range covered by b.
func cells(b geom.Bounds) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(b.Left() / cellWidth))
	y0 = int(math.Floor(b.Top() / cellHeight))
	x1 = max(x0, int(math.Ceil(b.Right()/cellWidth))-1)
	y1 = max(y0, int(math.Ceil(b.Bottom()/cellHeight))-1)
	return x0, y0, x1, y1
}

func glyph(b prefabs.Body) rune {
	switch {
	case b.Collider.IsTrigger():
		return '$'
	case b.Rigidbody == nil || b.Rigidbody.IsStatic():
		return '█'
	case b.Controller != nil:
		return '@'
	}
	return '#'
}

func (v *viewer) draw() {
	v.screen.Clear()

	w := v.eng.World()
	for _, b := range v.scene.Bodies {
		if !w.IsActive(b.Entity) {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.FromImageColor(b.Color))
		r := glyph(b)
		for _, box := range b.Collider.BoundingBoxes() {
			x0, y0, x1, y1 := cells(box)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					v.screen.SetContent(x, y, r, nil, style)
				}
			}
		}
	}

	collected, total := v.scene.Collected()
	v.text(1, 0, fmt.Sprintf(" steps %d  collected %d/%d  [esc] quit ", v.eng.Physics().Steps(), collected, total))
	v.screen.Show()
}

func (v *viewer) text(x, y int, s string) {
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
