package collision

import "github.com/milk9111/rigid2d/ecs/component"

// TileRect is a rectangle in tile units.
type TileRect struct {
	X, Y, W, H int
}

// SolidTiles returns one rect per solid tile in row-major order.
func SolidTiles(tm *component.Tilemap) []TileRect {
	if tm == nil {
		return nil
	}
	var out []TileRect
	for y := 0; y < tm.Rows; y++ {
		for x := 0; x < tm.Columns; x++ {
			if tm.Solid(x, y) {
				out = append(out, TileRect{X: x, Y: y, W: 1, H: 1})
			}
		}
	}
	return out
}

// MergeSolidTiles covers the solid tiles with fewer, larger rectangles.
// Each run grows right first, then down while every tile in the next row
// of the run is solid and unclaimed.
func MergeSolidTiles(tm *component.Tilemap) []TileRect {
	if tm == nil || tm.Columns <= 0 || tm.Rows <= 0 {
		return nil
	}
	var out []TileRect
	processed := make([]bool, tm.Columns*tm.Rows)
	open := func(x, y int) bool {
		return !processed[y*tm.Columns+x] && tm.Solid(x, y)
	}

	for y := 0; y < tm.Rows; y++ {
		for x := 0; x < tm.Columns; x++ {
			if !open(x, y) {
				processed[y*tm.Columns+x] = true
				continue
			}

			w := 1
			for x+w < tm.Columns && open(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < tm.Rows {
				for xi := x; xi < x+w; xi++ {
					if !open(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*tm.Columns+xx] = true
				}
			}
			out = append(out, TileRect{X: x, Y: y, W: w, H: h})
		}
	}
	return out
}
