package component

import "math"

// Tilemap is a row-major grid of tiles anchored at the entity transform.
// Tile value 0 is empty, anything else is solid.
type Tilemap struct {
	Columns    int
	Rows       int
	TileWidth  float64
	TileHeight float64
	Tiles      []int
}

// At returns the tile value at (x, y), or 0 outside the grid.
func (t *Tilemap) At(x, y int) int {
	if t == nil || x < 0 || y < 0 || x >= t.Columns || y >= t.Rows {
		return 0
	}
	idx := y*t.Columns + x
	if idx >= len(t.Tiles) {
		return 0
	}
	return t.Tiles[idx]
}

func (t *Tilemap) Solid(x, y int) bool {
	return t.At(x, y) != 0
}

// TileAt converts a position relative to the map origin into tile
// coordinates. Positions left of or above the origin give negative indices.
func (t *Tilemap) TileAt(localX, localY float64) (int, int) {
	if t == nil || t.TileWidth <= 0 || t.TileHeight <= 0 {
		return 0, 0
	}
	return int(math.Floor(localX / t.TileWidth)), int(math.Floor(localY / t.TileHeight))
}

var TilemapComponent = NewComponent[*Tilemap]()
