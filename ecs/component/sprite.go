package component

// Sprite carries the drawn size of an entity. Sprite colliders use it as
// their collision rectangle.
type Sprite struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var SpriteComponent = NewComponent[*Sprite]()
