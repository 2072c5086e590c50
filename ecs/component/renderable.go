package component

import "image/color"

// Renderable marks an entity the capture camera draws as a shaded box using
// the extents of its BoxCollider.
type Renderable struct {
	Color  color.RGBA
	Hidden bool
}

var RenderableComponent = NewComponent[Renderable]()
