package component

import "github.com/go-gl/mathgl/mgl64"

// BoxCollider is an axis-aligned box centered on the entity transform.
// Solid boxes block the character; non-solid ones are only hit by rays.
type BoxCollider struct {
	HalfExtents mgl64.Vec3
	Offset      mgl64.Vec3
	Solid       bool
}

var BoxColliderComponent = NewComponent[BoxCollider]()
