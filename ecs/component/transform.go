package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an entity in the world. Y is up; Yaw is in degrees and
// turns clockwise when seen from above, so Yaw 0 faces -Z and Yaw 90 faces +X.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Forward returns the unit facing direction on the ground plane.
func (t Transform) Forward() mgl64.Vec3 {
	rad := mgl64.DegToRad(t.Yaw)
	return mgl64.Vec3{math.Sin(rad), 0, -math.Cos(rad)}
}

var TransformComponent = NewComponent[Transform]()
