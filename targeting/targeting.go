// Package targeting turns a pointer position over the displayed capture feed
// into a world ray through the capture camera and resolves what it hits.
package targeting

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/vhscam/ecs"
)

// Rect is the on-screen display rectangle in screen pixels, y down.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// PointerSample is a pointer position normalized over the display rectangle.
// (0,0) is the bottom-left corner and (1,1) the top-right.
type PointerSample struct {
	U, V float64
}

func (s PointerSample) Inside() bool {
	return s.U >= 0 && s.U <= 1 && s.V >= 0 && s.V <= 1
}

// ToLocal maps a screen point into the rectangle's local space: origin at the
// center, y up.
func ToLocal(px, py float64, r Rect) mgl64.Vec2 {
	cx, cy := r.Center()
	return mgl64.Vec2{px - cx, cy - py}
}

// UV normalizes a local point using the rectangle's half extents. A
// degenerate rectangle yields the center.
func UV(local mgl64.Vec2, r Rect) PointerSample {
	if r.W <= 0 || r.H <= 0 {
		return PointerSample{U: 0.5, V: 0.5}
	}
	return PointerSample{
		U: (local.X() + r.W/2) / r.W,
		V: (local.Y() + r.H/2) / r.H,
	}
}

func Sample(px, py float64, r Rect) PointerSample {
	return UV(ToLocal(px, py, r), r)
}

type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Camera is the capture camera as seen by targeting.
type Camera interface {
	// PixelSize is the camera's render resolution, which is the capture
	// buffer size and not the display rectangle size.
	PixelSize() (int, int)
	// ScreenPointToRay takes camera pixel coordinates with y up.
	ScreenPointToRay(x, y float64) (Ray, bool)
	Position() mgl64.Vec3
}

// ComputeRay builds the world ray under a screen pointer. UV is scaled by the
// camera's pixel resolution before unprojecting.
func ComputeRay(px, py float64, r Rect, cam Camera) (Ray, PointerSample, bool) {
	s := Sample(px, py, r)
	if cam == nil {
		return Ray{}, s, false
	}
	w, h := cam.PixelSize()
	ray, ok := cam.ScreenPointToRay(s.U*float64(w), s.V*float64(h))
	return ray, s, ok
}

type Hit struct {
	Entity ecs.Entity
	Point  mgl64.Vec3
	// Distance is measured from the camera position, not the ray origin.
	Distance float64
}

// Raycaster is a bounded collision query against the scene.
type Raycaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDistance float64) (ecs.Entity, mgl64.Vec3, bool)
}

// QueryHit casts ray into world and accepts the nearest hit whose distance
// from the camera is at most maxDistance.
func QueryHit(world Raycaster, cam Camera, ray Ray, maxDistance float64) (Hit, bool) {
	if world == nil || cam == nil || maxDistance <= 0 {
		return Hit{}, false
	}
	e, point, ok := world.Raycast(ray.Origin, ray.Dir, maxDistance)
	if !ok {
		return Hit{}, false
	}
	d := point.Sub(cam.Position()).Len()
	if d > maxDistance {
		return Hit{}, false
	}
	return Hit{Entity: e, Point: point, Distance: d}, true
}
