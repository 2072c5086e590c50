package targeting

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera is a yaw/pitch camera rendering at Width x Height.
// Yaw 0 looks down -Z. Angles are radians, FOV is vertical degrees.
type PerspectiveCamera struct {
	Eye    mgl64.Vec3
	Yaw    float64
	Pitch  float64
	FOV    float64
	Near   float64
	Far    float64
	Width  int
	Height int
}

func (c *PerspectiveCamera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), -math.Cos(c.Yaw) * cp}
}

func (c *PerspectiveCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Eye.Add(c.Forward()), mgl64.Vec3{0, 1, 0})
}

func (c *PerspectiveCamera) Projection() mgl64.Mat4 {
	w, h := c.PixelSize()
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), float64(w)/float64(h), c.Near, c.Far)
}

func (c *PerspectiveCamera) PixelSize() (int, int) {
	return max(1, c.Width), max(1, c.Height)
}

func (c *PerspectiveCamera) Position() mgl64.Vec3 {
	return c.Eye
}

func (c *PerspectiveCamera) ScreenPointToRay(x, y float64) (Ray, bool) {
	w, h := c.PixelSize()
	view, proj := c.View(), c.Projection()
	near, err := mgl64.UnProject(mgl64.Vec3{x, y, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{x, y, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, false
	}
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near, Dir: dir.Normalize()}, true
}

// Project maps a world point to camera pixel coordinates with y down, plus
// its window depth in [0,1].
func (c *PerspectiveCamera) Project(p mgl64.Vec3) (x, y, depth float64) {
	w, h := c.PixelSize()
	win := mgl64.Project(p, c.View(), c.Projection(), 0, 0, w, h)
	return win.X(), float64(h) - win.Y(), win.Z()
}
