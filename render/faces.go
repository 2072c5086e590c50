// Package render draws the scene from the capture camera into the capture
// buffer. It is a painter's algorithm over box faces and floor tiles.
package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/vhscam/common"
	"github.com/milk9111/vhscam/targeting"
)

// Box is an axis-aligned box to draw.
type Box struct {
	Min, Max mgl64.Vec3
	Color    color.RGBA
}

// Face is a projected quad in buffer pixels, y down.
type Face struct {
	Points [4]mgl64.Vec2
	Depth  float64
	Color  color.RGBA
}

type boxFace struct {
	normal  mgl64.Vec3
	corners [4][3]int // per corner: 0 picks Min, 1 picks Max, for x y z
	shade   float64
}

var boxFaces = [...]boxFace{
	{mgl64.Vec3{0, 1, 0}, [4][3]int{{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}}, 1.0},
	{mgl64.Vec3{0, -1, 0}, [4][3]int{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}}, 0.4},
	{mgl64.Vec3{0, 0, 1}, [4][3]int{{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}}, 0.8},
	{mgl64.Vec3{0, 0, -1}, [4][3]int{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}}, 0.7},
	{mgl64.Vec3{1, 0, 0}, [4][3]int{{1, 0, 1}, {1, 1, 1}, {1, 1, 0}, {1, 0, 0}}, 0.6},
	{mgl64.Vec3{-1, 0, 0}, [4][3]int{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}}, 0.5},
}

// Fog fades faces toward FogColor between FogNear and FogFar.
type Fog struct {
	Color     color.RGBA
	Near, Far float64
}

func (f Fog) apply(c color.RGBA, depth float64) color.RGBA {
	if f.Far <= f.Near {
		return c
	}
	t := common.Clamp((depth-f.Near)/(f.Far-f.Near), 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(common.Lerp(float64(a), float64(b), t)))
	}
	return color.RGBA{mix(c.R, f.Color.R), mix(c.G, f.Color.G), mix(c.B, f.Color.B), c.A}
}

// BoxFaces projects the camera-facing sides of boxes and returns them sorted
// far to near. Faces with a corner behind the near plane are dropped.
func BoxFaces(cam *targeting.PerspectiveCamera, boxes []Box, fog Fog) []Face {
	view := cam.View()
	faces := make([]Face, 0, len(boxes)*3)
	for _, b := range boxes {
		corner := func(sel [3]int) mgl64.Vec3 {
			var p mgl64.Vec3
			for axis := 0; axis < 3; axis++ {
				if sel[axis] == 1 {
					p[axis] = b.Max[axis]
				} else {
					p[axis] = b.Min[axis]
				}
			}
			return p
		}
		for _, bf := range boxFaces {
			var world [4]mgl64.Vec3
			var center mgl64.Vec3
			for i, sel := range bf.corners {
				world[i] = corner(sel)
				center = center.Add(world[i])
			}
			center = center.Mul(0.25)
			if bf.normal.Dot(center.Sub(cam.Eye)) >= 0 {
				continue
			}
			face, ok := project(cam, view, world, shade(b.Color, bf.shade))
			if !ok {
				continue
			}
			face.Color = fog.apply(face.Color, face.Depth)
			faces = append(faces, face)
		}
	}
	sortFarToNear(faces)
	return faces
}

// FloorFaces tiles the ground plane around the camera in a checker pattern.
func FloorFaces(cam *targeting.PerspectiveCamera, tile float64, radius int, a, b color.RGBA, fog Fog) []Face {
	if tile <= 0 {
		return nil
	}
	view := cam.View()
	cx := int(math.Floor(cam.Eye.X() / tile))
	cz := int(math.Floor(cam.Eye.Z() / tile))
	faces := make([]Face, 0, (2*radius+1)*(2*radius+1))
	for ix := cx - radius; ix <= cx+radius; ix++ {
		for iz := cz - radius; iz <= cz+radius; iz++ {
			x0, z0 := float64(ix)*tile, float64(iz)*tile
			quad := [4]mgl64.Vec3{
				{x0, 0, z0},
				{x0 + tile, 0, z0},
				{x0 + tile, 0, z0 + tile},
				{x0, 0, z0 + tile},
			}
			c := a
			if (ix+iz)&1 != 0 {
				c = b
			}
			face, ok := project(cam, view, quad, c)
			if !ok {
				continue
			}
			face.Color = fog.apply(face.Color, face.Depth)
			faces = append(faces, face)
		}
	}
	sortFarToNear(faces)
	return faces
}

func project(cam *targeting.PerspectiveCamera, view mgl64.Mat4, world [4]mgl64.Vec3, c color.RGBA) (Face, bool) {
	var face Face
	depth := 0.0
	for i, p := range world {
		z := -view.Mul4x1(p.Vec4(1)).Z()
		if z < cam.Near {
			return Face{}, false
		}
		depth += z
		x, y, _ := cam.Project(p)
		face.Points[i] = mgl64.Vec2{x, y}
	}
	face.Depth = depth / 4
	face.Color = c
	return face, true
}

func shade(c color.RGBA, k float64) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * k)) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

func sortFarToNear(faces []Face) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Depth > faces[j].Depth
	})
}
