package render

import (
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/vhscam/capture"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/targeting"
)

var (
	skyColor    = color.RGBA{R: 0x1c, G: 0x22, B: 0x2e, A: 0xff}
	floorLight  = color.RGBA{R: 0x5a, G: 0x5e, B: 0x52, A: 0xff}
	floorDark   = color.RGBA{R: 0x3e, G: 0x42, B: 0x38, A: 0xff}
	defaultFog  = Fog{Color: skyColor, Near: 6, Far: 30}
	floorTile   = 1.0
	floorRadius = 24
)

// SceneRenderer draws every visible Renderable box of a world as seen from
// the capture camera. It implements capture.Renderer.
type SceneRenderer struct {
	world    *ecs.World
	camera   func() *targeting.PerspectiveCamera
	whiteImg *ebiten.Image
	warned   bool

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewSceneRenderer(w *ecs.World, camera func() *targeting.PerspectiveCamera) *SceneRenderer {
	return &SceneRenderer{world: w, camera: camera}
}

func (r *SceneRenderer) Render(dst capture.Buffer) {
	img, ok := dst.(*ebiten.Image)
	if !ok || img == nil {
		if !r.warned {
			log.Printf("render: unsupported capture buffer %T", dst)
			r.warned = true
		}
		return
	}
	img.Fill(skyColor)

	var cam *targeting.PerspectiveCamera
	if r.camera != nil {
		cam = r.camera()
	}
	if cam == nil {
		return
	}
	// The buffer may have just been recreated at a new size.
	c := *cam
	size := img.Bounds().Size()
	c.Width, c.Height = size.X, size.Y

	if r.whiteImg == nil {
		r.whiteImg = ebiten.NewImage(1, 1)
		r.whiteImg.Fill(color.White)
	}

	r.fill(img, FloorFaces(&c, floorTile, floorRadius, floorLight, floorDark, defaultFog))
	r.fill(img, BoxFaces(&c, Boxes(r.world), defaultFog))
}

// Boxes collects the boxes of every visible Renderable with a collider.
func Boxes(w *ecs.World) []Box {
	var boxes []Box
	for _, e := range w.Query(
		component.RenderableComponent.Kind(),
		component.TransformComponent.Kind(),
		component.BoxColliderComponent.Kind(),
	) {
		rend, _ := ecs.Get(w, e, component.RenderableComponent.Kind())
		if rend.Hidden {
			continue
		}
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		col, _ := ecs.Get(w, e, component.BoxColliderComponent.Kind())
		center := tr.Position.Add(col.Offset)
		boxes = append(boxes, Box{
			Min:   center.Sub(col.HalfExtents),
			Max:   center.Add(col.HalfExtents),
			Color: rend.Color,
		})
	}
	return boxes
}

func (r *SceneRenderer) fill(dst *ebiten.Image, faces []Face) {
	for start := 0; start < len(faces); {
		// uint16 indices cap a batch
		end := min(len(faces), start+16000)
		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
		for _, f := range faces[start:end] {
			base := uint16(len(r.vertices))
			for _, p := range f.Points {
				r.vertices = append(r.vertices, vertex(p, f.Color))
			}
			r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
		}
		dst.DrawTriangles(r.vertices, r.indices, r.whiteImg, &ebiten.DrawTrianglesOptions{AntiAlias: false})
		start = end
	}
}

func vertex(p mgl64.Vec2, c color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(p.X()),
		DstY:   float32(p.Y()),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}
