package vhs

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/vhscam/targeting"
)

// ShaderCompiler builds a shader from Kage source.
type ShaderCompiler func(src []byte) (*ebiten.Shader, error)

// Effect draws a capture buffer into the display rectangle. If the shader
// cannot be built the buffer is drawn plain.
type Effect struct {
	params Params
	shader *ebiten.Shader
	failed bool

	time   float64
	jitter [2]float64

	vertices [4]ebiten.Vertex
}

func New(p Params, compile ShaderCompiler) *Effect {
	if compile == nil {
		compile = ebiten.NewShader
	}
	e := &Effect{params: p.Clamped()}
	shader, err := compile([]byte(shaderSrc))
	if err != nil {
		log.Printf("vhs: shader unavailable, drawing without effect: %v", err)
		e.failed = true
		return e
	}
	e.shader = shader
	return e
}

func (e *Effect) Params() Params {
	return e.params
}

func (e *Effect) SetParams(p Params) {
	e.params = p.Clamped()
}

// Enabled reports whether Draw applies the shader.
func (e *Effect) Enabled() bool {
	return e != nil && !e.failed && e.shader != nil && !e.params.Disabled
}

// Update advances the effect to t seconds of real time.
func (e *Effect) Update(t float64) {
	e.time = t
	e.jitter[0], e.jitter[1] = Jitter(t, e.params.JitterSpeed, e.params.JitterAmount)
}

// Uniforms are the shader inputs for the current time.
func (e *Effect) Uniforms() map[string]any {
	p := e.params
	return map[string]any{
		"Time":              float32(e.time),
		"NoiseIntensity":    float32(p.NoiseIntensity),
		"NoiseScale":        float32(p.NoiseScale),
		"ScanlineIntensity": float32(p.ScanlineIntensity),
		"ScanlineCount":     float32(p.ScanlineCount),
		"ScanlineSpeed":     float32(p.ScanlineSpeed),
		"Chromatic":         float32(p.Chromatic),
		"WobbleAmp":         float32(p.WobbleAmp),
		"WobbleFreq":        float32(p.WobbleFreq),
		"Vignette":          float32(p.Vignette),
		"Desaturation":      float32(p.Desaturation),
		"Contrast":          float32(p.Contrast),
		"Jitter":            []float32{float32(e.jitter[0]), float32(e.jitter[1])},
	}
}

// Draw stretches src over rect on dst.
func (e *Effect) Draw(dst, src *ebiten.Image, rect targeting.Rect) {
	if dst == nil || src == nil {
		return
	}
	b := src.Bounds()
	if !e.Enabled() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(rect.W/float64(b.Dx()), rect.H/float64(b.Dy()))
		op.GeoM.Translate(rect.X, rect.Y)
		dst.DrawImage(src, op)
		return
	}

	x0, y0 := float32(rect.X), float32(rect.Y)
	x1, y1 := float32(rect.X+rect.W), float32(rect.Y+rect.H)
	sx0, sy0 := float32(b.Min.X), float32(b.Min.Y)
	sx1, sy1 := float32(b.Max.X), float32(b.Max.Y)
	e.vertices = [4]ebiten.Vertex{
		{DstX: x0, DstY: y0, SrcX: sx0, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x1, DstY: y0, SrcX: sx1, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x1, DstY: y1, SrcX: sx1, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x0, DstY: y1, SrcX: sx0, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	op := &ebiten.DrawTrianglesShaderOptions{Uniforms: e.Uniforms()}
	op.Images[0] = src
	dst.DrawTrianglesShader(e.vertices[:], []uint16{0, 1, 2, 0, 2, 3}, e.shader, op)
}
