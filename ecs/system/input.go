package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
)

// InputSource is the slice of ebiten's input API the game reads.
type InputSource interface {
	CursorPosition() (int, int)
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

func (ebitenInput) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

func (ebitenInput) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenInput) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

type InputSystem struct {
	source InputSource
}

// NewInputSystem reads from src, or from ebiten when src is nil.
func NewInputSystem(src InputSource) *InputSystem {
	if src == nil {
		src = ebitenInput{}
	}
	return &InputSystem{source: src}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	src := i.source
	x, y := src.CursorPosition()

	anyPressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if src.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	anyJustPressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if src.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	primary := src.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	primaryPressed := src.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	forward := anyPressed(ebiten.KeyW, ebiten.KeyArrowUp)
	left := anyPressed(ebiten.KeyQ)
	right := anyPressed(ebiten.KeyE)
	prev := anyJustPressed(ebiten.KeyA, ebiten.KeyArrowLeft)
	next := anyJustPressed(ebiten.KeyD, ebiten.KeyArrowRight)
	confirm := anyJustPressed(ebiten.KeySpace)
	report := anyJustPressed(ebiten.KeyF2)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.PointerX = float64(x)
		input.PointerY = float64(y)
		input.Primary = primary
		input.PrimaryPressed = primaryPressed
		input.Forward = forward
		input.Left = left
		input.Right = right
		input.SelectPrevPressed = prev
		input.SelectNextPressed = next
		input.ConfirmPressed = confirm
		input.ReportPressed = report
	})
}
