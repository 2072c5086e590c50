package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/modes"
)

var (
	hudTextColor     = color.NRGBA{R: 0xd0, G: 0xd0, B: 0xc8, A: 0xff}
	hudSelectedColor = color.NRGBA{R: 0xff, G: 0xd4, B: 0x40, A: 0xff}
	hudActiveColor   = color.NRGBA{R: 0x80, G: 0xe0, B: 0x90, A: 0xff}
)

// hud is the mode bar under the feed and the on-screen movement zones.
type hud struct {
	ui *ebitenui.UI

	modeTexts []*widget.Text
	movement  *widget.Container
}

// newHUD builds the overlay. Movement zone buttons report their state to
// setZone while held and MovementStatic on release. The arrow buttons drive
// the mode selector like the keyboard does.
func newHUD(setZone func(component.MovementState), prev, next, confirm func()) *hud {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 220})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 230})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x66, G: 0x55, B: 0x22, A: 255})
	btnImage := &widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnPressed}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: hudTextColor}
	btnPadding := &widget.Insets{Top: 8, Bottom: 8, Left: 14, Right: 14}

	h := &hud{}

	button := func(label string, clicked func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImage),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(btnPadding),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				if clicked != nil {
					clicked()
				}
			}),
		)
	}

	modeBar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	modeBar.AddChild(button("<", prev))
	for range modes.SelectorSize {
		t := widget.NewText(
			widget.TextOpts.Text("", &face, hudTextColor),
			widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
			widget.TextOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(110, 30),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			),
		)
		h.modeTexts = append(h.modeTexts, t)
		modeBar.AddChild(t)
	}
	modeBar.AddChild(button(">", next))
	modeBar.AddChild(button("select", confirm))

	h.movement = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	for _, zone := range []struct {
		label string
		state component.MovementState
	}{
		{"turn left", component.MovementLeft},
		{"forward", component.MovementForward},
		{"turn right", component.MovementRight},
	} {
		state := zone.state
		h.movement.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImage),
			widget.ButtonOpts.Text(zone.label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(btnPadding),
			widget.ButtonOpts.PressedHandler(func(*widget.ButtonPressedEventArgs) {
				setZone(state)
			}),
			widget.ButtonOpts.ReleasedHandler(func(*widget.ButtonReleasedEventArgs) {
				setZone(component.MovementStatic)
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Bottom: 24, Left: 24, Right: 24}),
		)),
	)
	root.AddChild(modeBar)
	root.AddChild(h.movement)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *hud) SetMovementVisible(visible bool) {
	if visible {
		h.movement.GetWidget().Visibility = widget.Visibility_Show
		return
	}
	h.movement.GetWidget().Visibility = widget.Visibility_Hide
}

// Sync redraws the mode bar: the highlighted entry in brackets, the active
// mode in green.
func (h *hud) Sync(sel *modes.Selector, active modes.Mode) {
	list := sel.Modes()
	for i, t := range h.modeTexts {
		if i >= len(list) {
			t.GetWidget().Visibility = widget.Visibility_Hide
			continue
		}
		t.GetWidget().Visibility = widget.Visibility_Show
		m := list[i]

		label := m.String()
		if i == sel.Index() {
			label = fmt.Sprintf("[ %s ]", label)
		}
		t.Label = label

		switch {
		case i == sel.Index():
			t.SetColor(hudSelectedColor)
		case m == active:
			t.SetColor(hudActiveColor)
		default:
			t.SetColor(hudTextColor)
		}
	}
}

func (h *hud) Update() {
	h.ui.Update()
}

func (h *hud) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
