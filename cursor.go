package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/vhscam/assets"
	"github.com/milk9111/vhscam/modes"
)

// screenPresenter shows mode effects: the movement zones, and either the OS
// cursor or a drawn mode cursor.
type screenPresenter struct {
	hud *hud

	visible    bool
	kind       modes.CursorKind
	hotX, hotY int

	setCursorMode func(ebiten.CursorModeType)
}

func newScreenPresenter(h *hud) *screenPresenter {
	return &screenPresenter{hud: h, visible: true, setCursorMode: ebiten.SetCursorMode}
}

func (p *screenPresenter) SetMovementUIVisible(visible bool) {
	p.hud.SetMovementVisible(visible)
}

func (p *screenPresenter) SetCursorVisible(visible bool) {
	p.visible = visible
	p.apply()
}

func (p *screenPresenter) SetCursor(kind modes.CursorKind, hotX, hotY int) {
	p.kind = kind
	p.hotX, p.hotY = hotX, hotY
	p.apply()
}

// The OS cursor is only shown for the default cursor; mode cursors are drawn.
func (p *screenPresenter) apply() {
	if p.visible && p.kind == modes.CursorDefault {
		p.setCursorMode(ebiten.CursorModeVisible)
		return
	}
	p.setCursorMode(ebiten.CursorModeHidden)
}

func (p *screenPresenter) image() *ebiten.Image {
	if !p.visible {
		return nil
	}
	switch p.kind {
	case modes.CursorInteract:
		return assets.InteractCursor()
	case modes.CursorWeapon:
		return assets.WeaponCursor()
	}
	return nil
}

// Draw paints the mode cursor with its hotspot on the pointer.
func (p *screenPresenter) Draw(screen *ebiten.Image, x, y int) {
	img := p.image()
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x-p.hotX), float64(y-p.hotY))
	screen.DrawImage(img, op)
}
