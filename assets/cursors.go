package assets

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/vhscam/common"
)

var (
	cursorOnce     sync.Once
	interactCursor *ebiten.Image
	weaponCursor   *ebiten.Image
)

var (
	cursorColor  = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xe0, A: 0xff}
	cursorShadow = color.NRGBA{A: 0xa0}
)

// InteractCursor is a ring with a center dot. Its hotspot is the center.
func InteractCursor() *ebiten.Image {
	cursorOnce.Do(loadCursors)
	return interactCursor
}

// WeaponCursor is a crosshair with a gap at the center.
func WeaponCursor() *ebiten.Image {
	cursorOnce.Do(loadCursors)
	return weaponCursor
}

func loadCursors() {
	size := common.CursorSize
	c := float32(common.CursorHotspot) + 0.5

	interactCursor = ebiten.NewImage(size, size)
	vector.StrokeCircle(interactCursor, c, c, 6, 3, cursorShadow, true)
	vector.StrokeCircle(interactCursor, c, c, 6, 1.5, cursorColor, true)
	vector.DrawFilledCircle(interactCursor, c, c, 1.5, cursorColor, true)

	weaponCursor = ebiten.NewImage(size, size)
	s := float32(size)
	for _, clr := range []struct {
		c     color.Color
		width float32
	}{{cursorShadow, 3}, {cursorColor, 1.5}} {
		vector.StrokeLine(weaponCursor, 0, c, c-3, c, clr.width, clr.c, true)
		vector.StrokeLine(weaponCursor, c+3, c, s, c, clr.width, clr.c, true)
		vector.StrokeLine(weaponCursor, c, 0, c, c-3, clr.width, clr.c, true)
		vector.StrokeLine(weaponCursor, c, c+3, c, s, clr.width, clr.c, true)
	}
}
