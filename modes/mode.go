// Package modes tracks the player's input mode and pushes its side effects
// (movement controls, cursor) to a presenter.
package modes

import (
	"fmt"
	"log"
	"strings"
)

type Mode int

const (
	Walk Mode = iota
	Interact
	Weapon
	Inventory
)

func (m Mode) String() string {
	switch m {
	case Walk:
		return "walk"
	case Interact:
		return "interact"
	case Weapon:
		return "weapon"
	case Inventory:
		return "inventory"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool {
	return m >= Walk && m <= Inventory
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "walk":
		return Walk, nil
	case "interact":
		return Interact, nil
	case "weapon":
		return Weapon, nil
	case "inventory":
		return Inventory, nil
	}
	return Walk, fmt.Errorf("modes: unknown mode %q", s)
}

type CursorKind int

const (
	CursorDefault CursorKind = iota
	CursorInteract
	CursorWeapon
	CursorNone
)

// Presenter applies mode effects to the screen.
type Presenter interface {
	SetMovementUIVisible(visible bool)
	SetCursorVisible(visible bool)
	SetCursor(kind CursorKind, hotX, hotY int)
}

type Controller struct {
	presenter Presenter
	mode      Mode
	hotspot   int
	listeners []func(Mode)
}

// NewController does not touch the presenter; call SetMode with the starting
// mode so its effects are applied.
func NewController(p Presenter, hotspot int) *Controller {
	return &Controller{presenter: p, hotspot: hotspot}
}

func (c *Controller) Mode() Mode {
	if c == nil {
		return Walk
	}
	return c.mode
}

// OnChange registers fn to run after every SetMode.
func (c *Controller) OnChange(fn func(Mode)) {
	if c == nil || fn == nil {
		return
	}
	c.listeners = append(c.listeners, fn)
}

// SetMode resets the shared effects and then applies m's. Any mode may follow
// any other, including itself.
func (c *Controller) SetMode(m Mode) {
	if c == nil {
		return
	}
	if !m.Valid() {
		log.Printf("modes: ignoring invalid mode %d", int(m))
		return
	}

	if p := c.presenter; p != nil {
		p.SetMovementUIVisible(false)
		p.SetCursorVisible(true)

		switch m {
		case Walk:
			p.SetMovementUIVisible(true)
			p.SetCursor(CursorDefault, 0, 0)
		case Interact:
			p.SetCursor(CursorInteract, c.hotspot, c.hotspot)
		case Weapon:
			p.SetCursor(CursorWeapon, c.hotspot, c.hotspot)
		case Inventory:
			p.SetCursor(CursorNone, 0, 0)
			p.SetCursorVisible(false)
		}
	}

	c.mode = m
	for _, fn := range c.listeners {
		fn(m)
	}
}
