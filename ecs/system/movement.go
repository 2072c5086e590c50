package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/vhscam/common"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/modes"
)

// MovementSystem runs the player's fixed step: gravity first, then the
// requested movement. Forward walks along the facing, Left and Right turn in
// place.
type MovementSystem struct {
	mode     func() modes.Mode
	disabled bool
}

// NewMovementSystem only takes keyboard movement while mode reports Walk. A
// nil mode always allows it.
func NewMovementSystem(mode func() modes.Mode) *MovementSystem {
	return &MovementSystem{mode: mode}
}

func (m *MovementSystem) Disabled() bool { return m.disabled }

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil || m.disabled {
		return
	}
	walking := m.mode == nil || m.mode() == modes.Walk

	entities := w.Query(
		component.PlayerComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil {
			log.Printf("movement: no physics body on %v, disabling", e)
			m.disabled = true
			return
		}
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		player.Keys = component.MovementStatic
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok && walking {
			player.Keys = keyState(input)
		}
		player.State = player.Zone
		if player.Keys != component.MovementStatic {
			player.State = player.Keys
		}

		step(transform, player, common.FixedDelta)

		var vel mgl64.Vec3
		if player.State == component.MovementForward {
			vel = transform.Forward().Mul(player.MoveSpeed)
		}
		body.Body.SetVelocity(vel.X(), vel.Z())
	}
}

// step applies gravity and rotation. Horizontal motion goes through the
// physics body.
func step(t *component.Transform, p *component.Player, dt float64) {
	y := t.Position.Y() - p.Gravity*dt
	if y < 0 {
		y = 0
	}
	t.Position[1] = y

	switch p.State {
	case component.MovementLeft:
		t.Yaw -= p.RotationSpeed * dt
	case component.MovementRight:
		t.Yaw += p.RotationSpeed * dt
	}
}

func keyState(input *component.Input) component.MovementState {
	switch {
	case input.Forward:
		return component.MovementForward
	case input.Left:
		return component.MovementLeft
	case input.Right:
		return component.MovementRight
	}
	return component.MovementStatic
}
