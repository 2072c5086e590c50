package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
)

func TestRaycastNearestBox(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	nearBox := addBox(t, w, mgl64.Vec3{0, 1, -3}, mgl64.Vec3{0.5, 1, 0.5}, true)
	addBox(t, w, mgl64.Vec3{0, 1, -6}, mgl64.Vec3{0.5, 1, 0.5}, true)
	low := addBox(t, w, mgl64.Vec3{3, 0.25, 0}, mgl64.Vec3{0.25, 0.25, 0.25}, false)
	ps.Update(w)

	cases := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		max    float64
		want   ecs.Entity
		dist   float64
		hit    bool
	}{
		{"forward_hits_near", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1}, 10, nearBox, 2.5, true},
		{"bounded_miss", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1}, 2, 0, 0, false},
		{"exact_bound", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1}, 2.5, nearBox, 2.5, true},
		{"over_the_top", mgl64.Vec3{0, 2.5, 0}, mgl64.Vec3{0, 0, -1}, 10, 0, 0, false},
		{"sensor_box", mgl64.Vec3{0, 0.25, 0}, mgl64.Vec3{1, 0, 0}, 10, low, 2.75, true},
		{"behind", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}, 10, 0, 0, false},
		{"inside_ignored", mgl64.Vec3{0, 1, -3}, mgl64.Vec3{0, 0, 1}, 10, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, point, ok := ps.Raycast(c.origin, c.dir, c.max)
			if ok != c.hit {
				t.Fatalf("expected hit=%v, got %v (%v at %v)", c.hit, ok, e, point)
			}
			if !ok {
				return
			}
			if e != c.want {
				t.Fatalf("expected %v, got %v", c.want, e)
			}
			if d := point.Sub(c.origin).Len(); math.Abs(d-c.dist) > 1e-9 {
				t.Fatalf("expected distance %v, got %v", c.dist, d)
			}
		})
	}
}

func TestRaycastSkipsCharacterAndDestroyed(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	addPlayer(t, w, mgl64.Vec3{0, 0, -2}, 0)
	box := addBox(t, w, mgl64.Vec3{0, 1, -4}, mgl64.Vec3{0.5, 1, 0.5}, true)
	ps.Update(w)

	e, _, ok := ps.Raycast(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 0, -1}, 10)
	if !ok || e != box {
		t.Fatalf("expected ray to pass the character and hit the box, got %v %v", e, ok)
	}

	ecs.DestroyEntity(w, box)
	ps.Update(w)
	if _, _, ok := ps.Raycast(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 0, -1}, 10); ok {
		t.Fatalf("destroyed box should be gone from the space")
	}
	if ps.Bodies() != 1 {
		t.Fatalf("expected only the character left, got %d", ps.Bodies())
	}
}

func TestCharacterBlockedBySolidBox(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	mv := NewMovementSystem(nil)
	player := addPlayer(t, w, mgl64.Vec3{0, 0, 0}, 0)
	addBox(t, w, mgl64.Vec3{0, 1, -2}, mgl64.Vec3{1, 1, 0.5}, true)

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.Forward = true
	for i := 0; i < 180; i++ {
		ps.Update(w)
		mv.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	// box front face is at z=-1.5, the character radius is 0.3, plus slop
	if tr.Position.Z() < -1.4 {
		t.Fatalf("character walked into the box: z=%v", tr.Position.Z())
	}
	if tr.Position.Z() > -1.0 {
		t.Fatalf("character should have walked up to the box, z=%v", tr.Position.Z())
	}
}

func TestCharacterPassesThroughSensor(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	mv := NewMovementSystem(nil)
	player := addPlayer(t, w, mgl64.Vec3{0, 0, 0}, 0)
	addBox(t, w, mgl64.Vec3{0, 1, -2}, mgl64.Vec3{1, 1, 0.5}, false)

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.Forward = true
	for i := 0; i < 120; i++ {
		ps.Update(w)
		mv.Update(w)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Position.Z() > -3 {
		t.Fatalf("expected to walk through the trigger, z=%v", tr.Position.Z())
	}
}

func TestDebugDrawerCentersOnCamera(t *testing.T) {
	d := &physicsDebugDrawer{originX: 100, originY: 50, camX: 2, camY: -3, scale: 10}
	tests := []struct {
		name   string
		in     cp.Vector
		wx, wy float64
	}{
		{"camera_at_origin", cp.Vector{X: 2, Y: -3}, 100, 50},
		{"one_meter_right", cp.Vector{X: 3, Y: -3}, 110, 50},
		{"one_meter_forward", cp.Vector{X: 2, Y: -4}, 100, 40},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := d.toScreen(tc.in)
			if x != tc.wx || y != tc.wy {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tc.wx, tc.wy, x, y)
			}
		})
	}
}
