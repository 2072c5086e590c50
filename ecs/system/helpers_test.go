package system

import (
	"bytes"
	"image"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/vhscam/capture"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
)

type fakeBuffer struct{ w, h int }

func (b *fakeBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

type fakeImages struct{}

func (fakeImages) New(w, h int) capture.Buffer { return &fakeBuffer{w: w, h: h} }
func (fakeImages) Dispose(capture.Buffer)      {}

type nopRenderer struct{ renders int }

func (r *nopRenderer) Render(capture.Buffer) { r.renders++ }

func addPlayer(t *testing.T, w *ecs.World, pos mgl64.Vec3, yaw float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Yaw: yaw}))
	must(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	must(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:     3,
		RotationSpeed: 90,
		Gravity:       9.8,
		Radius:        0.3,
	}))
	must(t, ecs.Add(w, e, component.CaptureCameraComponent.Kind(), &component.CaptureCamera{
		FOV: 60, Near: 0.1, Far: 100, EyeHeight: 1.6,
	}))
	return e
}

func addBox(t *testing.T, w *ecs.World, center, half mgl64.Vec3, solid bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: center}))
	must(t, ecs.Add(w, e, component.BoxColliderComponent.Kind(), &component.BoxCollider{HalfExtents: half, Solid: solid}))
	return e
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// captureLog redirects the standard logger for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}
