package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/vhscam/capture"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/targeting"
)

// CaptureSystem keeps the capture camera on its owner and drives the capture
// refresh timer. Activating the system allocates the buffer; deactivating it
// releases the buffer. Without a capture camera owner it logs once and turns
// itself off; an owner that goes away later only pauses the refresh.
type CaptureSystem struct {
	capture  *capture.Capture
	camera   targeting.PerspectiveCamera
	owner    ecs.Entity
	placed   bool
	disabled bool
}

func NewCaptureSystem(c *capture.Capture) *CaptureSystem {
	return &CaptureSystem{capture: c}
}

func (cs *CaptureSystem) Capture() *capture.Capture {
	if cs == nil {
		return nil
	}
	return cs.capture
}

// Camera returns the camera as of the last update, or nil before the owner
// has been found.
func (cs *CaptureSystem) Camera() *targeting.PerspectiveCamera {
	if cs == nil || !cs.placed {
		return nil
	}
	return &cs.camera
}

func (cs *CaptureSystem) Disabled() bool {
	return cs == nil || cs.disabled
}

func (cs *CaptureSystem) Activate(w *ecs.World) {
	if cs.place(w); cs.disabled {
		return
	}
	cs.capture.Activate()
}

func (cs *CaptureSystem) Deactivate(w *ecs.World) {
	cs.capture.Deactivate()
}

func (cs *CaptureSystem) Update(w *ecs.World) {
	if cs == nil || w == nil || cs.disabled {
		return
	}
	active := cs.place(w)
	if cs.disabled {
		cs.capture.Deactivate()
		return
	}
	cs.capture.SetOwnerActive(active)
	cs.capture.Tick()
}

// place moves the camera to the owner's eye. It reports whether an owner is
// alive, and disables the system when none was ever found or the owner has
// no transform.
func (cs *CaptureSystem) place(w *ecs.World) bool {
	if w == nil {
		return false
	}
	if !w.IsAlive(cs.owner) || !ecs.Has(w, cs.owner, component.CaptureCameraComponent.Kind()) {
		e, ok := w.First(component.CaptureCameraComponent.Kind())
		if !ok {
			if !cs.placed {
				cs.disable("no capture camera owner")
			}
			return false
		}
		cs.owner = e
	}

	cam, _ := ecs.Get(w, cs.owner, component.CaptureCameraComponent.Kind())
	transform, ok := ecs.Get(w, cs.owner, component.TransformComponent.Kind())
	if !ok {
		cs.disable("capture camera owner has no transform")
		return false
	}

	width, height := cs.capture.Size()
	cs.camera = targeting.PerspectiveCamera{
		Eye:    transform.Position.Add(mgl64.Vec3{0, cam.EyeHeight, 0}),
		Yaw:    mgl64.DegToRad(transform.Yaw),
		Pitch:  mgl64.DegToRad(cam.Pitch),
		FOV:    cam.FOV,
		Near:   cam.Near,
		Far:    cam.Far,
		Width:  width,
		Height: height,
	}
	cs.placed = true
	return true
}

func (cs *CaptureSystem) disable(reason string) {
	log.Printf("capture: %s, disabling", reason)
	cs.disabled = true
}

// TargetCamera is Camera as a targeting.Camera, nil until placed.
func (cs *CaptureSystem) TargetCamera() targeting.Camera {
	if c := cs.Camera(); c != nil {
		return c
	}
	return nil
}
