package entity

import (
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/prefabs"
)

// NewPlayer creates the player with its capture camera at the spawn point.
func NewPlayer(w *ecs.World, p prefabs.PlayerSpec, cam prefabs.CameraSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	add := func(err error) error {
		if err != nil {
			ecs.DestroyEntity(w, e)
		}
		return err
	}

	if err := add(ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: "player"})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: p.Spawn.Vec(),
		Yaw:      p.Yaw,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:     p.MoveSpeed,
		RotationSpeed: p.RotationSpeed,
		Gravity:       p.Gravity,
		Radius:        p.Radius,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.CaptureCameraComponent.Kind(), &component.CaptureCamera{
		FOV:       cam.FOV,
		Near:      cam.Near,
		Far:       cam.Far,
		EyeHeight: cam.EyeHeight,
		Pitch:     cam.Pitch,
	})); err != nil {
		return 0, err
	}
	return e, nil
}

// ApplyTuning updates the player's movement and camera values in place.
func ApplyTuning(w *ecs.World, e ecs.Entity, p prefabs.PlayerSpec, cam prefabs.CameraSpec) {
	if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		player.MoveSpeed = p.MoveSpeed
		player.RotationSpeed = p.RotationSpeed
		player.Gravity = p.Gravity
	}
	if c, ok := ecs.Get(w, e, component.CaptureCameraComponent.Kind()); ok {
		*c = component.CaptureCamera{FOV: cam.FOV, Near: cam.Near, Far: cam.Far, EyeHeight: cam.EyeHeight, Pitch: cam.Pitch}
	}
}
