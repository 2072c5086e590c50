package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/prefabs"
)

// BuildScene creates the player and every scene entity. Entities that fail
// to build are logged and skipped.
func BuildScene(w *ecs.World, scene prefabs.SceneSpec) (ecs.Entity, error) {
	player, err := NewPlayer(w, scene.Player, scene.Camera)
	if err != nil {
		return 0, fmt.Errorf("scene: player: %w", err)
	}
	BuildProps(w, scene, nil)
	return player, nil
}

// BuildProps builds the scene's world entities and returns the ones created.
func BuildProps(w *ecs.World, scene prefabs.SceneSpec, ctx *buildContext) []ecs.Entity {
	built := make([]ecs.Entity, 0, len(scene.Entities))
	for _, spec := range scene.Entities {
		e, err := BuildEntity(w, spec, ctx)
		if err != nil {
			log.Printf("scene: %v", err)
			continue
		}
		built = append(built, e)
	}
	return built
}

// ClearProps destroys every named scene entity except the player.
func ClearProps(w *ecs.World) int {
	n := 0
	for _, e := range w.Query(component.NameComponent.Kind()) {
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			continue
		}
		if ecs.DestroyEntity(w, e) {
			n++
		}
	}
	return n
}
