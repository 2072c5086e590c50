package main

import (
	"log"
	"path/filepath"

	"github.com/milk9111/vhscam/ecs/entity"
	"github.com/milk9111/vhscam/prefabs"
)

// reloadChanged re-applies the scene when it or one of its scripts changed on
// disk. Props are rebuilt; the player keeps its position.
func (g *Game) reloadChanged() {
	names, err := g.watcher.Poll()
	if err != nil {
		log.Printf("hot reload: %v", err)
	}
	if len(names) == 0 {
		return
	}

	reload := false
	for _, name := range names {
		if prefabs.IsScriptFile(name) || filepath.Base(name) == filepath.Base(g.sceneName) {
			reload = true
		}
	}
	if !reload {
		return
	}

	scene, err := prefabs.LoadScene(g.sceneName)
	if err != nil {
		log.Printf("hot reload: keeping previous scene: %v", err)
		return
	}
	g.applyScene(scene)
	if mod, ok := prefabs.ModTime(g.sceneName); ok {
		log.Printf("hot reload: applied %s (modified %s)", g.sceneName, mod.Format("15:04:05"))
	}
}

func (g *Game) applyScene(scene prefabs.SceneSpec) {
	old := g.scene
	g.scene = scene

	entity.ClearProps(g.world)
	entity.BuildProps(g.world, scene, nil)
	entity.ApplyTuning(g.world, g.player, scene.Player, scene.Camera)

	c := g.capture.Capture()
	cfg := captureConfig(scene.Capture)
	if cfg.Width != old.Capture.Width || cfg.Height != old.Capture.Height {
		c.Recreate(cfg.Width, cfg.Height)
	}
	c.Configure(cfg)

	g.interact.SetMaxDistance(scene.Interaction.MaxDistance)
	g.shoot.SetMaxDistance(scene.Shotgun.MaxDistance)
	g.shoot.SetDamage(scene.Shotgun.Damage)

	g.selector.Resize(scene.Modes.Selectable)
	g.selector.Sync(g.controller.Mode())
	if scene.Modes.CursorHotspot != old.Modes.CursorHotspot {
		log.Printf("hot reload: cursor hotspot changes apply on restart")
	}
	g.effect.SetParams(scene.VHS)
}
