package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/vhscam/capability"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	Name string
	// LoadScript resolves script paths; prefabs.LoadScript when nil.
	LoadScript func(path string) ([]byte, error)
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":           addTransform,
	"box_collider":        addBoxCollider,
	"renderable":          addRenderable,
	"destroy_on_interact": addDestroyOnInteract,
	"destructible":        addDestructible,
	"script":              addScript,
}

// Capabilities come last so they see the entity fully built.
var componentBuildOrder = []string{
	"transform",
	"box_collider",
	"renderable",
	"destroy_on_interact",
	"destructible",
	"script",
}

var ErrNoComponents = errors.New("build entity: no components")

// BuildEntity creates an entity from spec. On error nothing is left in the
// world.
func BuildEntity(w *ecs.World, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity %q: %w", spec.Name, ErrNoComponents)
	}
	if ctx == nil {
		ctx = &buildContext{}
	}
	ctx.Name = spec.Name

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity %q: no builder for component %q", spec.Name, name)
		}
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return buildRank(names[i]) < buildRank(names[j])
	})

	e := ecs.CreateEntity(w)
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity %q: add %q: %w", spec.Name, name, err)
		}
	}
	return e, nil
}

func buildRank(name string) int {
	for i, n := range componentBuildOrder {
		if n == name {
			return i
		}
	}
	return len(componentBuildOrder)
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec(),
		Yaw:      spec.Yaw,
	})
}

func addBoxCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BoxColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode box_collider spec: %w", err)
	}
	size := spec.Size.Vec()
	if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
		return fmt.Errorf("box_collider size must be positive, got %v", size)
	}
	solid := true
	if spec.Solid != nil {
		solid = *spec.Solid
	}
	return ecs.Add(w, e, component.BoxColliderComponent.Kind(), &component.BoxCollider{
		HalfExtents: size.Mul(0.5),
		Offset:      spec.Offset.Vec(),
		Solid:       solid,
	})
}

func addRenderable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode renderable spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{
		Color:  spec.Color.RGBA,
		Hidden: spec.Hidden,
	})
}

func addDestroyOnInteract(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	target := capability.NewDestroyOnInteract(capability.Handle{World: w, Entity: e})
	return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{Target: target})
}

func addDestructible(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DestructibleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode destructible spec: %w", err)
	}
	if spec.Life <= 0 {
		return fmt.Errorf("destructible life must be positive, got %d", spec.Life)
	}
	target := capability.NewDestructible(capability.Handle{World: w, Entity: e}, spec.Life)
	return ecs.Add(w, e, component.ShootableComponent.Kind(), &component.Shootable{Target: target})
}

func addScript(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	load := ctx.LoadScript
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(spec.Path)
	if err != nil {
		return fmt.Errorf("load script %s: %w", spec.Path, err)
	}
	name := ctx.Name
	if name == "" {
		name = spec.Path
	}
	script, err := capability.NewScripted(capability.Handle{World: w, Entity: e}, name, src)
	if err != nil {
		return err
	}

	// A script answers both actions unless the entity already has one.
	if !ecs.Has(w, e, component.InteractableComponent.Kind()) {
		if err := ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{Target: script}); err != nil {
			return err
		}
	}
	if !ecs.Has(w, e, component.ShootableComponent.Kind()) {
		if err := ecs.Add(w, e, component.ShootableComponent.Kind(), &component.Shootable{Target: script}); err != nil {
			return err
		}
	}
	return nil
}
