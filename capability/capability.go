// Package capability holds the behaviors world entities expose to the
// interact and shoot actions, and the lookups dispatch uses to find them.
package capability

import (
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
)

// Handle is a capability's reference back to the entity that owns it.
type Handle struct {
	World  *ecs.World
	Entity ecs.Entity
}

func (h Handle) Alive() bool {
	return h.World != nil && h.World.IsAlive(h.Entity)
}

func (h Handle) Destroy() bool {
	return ecs.DestroyEntity(h.World, h.Entity)
}

// Interactor returns e's interact capability, if it has one.
func Interactor(w *ecs.World, e ecs.Entity) (component.InteractTarget, bool) {
	c, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok || c.Target == nil {
		return nil, false
	}
	return c.Target, true
}

// Shooter returns e's shoot capability, if it has one.
func Shooter(w *ecs.World, e ecs.Entity) (component.ShootTarget, bool) {
	c, ok := ecs.Get(w, e, component.ShootableComponent.Kind())
	if !ok || c.Target == nil {
		return nil, false
	}
	return c.Target, true
}

// DestroyOnInteract removes its entity the first time it is interacted with.
type DestroyOnInteract struct {
	owner Handle
}

func NewDestroyOnInteract(owner Handle) *DestroyOnInteract {
	return &DestroyOnInteract{owner: owner}
}

func (d *DestroyOnInteract) Interact() {
	d.owner.Destroy()
}

// Destructible loses life when shot and removes its entity once life reaches
// zero.
type Destructible struct {
	owner Handle
	life  int
}

func NewDestructible(owner Handle, life int) *Destructible {
	return &Destructible{owner: owner, life: life}
}

func (d *Destructible) Life() int {
	return d.life
}

func (d *Destructible) Shoot(damage int) {
	if !d.owner.Alive() {
		return
	}
	d.life -= damage
	if d.life <= 0 {
		d.owner.Destroy()
	}
}
