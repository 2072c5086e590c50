package system

import (
	"fmt"
	"log"

	"github.com/milk9111/vhscam/capability"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/modes"
	"github.com/milk9111/vhscam/targeting"
)

type Action int

const (
	ActionInteract Action = iota
	ActionShoot
)

func (a Action) String() string {
	if a == ActionShoot {
		return "shoot"
	}
	return "interact"
}

// Targeting is what dispatch needs to turn a click into a hit.
type Targeting struct {
	Mode      func() modes.Mode
	Display   func() targeting.Rect
	Camera    func() targeting.Camera
	Raycaster targeting.Raycaster
}

// Report describes the last trigger a dispatch system handled.
type Report struct {
	Action   Action
	Pointer  [2]float64
	Sample   targeting.PointerSample
	Ray      targeting.Ray
	Hit      targeting.Hit
	HitOK    bool
	Invoked  bool
	Frame    uint64
	Distance float64
}

func (r Report) String() string {
	s := fmt.Sprintf("%s frame=%d pointer=(%.0f,%.0f) uv=(%.3f,%.3f) ray=%v->%v max=%.2f",
		r.Action, r.Frame, r.Pointer[0], r.Pointer[1], r.Sample.U, r.Sample.V,
		r.Ray.Origin, r.Ray.Dir, r.Distance)
	if !r.HitOK {
		return s + " hit=none"
	}
	return s + fmt.Sprintf(" hit=%s at %v dist=%.3f invoked=%v", r.Hit.Entity, r.Hit.Point, r.Hit.Distance, r.Invoked)
}

// DispatchSystem fires one action per discrete primary press while its mode
// is active: pointer to ray, bounded hit query, then the capability on the
// hit entity if it has one.
type DispatchSystem struct {
	action      Action
	trigger     modes.Mode
	targeting   Targeting
	maxDistance float64
	damage      int

	disabled bool
}

func NewInteractSystem(t Targeting, maxDistance float64) *DispatchSystem {
	return &DispatchSystem{action: ActionInteract, trigger: modes.Interact, targeting: t, maxDistance: maxDistance}
}

func NewShootSystem(t Targeting, maxDistance float64, damage int) *DispatchSystem {
	return &DispatchSystem{action: ActionShoot, trigger: modes.Weapon, targeting: t, maxDistance: maxDistance, damage: damage}
}

func (d *DispatchSystem) SetMaxDistance(v float64) { d.maxDistance = v }

func (d *DispatchSystem) SetDamage(v int) { d.damage = v }

// Disabled reports whether the system turned itself off for lack of a
// camera source or raycaster.
func (d *DispatchSystem) Disabled() bool {
	return d == nil || d.disabled
}

// LatestReport returns the newest dispatch report among events.
func LatestReport(events []ecs.Event) (Report, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if r, ok := events[i].Data.(Report); ok {
			return r, true
		}
	}
	return Report{}, false
}

// Update emits one Report event, typed by the action name, per handled
// trigger.
func (d *DispatchSystem) Update(w *ecs.World) {
	if d == nil || w == nil || d.disabled {
		return
	}
	if d.targeting.Camera == nil || d.targeting.Raycaster == nil {
		log.Printf("%s: no camera or raycaster, disabling", d.action)
		d.disabled = true
		return
	}
	if d.targeting.Mode == nil || d.targeting.Mode() != d.trigger {
		return
	}
	e, ok := w.First(component.InputComponent.Kind())
	if !ok {
		return
	}
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if !input.PrimaryPressed {
		return
	}

	cam := d.targeting.Camera()
	var rect targeting.Rect
	if d.targeting.Display != nil {
		rect = d.targeting.Display()
	}

	report := Report{
		Action:   d.action,
		Pointer:  [2]float64{input.PointerX, input.PointerY},
		Frame:    w.Time().Frame,
		Distance: d.maxDistance,
	}
	defer func() { w.Emit(d.action.String(), report) }()

	ray, sample, ok := targeting.ComputeRay(input.PointerX, input.PointerY, rect, cam)
	report.Sample = sample
	if !ok {
		return
	}
	report.Ray = ray

	hit, ok := targeting.QueryHit(d.targeting.Raycaster, cam, ray, d.maxDistance)
	if !ok {
		return
	}
	report.Hit = hit
	report.HitOK = true
	report.Invoked = d.invoke(w, hit.Entity)
}

func (d *DispatchSystem) invoke(w *ecs.World, e ecs.Entity) bool {
	switch d.action {
	case ActionInteract:
		if target, ok := capability.Interactor(w, e); ok {
			target.Interact()
			return true
		}
	case ActionShoot:
		if target, ok := capability.Shooter(w, e); ok {
			target.Shoot(d.damage)
			return true
		}
	}
	return false
}
