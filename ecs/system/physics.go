package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/vhscam/common"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeTrigger
)

// PhysicsSystem mirrors colliders into a chipmunk space laid on the ground
// plane: cp X is world X and cp Y is world Z. Height is tracked per body as a
// [minY, maxY] range and only matters for ray queries.
type PhysicsSystem struct {
	space *cp.Space

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body      *cp.Body
	shape     *cp.Shape
	static    bool
	character bool
	min, max  mgl64.Vec3
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.syncEntities(w)
	ps.space.Step(common.FixedDelta)
	ps.syncTransforms(w)
}

// Bodies reports how many entities are mirrored in the space.
func (ps *PhysicsSystem) Bodies() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		var info *bodyInfo
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			info = ps.createCharacter(*transform, *player)
		} else if collider, ok := ecs.Get(w, e, component.BoxColliderComponent.Kind()); ok {
			info = ps.createBox(*transform, *collider)
		}
		if info == nil {
			continue
		}

		ps.entities[e] = info
		ps.shapes[info.shape] = e
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: info.body, Shape: info.shape})
	}
}

func (ps *PhysicsSystem) createBox(transform component.Transform, collider component.BoxCollider) *bodyInfo {
	center := transform.Position.Add(collider.Offset)
	half := collider.HalfExtents
	if half.X() <= 0 || half.Y() <= 0 || half.Z() <= 0 {
		return nil
	}

	bb := cp.BB{
		L: center.X() - half.X(),
		B: center.Z() - half.Z(),
		R: center.X() + half.X(),
		T: center.Z() + half.Z(),
	}
	shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	if collider.Solid {
		shape.SetCollisionType(collisionTypeSolid)
	} else {
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeTrigger)
	}
	ps.space.AddShape(shape)

	return &bodyInfo{
		body:   ps.space.StaticBody,
		shape:  shape,
		static: true,
		min:    center.Sub(half),
		max:    center.Add(half),
	}
}

func (ps *PhysicsSystem) createCharacter(transform component.Transform, player component.Player) *bodyInfo {
	radius := player.Radius
	if radius <= 0 {
		radius = common.DefaultCharacterRadius
	}

	// Infinite moment keeps the capsule upright; yaw is driven by movement.
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: transform.Position.X(), Y: transform.Position.Z()})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shape: shape, character: true}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.Position = mgl64.Vec3{pos.X, transform.Position.Y(), pos.Y}
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.TransformComponent.Kind()) {
			continue
		}
		ps.forget(e)
	}
}

// Forget drops e's shapes from the space. It must not be called from inside
// a space query.
func (ps *PhysicsSystem) Forget(e ecs.Entity) {
	if ps == nil {
		return
	}
	ps.forget(e)
}

func (ps *PhysicsSystem) forget(e ecs.Entity) {
	info, ok := ps.entities[e]
	if !ok {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.shapes, info.shape)
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}

// Raycast returns the nearest collider hit along dir from origin within
// maxDistance. The character never blocks rays, and a box that contains
// origin is ignored.
func (ps *PhysicsSystem) Raycast(origin, dir mgl64.Vec3, maxDistance float64) (ecs.Entity, mgl64.Vec3, bool) {
	if ps == nil || ps.space == nil || maxDistance <= 0 || dir.Len() == 0 {
		return 0, mgl64.Vec3{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDistance))

	const pad = 1e-6
	bb := cp.BB{
		L: math.Min(origin.X(), end.X()) - pad,
		B: math.Min(origin.Z(), end.Z()) - pad,
		R: math.Max(origin.X(), end.X()) + pad,
		T: math.Max(origin.Z(), end.Z()) + pad,
	}

	var candidates []*cp.Shape
	ps.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		candidates = append(candidates, shape)
	}, nil)

	best := maxDistance
	var hitEntity ecs.Entity
	found := false
	for _, shape := range candidates {
		e, ok := ps.shapes[shape]
		if !ok {
			continue
		}
		info := ps.entities[e]
		if info == nil || info.character {
			continue
		}
		t, ok := rayBox(origin, dir, info.min, info.max)
		if !ok || t > best {
			continue
		}
		if found && t == best && e > hitEntity {
			continue
		}
		best = t
		hitEntity = e
		found = true
	}
	if !found {
		return 0, mgl64.Vec3{}, false
	}
	return hitEntity, origin.Add(dir.Mul(best)), true
}

// rayBox is the slab test. It reports the entry distance and fails when the
// box is behind the ray or contains its origin.
func rayBox(origin, dir, min, max mgl64.Vec3) (float64, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		if d == 0 {
			if o < min[axis] || o > max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (min[axis] - o) / d
		t2 := (max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}
	if tNear < 0 {
		return 0, false
	}
	return tNear, true
}
