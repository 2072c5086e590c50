package capability

import (
	"testing"

	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
)

func TestDestructibleDestroyedOnThirdShot(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	d := NewDestructible(Handle{World: w, Entity: e}, 10)

	wantAlive := []bool{true, true, false}
	wantLife := []int{6, 2, -2}
	for i := range wantAlive {
		d.Shoot(4)
		if w.IsAlive(e) != wantAlive[i] {
			t.Fatalf("shot %d: alive=%v, want %v", i+1, w.IsAlive(e), wantAlive[i])
		}
		if d.Life() != wantLife[i] {
			t.Fatalf("shot %d: life=%d, want %d", i+1, d.Life(), wantLife[i])
		}
	}

	d.Shoot(4)
	if d.Life() != -2 {
		t.Fatalf("shots after destruction should be ignored")
	}
}

func TestDestroyOnInteract(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	other := ecs.CreateEntity(w)
	NewDestroyOnInteract(Handle{World: w, Entity: e}).Interact()
	if w.IsAlive(e) {
		t.Fatalf("entity should be destroyed")
	}
	if !w.IsAlive(other) {
		t.Fatalf("other entities must survive")
	}
}

func TestLookup(t *testing.T) {
	w := ecs.NewWorld()
	both := ecs.CreateEntity(w)
	none := ecs.CreateEntity(w)
	empty := ecs.CreateEntity(w)

	h := Handle{World: w, Entity: both}
	if err := ecs.Add(w, both, component.InteractableComponent.Kind(), &component.Interactable{Target: NewDestroyOnInteract(h)}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, both, component.ShootableComponent.Kind(), &component.Shootable{Target: NewDestructible(h, 1)}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, empty, component.ShootableComponent.Kind(), &component.Shootable{}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name     string
		e        ecs.Entity
		interact bool
		shoot    bool
	}{
		{"both", both, true, true},
		{"none", none, false, false},
		{"nil_target", empty, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, ok := Interactor(w, c.e); ok != c.interact {
				t.Fatalf("interact lookup = %v, want %v", ok, c.interact)
			}
			if _, ok := Shooter(w, c.e); ok != c.shoot {
				t.Fatalf("shoot lookup = %v, want %v", ok, c.shoot)
			}
		})
	}
}

const crateScript = `
on_shoot = func(engine, state, damage) {
	if is_undefined(state.hits) {
		state.hits = 0
	}
	state.hits = state.hits + 1
	state.damage = damage
	if state.hits >= 2 {
		engine.destroy()
	}
}
`

func TestScriptedShootKeepsState(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	s, err := NewScripted(Handle{World: w, Entity: e}, "crate", []byte(crateScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	s.Interact()
	if !w.IsAlive(e) {
		t.Fatalf("default on_interact should do nothing")
	}

	s.Shoot(3)
	if !w.IsAlive(e) {
		t.Fatalf("destroyed too early")
	}
	if got := s.State()["hits"]; got != int64(1) {
		t.Fatalf("expected hits=1, got %v", got)
	}
	s.Shoot(5)
	if w.IsAlive(e) {
		t.Fatalf("expected destroy on second shot")
	}
	if got := s.State()["damage"]; got != int64(5) {
		t.Fatalf("expected damage=5, got %v", got)
	}
}

func TestScriptedCompileError(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if _, err := NewScripted(Handle{World: w, Entity: e}, "bad", []byte("on_interact = func(")); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestScriptedInteractLog(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	src := `
on_interact = func(engine, state) {
	engine.log("opened", engine.name)
	state.opened = true
}
`
	s, err := NewScripted(Handle{World: w, Entity: e}, "door", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	s.Interact()
	if s.State()["opened"] != true {
		t.Fatalf("expected opened state, got %v", s.State())
	}
}
