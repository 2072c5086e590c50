package system

import (
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/vhscam/capability"
	"github.com/milk9111/vhscam/capture"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/modes"
	"github.com/milk9111/vhscam/targeting"
)

type countingInteract struct{ calls int }

func (c *countingInteract) Interact() { c.calls++ }

type dispatchScene struct {
	w       *ecs.World
	player  ecs.Entity
	physics *PhysicsSystem
	capSys  *CaptureSystem
	mode    modes.Mode
	rect    targeting.Rect
}

func newDispatchScene(t *testing.T) *dispatchScene {
	t.Helper()
	s := &dispatchScene{
		w:       ecs.NewWorld(),
		physics: NewPhysicsSystem(),
		rect:    targeting.Rect{X: 0, Y: 0, W: 1280, H: 720},
	}
	s.player = addPlayer(t, s.w, mgl64.Vec3{}, 0)

	c, err := capture.New(capture.DefaultConfig(), capture.Deps{
		Renderer:  &nopRenderer{},
		Dedicated: capture.NewDedicatedAllocator(fakeImages{}),
		Focused:   func() bool { return true },
		Clock:     capture.NewManualClock(time.Unix(0, 0)),
	})
	if err != nil {
		t.Fatal(err)
	}
	s.capSys = NewCaptureSystem(c)
	return s
}

func (s *dispatchScene) targeting() Targeting {
	return Targeting{
		Mode:      func() modes.Mode { return s.mode },
		Display:   func() targeting.Rect { return s.rect },
		Camera:    s.capSys.TargetCamera,
		Raycaster: s.physics,
	}
}

// boxAt places a box whose near face is distance in front of the eye.
func (s *dispatchScene) boxAt(t *testing.T, distance float64) ecs.Entity {
	return addBox(t, s.w, mgl64.Vec3{0, 1.6, -(distance + 0.5)}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
}

func (s *dispatchScene) press() {
	input, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	input.PointerX, input.PointerY = 640, 360
	input.PrimaryPressed = true
}

func (s *dispatchScene) ready() {
	s.physics.Update(s.w)
	s.capSys.Activate(s.w)
}

func (s *dispatchScene) lastReport() (Report, bool) {
	return LatestReport(s.w.Events().Drain())
}

func TestInteractDistanceBound(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		want     int
	}{
		{"within", 1.5, 1},
		{"beyond", 2.5, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newDispatchScene(t)
			box := s.boxAt(t, c.distance)
			target := &countingInteract{}
			must(t, ecs.Add(s.w, box, component.InteractableComponent.Kind(), &component.Interactable{Target: target}))
			s.ready()
			s.mode = modes.Interact
			s.press()

			sys := NewInteractSystem(s.targeting(), 2.0)
			sys.Update(s.w)

			if target.calls != c.want {
				t.Fatalf("expected %d interact calls, got %d", c.want, target.calls)
			}
			report, ok := s.lastReport()
			if !ok {
				t.Fatalf("expected a report")
			}
			if c.want == 1 && (!report.HitOK || !report.Invoked) {
				t.Fatalf("unexpected report %s", report)
			}
		})
	}
}

func TestDispatchRequiresModeAndPress(t *testing.T) {
	cases := []struct {
		name  string
		mode  modes.Mode
		press bool
	}{
		{"walk_mode", modes.Walk, true},
		{"weapon_mode", modes.Weapon, true},
		{"inventory_mode", modes.Inventory, true},
		{"no_press", modes.Interact, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newDispatchScene(t)
			box := s.boxAt(t, 1)
			target := &countingInteract{}
			must(t, ecs.Add(s.w, box, component.InteractableComponent.Kind(), &component.Interactable{Target: target}))
			s.ready()
			s.mode = c.mode
			if c.press {
				s.press()
			}
			sys := NewInteractSystem(s.targeting(), 2.0)
			sys.Update(s.w)
			if target.calls != 0 {
				t.Fatalf("interact should not fire")
			}
			if _, ok := s.lastReport(); ok {
				t.Fatalf("no trigger should be reported")
			}
		})
	}
}

func TestShootDestroysOnThirdShot(t *testing.T) {
	s := newDispatchScene(t)
	box := s.boxAt(t, 1.5)
	must(t, ecs.Add(s.w, box, component.ShootableComponent.Kind(), &component.Shootable{
		Target: capability.NewDestructible(capability.Handle{World: s.w, Entity: box}, 10),
	}))
	s.ready()
	s.mode = modes.Weapon
	sys := NewShootSystem(s.targeting(), 2.0, 4)

	for shot := 1; shot <= 3; shot++ {
		s.press()
		sys.Update(s.w)
		s.physics.Update(s.w)
		alive := s.w.IsAlive(box)
		if shot < 3 && !alive {
			t.Fatalf("destroyed after shot %d", shot)
		}
		if shot == 3 && alive {
			t.Fatalf("expected destruction on the third shot")
		}
	}

	s.press()
	sys.Update(s.w)
	report, _ := s.lastReport()
	if report.HitOK {
		t.Fatalf("destroyed box should no longer be hit: %s", report)
	}
	if !strings.Contains(report.String(), "hit=none") {
		t.Fatalf("unexpected report text %q", report.String())
	}
}

func TestHitWithoutCapabilityIsIgnored(t *testing.T) {
	s := newDispatchScene(t)
	s.boxAt(t, 1)
	s.ready()
	s.mode = modes.Interact
	s.press()
	sys := NewInteractSystem(s.targeting(), 2.0)
	sys.Update(s.w)
	report, ok := s.lastReport()
	if !ok || !report.HitOK || report.Invoked {
		t.Fatalf("expected a hit with nothing invoked, got %s", report)
	}
}

func TestReportEventTypedByAction(t *testing.T) {
	s := newDispatchScene(t)
	s.boxAt(t, 1)
	s.ready()
	s.mode = modes.Weapon
	s.press()
	s.w.SetTime(ecs.FrameTime{Frame: 12})
	NewShootSystem(s.targeting(), 2.0, 1).Update(s.w)

	events := s.w.Events().Drain()
	if len(events) != 1 || events[0].Type != "shoot" || events[0].Frame != 12 {
		t.Fatalf("expected one shoot event on frame 12, got %+v", events)
	}
	if r, ok := events[0].Data.(Report); !ok || r.Action != ActionShoot {
		t.Fatalf("event should carry the shoot report, got %#v", events[0].Data)
	}
}

func TestDispatchDisablesWithoutDependencies(t *testing.T) {
	cases := []struct {
		name  string
		strip func(*Targeting)
	}{
		{"no_camera", func(tg *Targeting) { tg.Camera = nil }},
		{"no_raycaster", func(tg *Targeting) { tg.Raycaster = nil }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			logs := captureLog(t)
			s := newDispatchScene(t)
			box := s.boxAt(t, 1)
			target := &countingInteract{}
			must(t, ecs.Add(s.w, box, component.InteractableComponent.Kind(), &component.Interactable{Target: target}))
			s.ready()
			s.mode = modes.Interact

			tg := s.targeting()
			c.strip(&tg)
			sys := NewInteractSystem(tg, 2.0)
			for i := 0; i < 3; i++ {
				s.press()
				sys.Update(s.w)
			}

			if !sys.Disabled() {
				t.Fatalf("expected the system to disable itself")
			}
			if n := strings.Count(logs.String(), "interact: no camera or raycaster, disabling"); n != 1 {
				t.Fatalf("expected one log line, got %d in %q", n, logs.String())
			}
			if target.calls != 0 || s.w.Events().Len() != 0 {
				t.Fatalf("a disabled system should not dispatch")
			}
		})
	}
}
