package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Lifecycle is implemented by systems that own resources tied to the world
// being live. Activate runs before the first Update; Deactivate releases.
type Lifecycle interface {
	Activate(w *World)
	Deactivate(w *World)
}

type Scheduler struct {
	systems []System
	active  bool
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

// Add appends system. If the scheduler is already active the system's
// Activate hook is not run; call Activate on it directly.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Activate(w *World) {
	if s.active {
		return
	}
	s.active = true
	for _, system := range s.systems {
		if lc, ok := system.(Lifecycle); ok {
			lc.Activate(w)
		}
	}
}

func (s *Scheduler) Deactivate(w *World) {
	if !s.active {
		return
	}
	s.active = false
	for i := len(s.systems) - 1; i >= 0; i-- {
		if lc, ok := s.systems[i].(Lifecycle); ok {
			lc.Deactivate(w)
		}
	}
}

func (s *Scheduler) Active() bool {
	return s.active
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
