package capture

import "time"

// RefreshTask is a timer re-armed every tick. It fires once per elapsed
// interval and is cancelled by flag, so a cancelled task never fires again
// until it is re-armed.
//
// A wait that is in progress runs to completion even if the owner stops being
// ready; a new wait only starts on a tick where the owner is ready.
type RefreshTask struct {
	interval time.Duration
	deadline time.Time
	running  bool
	waiting  bool
}

// Arm starts the task with the first wait beginning at now. An interval of
// zero fires on every ready tick.
func (t *RefreshTask) Arm(now time.Time, interval time.Duration) {
	if interval < 0 {
		interval = 0
	}
	t.interval = interval
	t.running = true
	t.waiting = interval > 0
	t.deadline = now.Add(interval)
}

// Cancel drops any pending wait.
func (t *RefreshTask) Cancel() {
	t.running = false
	t.waiting = false
}

func (t *RefreshTask) Running() bool {
	return t.running
}

func (t *RefreshTask) Interval() time.Duration {
	return t.interval
}

// Tick advances the task to now and reports whether it fired.
func (t *RefreshTask) Tick(now time.Time, ready bool) bool {
	if !t.running {
		return false
	}
	if t.interval <= 0 {
		return ready
	}

	fired := false
	if t.waiting && !now.Before(t.deadline) {
		t.waiting = false
		fired = true
	}
	if !t.waiting && ready {
		t.waiting = true
		t.deadline = now.Add(t.interval)
	}
	return fired
}
