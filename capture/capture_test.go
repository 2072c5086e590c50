package capture

import (
	"errors"
	"image"
	"testing"
	"time"
)

type fakeBuffer struct {
	w, h int
	id   int
}

func (b *fakeBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

type fakeImages struct {
	created  int
	disposed int
}

func (f *fakeImages) New(w, h int) Buffer {
	f.created++
	return &fakeBuffer{w: w, h: h, id: f.created}
}

func (f *fakeImages) Dispose(Buffer) { f.disposed++ }

type countingRenderer struct {
	targets []Buffer
}

func (r *countingRenderer) Render(dst Buffer) { r.targets = append(r.targets, dst) }

type recordingDisplay struct {
	bound Buffer
	binds int
}

func (d *recordingDisplay) SetTexture(b Buffer) {
	d.bound = b
	d.binds++
}

type harness struct {
	cap      *Capture
	renderer *countingRenderer
	display  *recordingDisplay
	clock    *ManualClock
	focused  bool
	images   *fakeImages
	ded      *DedicatedAllocator
	pool     *PooledAllocator
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		renderer: &countingRenderer{},
		display:  &recordingDisplay{},
		clock:    NewManualClock(time.Unix(1000, 0)),
		focused:  true,
		images:   &fakeImages{},
	}
	h.ded = NewDedicatedAllocator(h.images)
	h.pool = NewPooledAllocator(h.images)
	c, err := New(cfg, Deps{
		Renderer:  h.renderer,
		Dedicated: h.ded,
		Pooled:    h.pool,
		Focused:   func() bool { return h.focused },
		Clock:     h.clock,
		Display:   h.display,
	})
	if err != nil {
		t.Fatalf("new capture: %v", err)
	}
	h.cap = c
	return h
}

func TestNewRequiresRenderer(t *testing.T) {
	_, err := New(DefaultConfig(), Deps{})
	if !errors.Is(err, ErrNoRenderer) {
		t.Fatalf("expected ErrNoRenderer, got %v", err)
	}
}

func TestConfigClamped(t *testing.T) {
	cases := []struct {
		name string
		in   Config
		want Config
	}{
		{"valid", Config{Width: 320, Height: 180, Interval: time.Second}, Config{Width: 320, Height: 180, Interval: time.Second}},
		{"tiny", Config{Width: 1, Height: 0}, Config{Width: 8, Height: 8}},
		{"negative", Config{Width: -5, Height: 64, Interval: -time.Second}, Config{Width: 8, Height: 64}},
		{"keeps_pooled", Config{Width: 8, Height: 8, UsePooled: true}, Config{Width: 8, Height: 8, UsePooled: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.Clamped(); got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestAutoRefreshRendersOnRealTimeInterval(t *testing.T) {
	h := newHarness(t, Config{Width: 320, Height: 180, Interval: 200 * time.Millisecond})
	h.cap.Activate()

	for elapsed := time.Duration(0); elapsed < time.Second; elapsed += 50 * time.Millisecond {
		h.cap.Tick()
		h.clock.Advance(50 * time.Millisecond)
	}

	if got := h.cap.Renders(); got != 5 {
		t.Fatalf("expected 5 renders in one second, got %d", got)
	}
	for i, dst := range h.renderer.targets {
		if dst != h.cap.Buffer() {
			t.Fatalf("render %d went to %v, not the capture buffer", i, dst)
		}
	}
}

func TestZeroIntervalRendersEveryTick(t *testing.T) {
	h := newHarness(t, Config{Width: 64, Height: 64})
	h.cap.Activate()
	for i := 0; i < 3; i++ {
		h.cap.Tick()
	}
	if got := h.cap.Renders(); got != 4 {
		t.Fatalf("expected activation render plus 3 ticks, got %d", got)
	}
}

func TestStopAutoRefreshCancelsPendingWait(t *testing.T) {
	h := newHarness(t, Config{Width: 64, Height: 64, Interval: 100 * time.Millisecond})
	h.cap.Activate()
	h.clock.Advance(50 * time.Millisecond)
	h.cap.Tick()
	h.cap.StopAutoRefresh()

	before := h.cap.Renders()
	for i := 0; i < 10; i++ {
		h.clock.Advance(100 * time.Millisecond)
		h.cap.Tick()
	}
	if h.cap.Renders() != before {
		t.Fatalf("expected no renders after stop, got %d more", h.cap.Renders()-before)
	}
	if h.cap.AutoRefreshing() {
		t.Fatalf("auto refresh should report stopped")
	}

	h.cap.StartAutoRefresh()
	if h.cap.Renders() != before+1 {
		t.Fatalf("restart should render immediately")
	}
}

func TestRefreshSkippedWithoutFocus(t *testing.T) {
	h := newHarness(t, Config{Width: 64, Height: 64, Interval: 100 * time.Millisecond})
	h.focused = false
	h.cap.Activate()
	for i := 0; i < 10; i++ {
		h.clock.Advance(100 * time.Millisecond)
		h.cap.Tick()
	}
	if h.cap.Renders() != 0 {
		t.Fatalf("expected no renders without focus, got %d", h.cap.Renders())
	}
	if h.cap.Buffer() == nil {
		t.Fatalf("buffer should still be allocated while unfocused")
	}

	h.focused = true
	h.cap.Tick()
	h.clock.Advance(100 * time.Millisecond)
	h.cap.Tick()
	if h.cap.Renders() != 1 {
		t.Fatalf("expected refresh to resume after focus returns, got %d", h.cap.Renders())
	}
}

func TestRefreshPausedWhileOwnerInactive(t *testing.T) {
	h := newHarness(t, Config{Width: 64, Height: 64, Interval: 100 * time.Millisecond})
	h.cap.Activate()
	h.cap.SetOwnerActive(false)
	before := h.cap.Renders()
	for i := 0; i < 5; i++ {
		h.clock.Advance(100 * time.Millisecond)
		h.cap.Tick()
	}
	if h.cap.Renders() != before {
		t.Fatalf("expected no renders while owner inactive")
	}
}

func TestRecreateUsesClampedResolution(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		wantW  int
		wantH  int
		pooled bool
	}{
		{"normal", 160, 90, 160, 90, false},
		{"clamped_width", 2, 90, 8, 90, false},
		{"clamped_both", 0, -1, 8, 8, false},
		{"pooled", 100, 50, 100, 50, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, Config{Width: 320, Height: 180, Interval: time.Second, UsePooled: c.pooled})
			h.cap.Activate()
			before := h.cap.Renders()

			h.cap.Recreate(c.w, c.h)

			size := h.cap.Buffer().Bounds().Size()
			if size.X != c.wantW || size.Y != c.wantH {
				t.Fatalf("expected %dx%d, got %dx%d", c.wantW, c.wantH, size.X, size.Y)
			}
			if gw, gh := h.cap.Size(); gw != c.wantW || gh != c.wantH {
				t.Fatalf("camera resolution %dx%d does not match buffer", gw, gh)
			}
			if h.display.bound != h.cap.Buffer() {
				t.Fatalf("display not rebound to the new buffer")
			}
			if h.cap.Renders() != before+1 {
				t.Fatalf("recreate should render once")
			}
		})
	}
}

func TestResidentBuffersAcrossActivationCycles(t *testing.T) {
	for _, pooled := range []bool{false, true} {
		name := "dedicated"
		if pooled {
			name = "pooled"
		}
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, Config{Width: 320, Height: 180, Interval: 200 * time.Millisecond, UsePooled: pooled})
			var alloc Allocator = h.ded
			if pooled {
				alloc = h.pool
			}

			for i := 0; i < 10; i++ {
				h.cap.Activate()
				h.cap.Tick()
				if alloc.Resident() > 1 {
					t.Fatalf("cycle %d: %d buffers resident while active", i, alloc.Resident())
				}
				h.cap.Deactivate()
				if alloc.Resident() > 1 {
					t.Fatalf("cycle %d: %d buffers resident after deactivate", i, alloc.Resident())
				}
				if h.display.bound != nil {
					t.Fatalf("display should be unbound after deactivate")
				}
			}
			if !pooled && alloc.Resident() != 0 {
				t.Fatalf("dedicated allocator should free on release, %d resident", alloc.Resident())
			}
			if pooled {
				h.pool.Drain()
				if alloc.Resident() != 0 {
					t.Fatalf("drain should free idle buffers")
				}
				if h.images.created != 1 {
					t.Fatalf("pool should reuse one image, created %d", h.images.created)
				}
			}
		})
	}
}

func TestCloseFreesPooledBuffers(t *testing.T) {
	h := newHarness(t, Config{Width: 320, Height: 180, Interval: time.Second, UsePooled: true})
	h.cap.Activate()
	h.cap.Tick()

	h.cap.Close()
	if h.pool.Resident() != 0 {
		t.Fatalf("close should free the idle pooled buffer, %d resident", h.pool.Resident())
	}
	if h.images.disposed != 1 {
		t.Fatalf("expected the buffer disposed once, got %d", h.images.disposed)
	}
	if h.display.bound != nil {
		t.Fatalf("display should be unbound after close")
	}
	h.cap.Close()
}

func TestConfigureSwitchesAllocator(t *testing.T) {
	h := newHarness(t, Config{Width: 64, Height: 64, Interval: time.Second})
	h.cap.Activate()
	if h.ded.Resident() != 1 {
		t.Fatalf("expected dedicated buffer")
	}

	h.cap.Configure(Config{Width: 64, Height: 64, Interval: time.Second, UsePooled: true})
	if h.ded.Resident() != 0 {
		t.Fatalf("dedicated buffer should be released to its own allocator")
	}
	if h.pool.Resident() != 1 {
		t.Fatalf("expected pooled buffer, got %d", h.pool.Resident())
	}

	h.cap.Deactivate()
	if h.pool.Resident() != 1 || h.pool.out != 0 {
		t.Fatalf("pooled buffer should sit idle after deactivate")
	}
}

func TestRenderOnceInactiveIsNoop(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.cap.RenderOnce()
	if h.cap.Renders() != 0 || h.cap.Buffer() != nil {
		t.Fatalf("inactive capture should not allocate or render")
	}
	var nilCap *Capture
	nilCap.Tick()
	nilCap.RenderOnce()
}
