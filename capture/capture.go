// Package capture owns the low resolution offscreen buffer the player camera
// renders into and the real-time timer that refreshes it independently of the
// display frame rate.
package capture

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var ErrNoRenderer = errors.New("capture: no camera renderer")

// Renderer draws the camera's view into dst.
type Renderer interface {
	Render(dst Buffer)
}

// Display presents the buffer. SetTexture(nil) unbinds it.
type Display interface {
	SetTexture(b Buffer)
}

type Config struct {
	Width     int
	Height    int
	Interval  time.Duration
	UsePooled bool
}

func DefaultConfig() Config {
	return Config{Width: 320, Height: 180, Interval: 200 * time.Millisecond}
}

// Clamped returns c with sizes raised to MinSize and a non-negative interval.
func (c Config) Clamped() Config {
	c.Width = max(MinSize, c.Width)
	c.Height = max(MinSize, c.Height)
	c.Interval = max(0, c.Interval)
	return c
}

// Deps are the collaborators a Capture needs. Only Renderer is required.
type Deps struct {
	Renderer  Renderer
	Dedicated Allocator
	Pooled    Allocator
	Focused   func() bool
	Clock     Clock
	Display   Display
}

type Capture struct {
	cfg Config

	renderer  Renderer
	dedicated Allocator
	pooled    Allocator
	focused   func() bool
	clock     Clock
	display   Display

	buffer   Buffer
	bufAlloc Allocator

	task        RefreshTask
	active      bool
	ownerActive bool
	renders     int
}

func New(cfg Config, deps Deps) (*Capture, error) {
	if deps.Renderer == nil {
		return nil, ErrNoRenderer
	}
	if deps.Dedicated == nil {
		deps.Dedicated = NewDedicatedAllocator(nil)
	}
	if deps.Pooled == nil {
		deps.Pooled = NewPooledAllocator(nil)
	}
	if deps.Focused == nil {
		deps.Focused = ebiten.IsFocused
	}
	if deps.Clock == nil {
		deps.Clock = RealClock{}
	}
	return &Capture{
		cfg:         cfg.Clamped(),
		renderer:    deps.Renderer,
		dedicated:   deps.Dedicated,
		pooled:      deps.Pooled,
		focused:     deps.Focused,
		clock:       deps.Clock,
		display:     deps.Display,
		ownerActive: true,
	}, nil
}

// Configure applies cfg, clamping invalid values. A live buffer is
// reallocated if its size or allocation mode changed.
func (c *Capture) Configure(cfg Config) {
	if c == nil {
		return
	}
	cfg = cfg.Clamped()
	old := c.cfg
	c.cfg = cfg
	if !c.active {
		return
	}
	if old.Width != cfg.Width || old.Height != cfg.Height || old.UsePooled != cfg.UsePooled {
		c.ensureBuffer()
		c.RenderOnce()
	}
	if old.Interval != cfg.Interval && c.task.Running() {
		c.task.Arm(c.clock.Now(), cfg.Interval)
	}
}

// Activate allocates the buffer and starts auto refresh with an immediate
// first render.
func (c *Capture) Activate() {
	if c == nil || c.active {
		return
	}
	c.active = true
	c.ensureBuffer()
	c.StartAutoRefresh()
}

// Deactivate stops refreshing and releases the buffer immediately.
func (c *Capture) Deactivate() {
	if c == nil || !c.active {
		return
	}
	c.StopAutoRefresh()
	c.releaseBuffer()
	c.active = false
}

// Close deactivates the capture and frees the buffers an allocator keeps
// around for reuse.
func (c *Capture) Close() {
	if c == nil {
		return
	}
	c.Deactivate()
	for _, a := range []Allocator{c.dedicated, c.pooled} {
		if d, ok := a.(interface{ Drain() }); ok {
			d.Drain()
		}
	}
}

// RenderOnce renders the camera into the buffer if the window has focus.
func (c *Capture) RenderOnce() {
	if c == nil || !c.active {
		return
	}
	if c.buffer == nil {
		c.ensureBuffer()
	}
	if c.buffer == nil {
		return
	}
	if !c.focused() {
		return
	}
	c.renderer.Render(c.buffer)
	c.renders++
}

func (c *Capture) StartAutoRefresh() {
	if c == nil || !c.active || c.task.Running() {
		return
	}
	c.RenderOnce()
	c.task.Arm(c.clock.Now(), c.cfg.Interval)
}

func (c *Capture) StopAutoRefresh() {
	if c == nil {
		return
	}
	c.task.Cancel()
}

// Recreate reallocates the buffer at the clamped size, keeps the camera and
// display bindings, and renders once.
func (c *Capture) Recreate(width, height int) {
	if c == nil {
		return
	}
	c.cfg.Width = max(MinSize, width)
	c.cfg.Height = max(MinSize, height)
	if !c.active {
		return
	}
	c.ensureBuffer()
	c.RenderOnce()
}

// SetOwnerActive pauses refreshing while the owning entity is inactive.
func (c *Capture) SetOwnerActive(active bool) {
	if c == nil {
		return
	}
	c.ownerActive = active
}

// Tick advances the refresh timer. It is safe to call every frame.
func (c *Capture) Tick() {
	if c == nil || !c.active {
		return
	}
	ready := c.ownerActive && c.focused()
	if c.task.Tick(c.clock.Now(), ready) && c.ownerActive {
		c.RenderOnce()
	}
}

func (c *Capture) Buffer() Buffer {
	if c == nil {
		return nil
	}
	return c.buffer
}

// Size returns the configured buffer size, which is also the camera's pixel
// resolution.
func (c *Capture) Size() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.cfg.Width, c.cfg.Height
}

func (c *Capture) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

func (c *Capture) Active() bool {
	return c != nil && c.active
}

func (c *Capture) AutoRefreshing() bool {
	return c != nil && c.task.Running()
}

// Renders counts completed renders since creation.
func (c *Capture) Renders() int {
	if c == nil {
		return 0
	}
	return c.renders
}

func (c *Capture) allocator() Allocator {
	if c.cfg.UsePooled {
		return c.pooled
	}
	return c.dedicated
}

func (c *Capture) ensureBuffer() {
	alloc := c.allocator()
	if c.buffer != nil && c.bufAlloc == alloc {
		size := c.buffer.Bounds().Size()
		if size.X == c.cfg.Width && size.Y == c.cfg.Height {
			c.bind(c.buffer)
			return
		}
	}
	c.releaseBuffer()
	c.buffer = alloc.Allocate(c.cfg.Width, c.cfg.Height)
	if c.buffer == nil {
		return
	}
	c.bufAlloc = alloc
	c.bind(c.buffer)
}

func (c *Capture) releaseBuffer() {
	if c.buffer == nil {
		return
	}
	c.bind(nil)
	c.bufAlloc.Release(c.buffer)
	c.buffer = nil
	c.bufAlloc = nil
}

func (c *Capture) bind(b Buffer) {
	if c.display != nil {
		c.display.SetTexture(b)
	}
}
