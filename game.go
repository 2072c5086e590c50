package main

import (
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.design/x/clipboard"

	"github.com/milk9111/vhscam/capture"
	"github.com/milk9111/vhscam/common"
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/ecs/entity"
	"github.com/milk9111/vhscam/ecs/system"
	"github.com/milk9111/vhscam/modes"
	"github.com/milk9111/vhscam/prefabs"
	"github.com/milk9111/vhscam/render"
	"github.com/milk9111/vhscam/targeting"
	"github.com/milk9111/vhscam/vhs"
)

// The feed is shown 16:9 above the mode bar.
var displayRect = targeting.Rect{X: 160, Y: 24, W: 960, H: 540}

var debugMapRect = targeting.Rect{X: 1128, Y: 24, W: 144, H: 144}

var backgroundColor = color.RGBA{R: 0x12, G: 0x12, B: 0x14, A: 0xff}

type Game struct {
	debug     bool
	sceneName string
	scene     prefabs.SceneSpec

	world    *ecs.World
	player   ecs.Entity
	physics  *system.PhysicsSystem
	capture  *system.CaptureSystem
	interact *system.DispatchSystem
	shoot    *system.DispatchSystem

	report    system.Report
	hasReport bool

	controller *modes.Controller
	selector   *modes.Selector
	hud        *hud
	presenter  *screenPresenter
	effect     *vhs.Effect
	feed       *ebiten.Image

	watcher *prefabs.Watcher
	start   time.Time
	frames  uint64

	clipboardOnce sync.Once
	clipboardErr  error
}

func NewGame(sceneName string, debug bool) (*Game, error) {
	scene, err := prefabs.LoadScene(sceneName)
	if err != nil {
		log.Printf("failed to load scene %s, using defaults: %v", sceneName, err)
		scene = prefabs.DefaultScene()
	}

	g := &Game{
		debug:     debug,
		sceneName: sceneName,
		scene:     scene,
		world:     ecs.NewWorld(),
		start:     time.Now(),
	}

	g.player, err = entity.BuildScene(g.world, scene)
	if err != nil {
		return nil, err
	}

	g.selector = modes.NewSelector(scene.Modes.Selectable)
	g.hud = newHUD(g.setZone,
		func() { g.selector.Prev() },
		func() { g.selector.Next() },
		func() { g.selector.Apply(g.controller) },
	)
	g.presenter = newScreenPresenter(g.hud)
	g.controller = modes.NewController(g.presenter, scene.Modes.CursorHotspot)
	g.controller.OnChange(func(m modes.Mode) {
		g.selector.Sync(m)
		g.setZone(component.MovementStatic)
	})

	g.physics = system.NewPhysicsSystem()
	g.world.OnDestroy(g.physics.Forget)

	renderer := render.NewSceneRenderer(g.world, func() *targeting.PerspectiveCamera {
		return g.capture.Camera()
	})
	c, err := capture.New(captureConfig(scene.Capture), capture.Deps{Renderer: renderer, Display: g})
	if err != nil {
		return nil, err
	}
	g.capture = system.NewCaptureSystem(c)

	t := system.Targeting{
		Mode:      g.controller.Mode,
		Display:   func() targeting.Rect { return displayRect },
		Camera:    g.capture.TargetCamera,
		Raycaster: g.physics,
	}
	g.interact = system.NewInteractSystem(t, scene.Interaction.MaxDistance)
	g.shoot = system.NewShootSystem(t, scene.Shotgun.MaxDistance, scene.Shotgun.Damage)

	g.world.AddSystem(system.NewInputSystem(nil))
	g.world.AddSystem(system.NewModeSelectSystem(g.selector, g.controller))
	g.world.AddSystem(g.physics)
	g.world.AddSystem(system.NewMovementSystem(g.controller.Mode))
	g.world.AddSystem(g.capture)
	g.world.AddSystem(g.interact)
	g.world.AddSystem(g.shoot)

	g.effect = vhs.New(scene.VHS, nil)

	start, err := modes.ParseMode(scene.Player.StartMode)
	if err != nil {
		log.Printf("%v, starting in %s", err, start)
	}
	g.controller.SetMode(start)

	g.world.Activate()

	if w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts"); err != nil {
		log.Printf("hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	return g, nil
}

func captureConfig(s prefabs.CaptureSpec) capture.Config {
	return capture.Config{
		Width:     s.Width,
		Height:    s.Height,
		Interval:  s.Interval.Duration(),
		UsePooled: s.Pooled,
	}
}

// SetTexture receives the capture buffer whenever it is (re)created.
func (g *Game) SetTexture(b capture.Buffer) {
	img, _ := b.(*ebiten.Image)
	g.feed = img
}

func (g *Game) setZone(state component.MovementState) {
	if player, ok := ecs.Get(g.world, g.player, component.PlayerComponent.Kind()); ok {
		player.Zone = state
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reloadChanged()

	now := time.Now()
	g.world.SetTime(ecs.FrameTime{Now: now, Delta: time.Second / common.TPS, Frame: g.frames})

	g.hud.Update()
	g.world.Update()
	g.collectReports()
	g.hud.Sync(g.selector, g.controller.Mode())
	g.effect.Update(now.Sub(g.start).Seconds())

	if input, ok := ecs.Get(g.world, g.player, component.InputComponent.Kind()); ok && input.ReportPressed {
		g.copyReport()
	}
	return nil
}

// collectReports keeps the newest dispatch report emitted this frame.
func (g *Game) collectReports() {
	if r, ok := system.LatestReport(g.world.Events().Drain()); ok {
		g.report = r
		g.hasReport = true
	}
}

func (g *Game) copyReport() {
	r, ok := g.report, g.hasReport
	if !ok {
		log.Printf("report: nothing targeted yet")
		return
	}
	g.clipboardOnce.Do(func() { g.clipboardErr = clipboard.Init() })
	if g.clipboardErr != nil {
		log.Printf("report: clipboard unavailable: %v", g.clipboardErr)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(r.String()))
	log.Printf("report: copied %s", r)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if g.feed != nil {
		g.effect.Draw(screen, g.feed, displayRect)
	}

	g.hud.Draw(screen)

	x, y := ebiten.CursorPosition()
	g.presenter.Draw(screen, x, y)

	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	w, h := g.capture.Capture().Size()
	msg := fmt.Sprintf("FPS: %.2f  mode: %s  capture: %dx%d renders: %d  bodies: %d",
		ebiten.ActualFPS(), g.controller.Mode(), w, h, g.capture.Capture().Renders(), g.physics.Bodies())
	if g.hasReport {
		msg += "\n" + g.report.String()
	}
	ebitenutil.DebugPrint(screen, msg)

	system.DrawPlayerStateDebug(g.world, screen, 4, common.ScreenHeight-150)
	system.DrawPhysicsDebug(g.physics.Space(), g.world, screen, debugMapRect, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.ScreenWidth, common.ScreenHeight
}

// Close releases the capture buffer, empties the buffer pool and stops
// watching files.
func (g *Game) Close() {
	g.world.Deactivate()
	g.capture.Capture().Close()
	if err := g.watcher.Close(); err != nil {
		log.Printf("watcher close: %v", err)
	}
}
