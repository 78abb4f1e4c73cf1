package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/milk9111/sidescroller-movement/ecs/entity"
	"github.com/milk9111/sidescroller-movement/ecs/system"
	"github.com/milk9111/sidescroller-movement/levels"
	"github.com/milk9111/sidescroller-movement/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth    = 640
	baseHeight   = 360
	cameraZoom   = 2
	defaultLevel = "sandbox"
	playerSpawn  = "player"
	demoSpawn    = "demo"
	maxLogLines  = 8
)

type Options struct {
	Level string
	Debug bool
	Demo  bool
	Watch bool
}

type Game struct {
	frames int
	debug  bool
	paused bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	movement  *system.MovementSystem
	scripts   *system.ScriptInputSystem
	render    *system.RenderSystem
	watcher   *prefabs.Watcher

	level   *levels.Level
	player  ecs.Entity
	hud     *hud
	pauseUI *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	cfg, err := prefabs.LoadActionConfig(prefabs.DefaultActions)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(cfg.Movement.Gravity)
	movement := system.NewMovementSystem(physics)
	scripts := system.NewScriptInputSystem()

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Zoom:  cameraZoom,
		ViewW: baseWidth,
		ViewH: baseHeight,
	}); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return nil, err
	}

	spawned, err := entity.LoadLevelToWorld(w, physics, lvl, entity.DefaultLoaders)
	if err != nil {
		return nil, err
	}
	player, ok := spawned[playerSpawn]
	if !ok {
		return nil, fmt.Errorf("level %s has no %q spawn", lvl.Name, playerSpawn)
	}
	if demo, ok := spawned[demoSpawn]; ok && !opts.Demo {
		ecs.DestroyEntity(w, demo)
	}

	g := &Game{
		debug:    opts.Debug,
		world:    w,
		physics:  physics,
		movement: movement,
		scripts:  scripts,
		render:   system.NewRenderSystem(),
		level:    lvl,
		player:   player,
		hud:      newHUD(maxLogLines),
	}
	g.pauseUI = NewPauseUI(g)
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		scripts,
		physics,
		movement,
		system.NewResourceSystem(),
		system.NewAnimationSystem(),
		system.NewAudioSystem(),
		system.NewCameraSystem(),
		g.hud,
	)

	if opts.Watch {
		watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("sandbox: hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	log.Printf("sandbox: level %s loaded with %d surfaces and %d spawns", lvl.Name, len(lvl.Surfaces), len(spawned))
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}
	if g.watcher != nil {
		g.reload(g.watcher.Drain())
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

// reload applies changed prefab files. Action configs and scripts are
// swapped live; any other prefab needs a restart.
func (g *Game) reload(paths []string) {
	scripts := false
	for _, path := range paths {
		name := filepath.Base(path)
		switch {
		case strings.HasSuffix(name, ".tengo"):
			scripts = true
		case name == prefabs.DefaultActions:
			cfg, n, err := entity.ReloadActions(g.world, name)
			if err != nil {
				log.Printf("sandbox: reload %s: %v", name, err)
				continue
			}
			g.physics.SetGravity(cfg.Movement.Gravity)
			g.movement.Refresh()
			log.Printf("sandbox: reloaded %s into %d entities", name, n)
		default:
			log.Printf("sandbox: %s changed; restart to rebuild prefabs", name)
		}
	}
	if scripts {
		g.scripts.Reload()
		log.Printf("sandbox: scripts reloaded")
	}
}

func (g *Game) respawn() {
	spawn, ok := g.level.Spawn(playerSpawn)
	if !ok || !g.world.IsAlive(g.player) {
		return
	}
	if err := entity.SetEntityTransform(g.world, g.player, spawn.X, spawn.Y, 0); err != nil {
		log.Printf("sandbox: respawn: %v", err)
		return
	}
	if pb, ok := ecs.Get(g.world, g.player, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetVelocity(0, 0)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	g.render.Draw(g.world, screen)
	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
	}

	g.hud.draw(screen, g.world, g.player)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
