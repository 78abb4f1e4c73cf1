package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/milk9111/sidescroller-movement/ecs/entity"
	"github.com/milk9111/sidescroller-movement/ecs/system"
	"github.com/milk9111/sidescroller-movement/prefabs"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 256
	screenHeight = 256
	previewZoom  = 4
)

// previewComponents are the prefab components needed to draw an animation.
var previewComponents = []string{"transform", "sprite", "animation"}

// sheetView plays the animations of one prefab so sheet rows and frame
// rates can be checked without running the sandbox.
type sheetView struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	anim      *component.Animation
	names     []string
	current   int
}

func previewSpec(spec prefabs.EntityBuildSpec) prefabs.EntityBuildSpec {
	out := prefabs.EntityBuildSpec{Name: spec.Name, Components: make(map[string]any, len(previewComponents))}
	for _, name := range previewComponents {
		if raw, ok := spec.Components[name]; ok {
			out.Components[name] = raw
		}
	}
	out.Components["transform"] = map[string]any{"x": 0, "y": 0}
	return out
}

func animationNames(defs map[string]component.AnimationDef) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSheetView(prefab string) (*sheetView, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	e, err := entity.BuildEntityFromSpec(w, prefab, previewSpec(spec), entity.DefaultLoaders)
	if err != nil {
		return nil, err
	}
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok || len(anim.Defs) == 0 {
		return nil, fmt.Errorf("%s has no animations", prefab)
	}

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: previewZoom, ViewW: screenWidth, ViewH: screenHeight}); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return nil, err
	}

	v := &sheetView{
		world:     w,
		scheduler: ecs.NewScheduler(system.NewAnimationSystem()),
		render:    system.NewRenderSystem(),
		anim:      anim,
		names:     animationNames(anim.Defs),
	}
	for i, name := range v.names {
		if name == anim.Current {
			v.current = i
		}
	}
	v.play()
	return v, nil
}

func (v *sheetView) play() {
	v.anim.Playing = false
	v.anim.Play(v.names[v.current])
}

func (v *sheetView) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.current = (v.current + 1) % len(v.names)
		v.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.current = (v.current + len(v.names) - 1) % len(v.names)
		v.play()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.play()
	}
	v.scheduler.Update(v.world)
	return nil
}

func (v *sheetView) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	v.render.Draw(v.world, screen)

	def := v.anim.Defs[v.names[v.current]]
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  row %d  frame %d/%d  %.0f fps\n<- -> switch, space restart",
		def.Name, def.Row, v.anim.Frame+1, def.FrameCount, def.FPS))
}

func (v *sheetView) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	prefab := flag.String("prefab", entity.PlayerPrefab, "entity prefab whose animations are previewed")
	flag.Parse()

	v, err := newSheetView(*prefab)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("sheet view: " + *prefab)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
