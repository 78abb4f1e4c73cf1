package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/assets"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/milk9111/sidescroller-movement/ecs/system"
	"github.com/milk9111/sidescroller-movement/prefabs"
)

// Loaders resolve asset paths named in prefabs. A nil loader skips that
// kind of asset, which keeps entity building usable without a display or
// audio device.
type Loaders struct {
	Image func(path string) (*ebiten.Image, error)
	Audio func(path string) (*audio.Player, error)
}

var DefaultLoaders = Loaders{
	Image: assets.LoadImage,
	Audio: assets.LoadAudioPlayer,
}

type buildContext struct {
	PrefabPath string
	Loaders    Loaders
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"camera_tag":      addCameraTag,
	"input":           addInput,
	"scripted_input":  addScriptedInput,
	"transform":       addTransform,
	"sprite":          addSprite,
	"animation":       addAnimation,
	"audio":           addAudio,
	"physics_body":    addPhysicsBody,
	"collider":        addCollider,
	"gravity_scale":   addGravityScale,
	"collision_layer": addCollisionLayer,
	"actions":         addActions,
	"resource_meters": addResourceMeters,
	"state_listeners": addStateListeners,
}

// Sinks wrap the animation and audio components, so listeners come last.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"scripted_input",
	"transform",
	"sprite",
	"animation",
	"audio",
	"physics_body",
	"collider",
	"gravity_scale",
	"collision_layer",
	"actions",
	"resource_meters",
	"state_listeners",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, DefaultLoaders)
}

func BuildEntityWith(w *ecs.World, prefabPath string, loaders Loaders) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec, loaders)
}

// BuildEntityFromSpec creates an entity from an already decoded prefab.
// The entity is destroyed again if any component fails to build.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec, loaders Loaders) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return buildRank(names[i]) < buildRank(names[j])
	})

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Loaders: loaders}
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

func buildRank(name string) int {
	for i, n := range componentBuildOrder {
		if n == name {
			return i
		}
	}
	return len(componentBuildOrder)
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetPosition(cp.Vector{X: x, Y: y})
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	if ecs.Has(w, e, component.InputComponent.Kind()) {
		return nil
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type scriptedInputSpec = prefabs.ScriptedInputComponentSpec

func addScriptedInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptedInputSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scripted input spec: %w", err)
	}
	if spec.Script == "" {
		return errors.New("scripted input needs a script")
	}
	if err := ecs.Add(w, e, component.ScriptedInputComponent.Kind(), &component.ScriptedInput{Script: spec.Script}); err != nil {
		return err
	}
	return addInput(w, e, nil, nil)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" && ctx.Loaders.Image != nil {
		img, err := ctx.Loaders.Image(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}
	sprite.UseSource = spec.UseSource
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	var sheet *ebiten.Image
	if spec.Sheet != "" && ctx.Loaders.Image != nil {
		sheet, err = ctx.Loaders.Image(spec.Sheet)
		if err != nil {
			return fmt.Errorf("load animation sheet %q: %w", spec.Sheet, err)
		}
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			Row:        def.Row,
			ColStart:   def.ColStart,
			FrameCount: def.FrameCount,
			FrameW:     def.FrameW,
			FrameH:     def.FrameH,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}

	current := spec.Current
	if current == "" {
		current = "idle"
	}
	if _, ok := defs[current]; !ok {
		return fmt.Errorf("animation %q is not defined", current)
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Sheet:   sheet,
		Defs:    defs,
		Current: current,
		Playing: true,
	})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponent(spec.Clips, ctx.Loaders.Audio)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	comp.Cooldown = spec.Cooldown
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Mass < 0 || spec.LinearDrag < 0 {
		return fmt.Errorf("mass and linear drag must not be negative")
	}
	if spec.Mass == 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Mass:       spec.Mass,
		LinearDrag: spec.LinearDrag,
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("collider needs a positive size (got %vx%v)", spec.Width, spec.Height)
	}
	shape := component.ColliderShape{
		Size:   cp.Vector{X: spec.Width, Y: spec.Height},
		Offset: cp.Vector{X: spec.OffsetX, Y: spec.OffsetY},
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Kind:     spec.Kind,
		Current:  shape,
		Original: shape,
		Friction: spec.Friction,
	})
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

// addGravityScale treats an omitted scale as normal gravity.
func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	scale := spec.Scale
	if m, ok := raw.(map[string]any); !ok || m["scale"] == nil {
		scale = 1
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale, Default: scale})
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: spec.Category, Mask: spec.Mask})
}

type actionsSpec = prefabs.ActionsComponentSpec

// addActions loads the action configuration and applies the parts of it that
// describe the body rather than a movement state.
func addActions(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actionsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actions spec: %w", err)
	}

	var cfg *component.ActionConfig
	switch {
	case spec.File != "":
		cfg, err = prefabs.LoadActionConfig(spec.File)
	case spec.Inline.Kind != 0:
		cfg, err = prefabs.DecodeActionConfig(&spec.Inline)
	default:
		err = errors.New("actions needs a file or an inline config")
	}
	if err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ActionConfigComponent.Kind(), cfg); err != nil {
		return err
	}

	if def := cfg.Movement.DefaultGravityScale; def > 0 {
		gravity, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
		if !ok {
			gravity = &component.GravityScale{}
			if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), gravity); err != nil {
				return err
			}
		}
		gravity.Scale = def
		gravity.Default = def
	}

	right := cfg.Movement.DefaultFacingRight
	if err := ecs.Add(w, e, component.FacingComponent.Kind(), &component.Facing{Right: right, DefaultRight: true}); err != nil {
		return err
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Mirrored = !right
	}

	modules, err := entityModules(w, e)
	if err != nil {
		return err
	}
	modules.Register("actions", component.ModuleMovement, cfg)
	return nil
}

type resourceMeterSpec = prefabs.ResourceMeterComponentSpec

// addResourceMeters registers each meter as a container module. The first
// meter is also the entity's ticking ResourceMeter component.
func addResourceMeters(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	specs, err := prefabs.DecodeComponentSpec[[]resourceMeterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode resource meters spec: %w", err)
	}
	if len(specs) == 0 {
		return nil
	}
	modules, err := entityModules(w, e)
	if err != nil {
		return err
	}
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("resource meter %d needs a name", i)
		}
		meter := &component.ResourceMeter{Value: spec.Value, Max: spec.Max, Regen: spec.Regen}
		if meter.Max < meter.Value {
			meter.Max = meter.Value
		}
		modules.Register(spec.Name, component.ModuleContainer, meter)
		if i == 0 {
			if err := ecs.Add(w, e, component.ResourceMeterComponent.Kind(), meter); err != nil {
				return err
			}
		}
	}
	return nil
}

type stateListenersSpec = prefabs.StateListenersComponentSpec

func addStateListeners(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[stateListenersSpec](raw)
	if err != nil {
		return fmt.Errorf("decode state listeners spec: %w", err)
	}

	listeners := &component.StateListeners{}
	modules, err := entityModules(w, e)
	if err != nil {
		return err
	}
	if spec.Animation != nil {
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			sink := system.NewAnimationSink(anim, spec.Animation)
			listeners.Add(sink)
			modules.Register("animation", component.ModulePresentation, sink)
		}
	}
	if spec.Audio != nil {
		if clips, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
			sink := system.NewAudioSink(clips, spec.Audio)
			listeners.Add(sink)
			modules.Register("audio", component.ModulePresentation, sink)
		}
	}
	return ecs.Add(w, e, component.StateListenersComponent.Kind(), listeners)
}

func entityModules(w *ecs.World, e ecs.Entity) (*component.Modules, error) {
	if modules, ok := ecs.Get(w, e, component.ModulesComponent.Kind()); ok {
		return modules, nil
	}
	modules := &component.Modules{}
	if err := ecs.Add(w, e, component.ModulesComponent.Kind(), modules); err != nil {
		return nil, err
	}
	return modules, nil
}
