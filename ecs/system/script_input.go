package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/milk9111/sidescroller-movement/prefabs"
)

// scriptInputRuntime is the compiled script of one entity. State persists
// between frames so scripts can keep counters.
type scriptInputRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

// ScriptInputSystem drives Input from tengo scripts. Each frame the script
// sees the entity's movement state and assigns the held keys to `keys`:
//
//	keys = []
//	if frame < 30 { keys = ["right"] }
type ScriptInputSystem struct {
	FrameTime float64
	// Load resolves a script path to source. Defaults to the embedded
	// prefabs scripts.
	Load func(path string) ([]byte, error)

	frame    int
	elapsed  float64
	runtimes map[ecs.Entity]*scriptInputRuntime
	failed   map[ecs.Entity]string
}

func NewScriptInputSystem() *ScriptInputSystem {
	return &ScriptInputSystem{
		FrameTime: defaultFixedStep,
		Load:      prefabs.LoadScript,
		runtimes:  make(map[ecs.Entity]*scriptInputRuntime),
		failed:    make(map[ecs.Entity]string),
	}
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.ScriptedInputComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, scripted *component.ScriptedInput, input *component.Input) {
		rt, err := s.runtime(e, scripted.Script)
		if err != nil {
			if s.failed[e] != scripted.Script {
				s.failed[e] = scripted.Script
				log.Printf("input: entity=%v load script %q: %v", e, scripted.Script, err)
			}
			input.Next(0)
			return
		}

		held, err := rt.run(s.globals(w, e))
		if err != nil {
			log.Printf("input: entity=%v script %q: %v", e, scripted.Script, err)
		}
		input.Next(held)
	})

	s.frame++
	s.elapsed += s.FrameTime
}

// Reload drops cached scripts so they are recompiled on next use.
func (s *ScriptInputSystem) Reload() {
	s.runtimes = make(map[ecs.Entity]*scriptInputRuntime)
	s.failed = make(map[ecs.Entity]string)
}

func (s *ScriptInputSystem) globals(w *ecs.World, e ecs.Entity) map[string]any {
	g := map[string]any{
		"frame":    s.frame,
		"time":     s.elapsed,
		"grounded": false,
		"vx":       0.0,
		"vy":       0.0,
		"state_h":  component.HorizontalIdle.String(),
		"state_v":  component.VerticalIdle.String(),
	}
	if found, ok := ecs.Get(w, e, component.SurfacesComponent.Kind()); ok {
		g["grounded"] = found.Grounded
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		v := pb.Body.Velocity()
		g["vx"] = v.X
		g["vy"] = v.Y
	}
	if hm, ok := ecs.Get(w, e, component.HorizontalMotionComponent.Kind()); ok {
		g["state_h"] = hm.State.String()
	}
	if vm, ok := ecs.Get(w, e, component.VerticalMotionComponent.Kind()); ok {
		g["state_v"] = vm.State.String()
	}
	return g
}

func (s *ScriptInputSystem) runtime(e ecs.Entity, path string) (*scriptInputRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := s.runtimes[e]; ok && rt.scriptPath == path {
		return rt, nil
	}

	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	for name, value := range scriptInputDefaults() {
		if err := script.Add(name, value); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &scriptInputRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	delete(s.failed, e)
	return rt, nil
}

func scriptInputDefaults() map[string]any {
	return map[string]any{
		"frame":    0,
		"time":     0.0,
		"grounded": false,
		"vx":       0.0,
		"vy":       0.0,
		"state_h":  "",
		"state_v":  "",
		"state":    map[string]any{},
		"keys":     []any{},
	}
}

// run executes the script once and returns the keys it asked to hold.
// Unknown key names are skipped.
func (rt *scriptInputRuntime) run(globals map[string]any) (component.KeySet, error) {
	for name, value := range globals {
		if err := rt.compiled.Set(name, value); err != nil {
			return 0, err
		}
	}
	if err := rt.compiled.Set("state", rt.stateData); err != nil {
		return 0, err
	}
	if err := rt.compiled.Set("keys", []any{}); err != nil {
		return 0, err
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, err
	}

	var held component.KeySet
	for _, item := range rt.compiled.Get("keys").Array() {
		name, ok := item.(string)
		if !ok {
			continue
		}
		key, err := component.ParseKey(name)
		if err != nil {
			continue
		}
		held = held.With(key)
	}
	return held, nil
}
