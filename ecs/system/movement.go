package system

import (
	"log"

	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

const defaultFixedStep = 1.0 / 60.0

// Stepper advances the physics simulation by dt seconds.
type Stepper interface {
	Step(dt float64)
}

// notifier fans state changes out to an entity's listeners and the world
// event queue. A nil notifier or nil listeners drop everything.
type notifier struct {
	entity    ecs.Entity
	listeners *component.StateListeners
	events    *ecs.EventQueue
}

func (n *notifier) horizontal(from, to component.HorizontalState) {
	if n == nil {
		return
	}
	n.listeners.Horizontal(to)
	n.events.Push(ecs.Event{Type: ecs.EventHorizontalStateChanged, Data: ecs.StateChangeEvent{Entity: n.entity, From: from.String(), To: to.String()}})
}

func (n *notifier) vertical(from, to component.VerticalState) {
	if n == nil {
		return
	}
	n.listeners.Vertical(to)
	n.events.Push(ecs.Event{Type: ecs.EventVerticalStateChanged, Data: ecs.StateChangeEvent{Entity: n.entity, From: from.String(), To: to.String()}})
}

func (n *notifier) climbPause(paused bool) {
	if n == nil {
		return
	}
	n.listeners.ClimbPause(paused)
}

func (n *notifier) moduleMissing(name string) {
	if n == nil {
		return
	}
	n.events.Push(ecs.Event{Type: ecs.EventModuleMissing, Data: name})
}

// mover is the cached machine pair of one entity.
type mover struct {
	entity ecs.Entity
	ctx    *EntityContext
	h      *HorizontalMachine
	v      *VerticalMachine
	sensor *SurfaceSensor
	input  *component.Input
	found  *component.Surfaces
}

// MovementSystem runs the horizontal and vertical machines of every entity
// with an action config. Each frame it senses surfaces, runs both think
// passes, then integrates at a fixed step and advances physics.
type MovementSystem struct {
	// FrameTime is the variable think step in seconds.
	FrameTime float64
	// FixedStep is the physics integration step in seconds.
	FixedStep float64
	Stepper   Stepper

	accumulator float64
	movers      map[ecs.Entity]*mover
	warned      map[ecs.Entity]bool
}

func NewMovementSystem(stepper Stepper) *MovementSystem {
	return &MovementSystem{
		FrameTime: defaultFixedStep,
		FixedStep: defaultFixedStep,
		Stepper:   stepper,
		movers:    make(map[ecs.Entity]*mover),
		warned:    make(map[ecs.Entity]bool),
	}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.FrameTime
	if dt <= 0 {
		dt = defaultFixedStep
	}

	entities := w.Query(component.ActionConfigComponent.Kind(), component.PhysicsBodyComponent.Kind())
	active := make([]*mover, 0, len(entities))
	for _, e := range entities {
		mv := s.mover(w, e)
		if mv == nil {
			continue
		}
		if !mv.ctx.Ready() {
			s.warn(e, ErrNoPhysicsBody)
			continue
		}

		// The body may have been created after the machines were built.
		mv.sensor.Space = mv.ctx.Body().Space
		*mv.found = mv.sensor.Sense(mv.ctx.Position(), mv.ctx.Collider(), mv.ctx.Body().IgnoredShape)
		mv.h.Think(mv.input, mv.found, dt)
		mv.v.Think(mv.input, mv.found, dt)
		active = append(active, mv)
	}

	s.integrate(active, dt)
	s.prune(w)
}

// integrate runs as many fixed steps as the accumulated frame time allows.
func (s *MovementSystem) integrate(active []*mover, dt float64) {
	step := s.FixedStep
	if step <= 0 {
		step = defaultFixedStep
	}
	s.accumulator += dt
	for s.accumulator >= step-timerEpsilon {
		for _, mv := range active {
			mv.h.Integrate(step)
			mv.v.Integrate(step)
		}
		if s.Stepper != nil {
			s.Stepper.Step(step)
		}
		s.accumulator -= step
	}
}

// Machines returns the machine pair built for e, if any.
func (s *MovementSystem) Machines(e ecs.Entity) (*HorizontalMachine, *VerticalMachine, bool) {
	mv, ok := s.movers[e]
	if !ok {
		return nil, nil, false
	}
	return mv.h, mv.v, true
}

// Refresh re-reads the settings the sensors copied out of their action
// configs. Call it after configs were replaced in place.
func (s *MovementSystem) Refresh() {
	for _, mv := range s.movers {
		cfg := mv.h.cfg
		mv.sensor.Settings = cfg.Sensor
		mv.sensor.ClimbProbe = cfg.Climb.ProbeDistance
		if limit := mv.v.maxCharges(); mv.v.m.Charges > limit {
			mv.v.m.Charges = limit
		}
	}
}

func (s *MovementSystem) mover(w *ecs.World, e ecs.Entity) *mover {
	if mv, ok := s.movers[e]; ok {
		return mv
	}

	ctx, err := NewEntityContext(w, e)
	if err != nil {
		s.warn(e, err)
		return nil
	}
	cfg, _ := ecs.Get(w, e, component.ActionConfigComponent.Kind())

	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		input = &component.Input{}
		_ = ecs.Add(w, e, component.InputComponent.Kind(), input)
	}
	found, ok := ecs.Get(w, e, component.SurfacesComponent.Kind())
	if !ok {
		found = &component.Surfaces{}
		_ = ecs.Add(w, e, component.SurfacesComponent.Kind(), found)
	}
	hm, ok := ecs.Get(w, e, component.HorizontalMotionComponent.Kind())
	if !ok {
		hm = &component.HorizontalMotion{}
		_ = ecs.Add(w, e, component.HorizontalMotionComponent.Kind(), hm)
	}
	vm, ok := ecs.Get(w, e, component.VerticalMotionComponent.Kind())
	if !ok {
		vm = &component.VerticalMotion{}
		_ = ecs.Add(w, e, component.VerticalMotionComponent.Kind(), vm)
	}
	listeners, _ := ecs.Get(w, e, component.StateListenersComponent.Kind())

	n := &notifier{entity: e, listeners: listeners, events: w.Events()}
	h := NewHorizontalMachine(ctx, cfg, hm, n)
	mv := &mover{
		entity: e,
		ctx:    ctx,
		h:      h,
		v:      NewVerticalMachine(ctx, cfg, vm, h, n),
		sensor: NewSurfaceSensor(ctx.Body().Space, cfg),
		input:  input,
		found:  found,
	}
	s.movers[e] = mv
	return mv
}

func (s *MovementSystem) warn(e ecs.Entity, err error) {
	if s.warned[e] {
		return
	}
	s.warned[e] = true
	log.Printf("movement: entity %v skipped: %v", e, err)
}

func (s *MovementSystem) prune(w *ecs.World) {
	for e := range s.movers {
		if !w.IsAlive(e) {
			delete(s.movers, e)
			delete(s.warned, e)
		}
	}
}
