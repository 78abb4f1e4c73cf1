package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

const testDT = 0.05

type recorder struct {
	horizontal []component.HorizontalState
	vertical   []component.VerticalState
	pauses     []bool
}

func (r *recorder) OnHorizontalStateChange(s component.HorizontalState) {
	r.horizontal = append(r.horizontal, s)
}

func (r *recorder) OnVerticalStateChange(s component.VerticalState) {
	r.vertical = append(r.vertical, s)
}

func (r *recorder) OnClimbPause(paused bool) {
	r.pauses = append(r.pauses, paused)
}

func (r *recorder) countVertical(s component.VerticalState) int {
	n := 0
	for _, v := range r.vertical {
		if v == s {
			n++
		}
	}
	return n
}

// rig drives both machines of one entity without a space. Surfaces are set
// by the test instead of sensed.
type rig struct {
	w      *ecs.World
	e      ecs.Entity
	cfg    *component.ActionConfig
	pb     *component.PhysicsBody
	col    *component.Collider
	sprite *component.Sprite
	ctx    *EntityContext
	h      *HorizontalMachine
	v      *VerticalMachine
	in     *component.Input
	s      *component.Surfaces
	rec    *recorder
}

func newRig(t *testing.T, cfg component.ActionConfig) *rig {
	t.Helper()

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	r := &rig{
		w:      w,
		e:      e,
		cfg:    &cfg,
		pb:     &component.PhysicsBody{Body: cp.NewBody(1, math.Inf(1)), Mass: 1},
		col:    &component.Collider{Kind: component.ColliderBox, Current: component.ColliderShape{Size: cp.Vector{X: 20, Y: 40}}},
		sprite: &component.Sprite{},
		in:     &component.Input{},
		s:      &component.Surfaces{},
		rec:    &recorder{},
	}

	scale := cfg.Movement.DefaultGravityScale
	if scale == 0 {
		scale = 1
	}
	listeners := &component.StateListeners{}
	listeners.Add(r.rec)

	for _, err := range []error{
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), r.pb),
		ecs.Add(w, e, component.ColliderComponent.Kind(), r.col),
		ecs.Add(w, e, component.SpriteComponent.Kind(), r.sprite),
		ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale, Default: scale}),
		ecs.Add(w, e, component.StateListenersComponent.Kind(), listeners),
	} {
		if err != nil {
			t.Fatalf("add component: %v", err)
		}
	}

	ctx, err := NewEntityContext(w, e)
	if err != nil {
		t.Fatalf("NewEntityContext: %v", err)
	}
	n := &notifier{entity: e, listeners: listeners, events: w.Events()}
	r.ctx = ctx
	r.h = NewHorizontalMachine(ctx, r.cfg, &component.HorizontalMotion{}, n)
	r.v = NewVerticalMachine(ctx, r.cfg, &component.VerticalMotion{}, r.h, n)
	return r
}

func keys(held ...component.Key) component.KeySet {
	var s component.KeySet
	for _, k := range held {
		s = s.With(k)
	}
	return s
}

// step runs one frame: input edge detection, both think passes in order,
// then one integrate step of each machine.
func (r *rig) step(held ...component.Key) {
	r.in.Next(keys(held...))
	r.h.Think(r.in, r.s, testDT)
	r.v.Think(r.in, r.s, testDT)
	r.h.Integrate(testDT)
	r.v.Integrate(testDT)
}

func (r *rig) velocity() cp.Vector {
	return r.pb.Body.Velocity()
}

func (r *rig) setVelocity(x, y float64) {
	r.pb.Body.SetVelocity(x, y)
}

func (r *rig) gravity() float64 {
	return r.ctx.GravityScale()
}

func staticShape() *cp.Shape {
	return cp.NewBox(cp.NewStaticBody(), 10, 10, 0)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
