package system

import (
	"log"
	"math"

	"github.com/milk9111/sidescroller-movement/common"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

// timerEpsilon absorbs float drift when a countdown lands on zero.
const timerEpsilon = 1e-9

func timerDone(remaining float64) bool {
	return remaining <= timerEpsilon
}

// ResourceConsumer is implemented by container modules an action can draw
// from (stamina and the like).
type ResourceConsumer interface {
	Consume(amount float64) bool
}

// hFrame holds what one think pass of the horizontal machine derived from
// its inputs.
type hFrame struct {
	in       *component.Input
	surfaces *component.Surfaces
	// axis is -1, 0 or 1 from the configured left/right keys.
	axis float64
	// tapDir is the direction of a repeated press this frame, 0 for none.
	tapDir    float64
	dashTap   bool
	sprintTap bool
}

// HorizontalMachine drives the horizontal velocity component, facing and the
// slide collider reduction of one entity.
type HorizontalMachine struct {
	ctx    *EntityContext
	cfg    *component.ActionConfig
	m      *component.HorizontalMotion
	notify *notifier

	// Cached from the last think pass for the fixed-step integrate calls.
	axis     float64
	canSteer bool
	grounded bool
}

func NewHorizontalMachine(ctx *EntityContext, cfg *component.ActionConfig, m *component.HorizontalMotion, n *notifier) *HorizontalMachine {
	if m == nil {
		m = &component.HorizontalMotion{}
	}
	m.LastTap = [2]float64{-1, -1}
	if m.Direction == 0 {
		m.Direction = 1
		if ctx != nil && !ctx.FacingRight() {
			m.Direction = -1
		}
	}
	return &HorizontalMachine{ctx: ctx, cfg: cfg, m: m, notify: n}
}

func (h *HorizontalMachine) State() component.HorizontalState { return h.m.State }

func (h *HorizontalMachine) Motion() *component.HorizontalMotion { return h.m }

// Axis is the directional input committed by the last think pass.
func (h *HorizontalMachine) Axis() float64 { return h.axis }

// Tick runs a think pass followed by one integrate step of dt.
func (h *HorizontalMachine) Tick(in *component.Input, s *component.Surfaces, dt float64) component.HorizontalState {
	state := h.Think(in, s, dt)
	h.Integrate(dt)
	return state
}

// Think advances timers, reads input and sensor results, and takes at most
// one transition from the current state's table.
func (h *HorizontalMachine) Think(in *component.Input, s *component.Surfaces, dt float64) component.HorizontalState {
	if !h.ctx.Ready() {
		return h.m.State
	}
	if s == nil {
		s = &component.Surfaces{}
	}
	m := h.m
	m.Clock += dt
	m.StateTime += dt
	m.DashCooldown -= dt
	m.SprintCooldown -= dt
	m.SlideCooldown -= dt

	f := &hFrame{in: in, surfaces: s, axis: h.readAxis(in)}
	h.readTaps(f)

	h.grounded = s.Grounded
	h.canSteer = s.Grounded || h.cfg.Movement.AllowAirMovement
	h.axis = f.axis

	if h.canSteer && f.axis != 0 && m.State != component.HorizontalDashing && m.State != component.HorizontalSliding {
		m.Direction = f.axis
		h.ctx.SetFacing(f.axis > 0)
	}

	for _, tr := range horizontalTransitions[m.State] {
		if tr.when(h, f) {
			h.transition(tr.to, f)
			break
		}
	}
	return m.State
}

func (h *HorizontalMachine) transition(to component.HorizontalState, f *hFrame) {
	from := h.m.State
	h.exit(from, to)
	h.m.State = to
	h.m.StateTime = 0
	h.enter(to, f)
	if from != to {
		h.notify.horizontal(from, to)
	}
}

// Integrate applies the active state's motion algorithm to velocity.x.
func (h *HorizontalMachine) Integrate(dt float64) {
	if !h.ctx.Ready() {
		return
	}
	m := h.m
	cfg := h.cfg
	vx := h.ctx.Velocity().X

	switch m.State {
	case component.HorizontalWalking:
		if !h.canSteer {
			return
		}
		w := cfg.Walk
		vx = h.approach(vx, w.Mode, w.Speed, w.Acceleration, w.Deceleration, w.MaxSpeed, dt)
	case component.HorizontalSprinting:
		if !h.canSteer {
			return
		}
		sp := cfg.Sprint
		vx = h.approach(vx, sp.Mode, sp.Speed, sp.Acceleration, sp.Deceleration, sp.MaxSpeed, dt)
	case component.HorizontalDashing:
		vx = m.DashDirection * cfg.Dash.Speed
	case component.HorizontalSliding:
		if cfg.Slide.Mode == component.SlideLong {
			m.SlideSpeed = common.MoveToward(m.SlideSpeed, 0, cfg.Slide.Decay*dt)
		}
		vx = m.Direction * m.SlideSpeed
	case component.HorizontalBraking:
		rate := cfg.Walk.BrakeDeceleration
		if rate <= 0 {
			rate = cfg.Walk.Deceleration
		}
		if rate <= 0 {
			vx = 0
		} else {
			vx = common.MoveToward(vx, 0, rate*dt)
		}
	default:
		return
	}
	h.ctx.SetVelocityX(vx)
}

// approach implements the constant-speed and acceleration algorithms.
// Vehicle mode shares the acceleration path; its braking lives in Braking.
func (h *HorizontalMachine) approach(vx float64, mode component.MotionMode, speed, accel, decel, maxSpeed, dt float64) float64 {
	target := h.axis * speed
	if mode == component.MotionConstantSpeed {
		return target
	}
	switch {
	case h.axis != 0 && accel > 0:
		vx = common.MoveToward(vx, target, accel*dt)
	case h.axis != 0:
		vx = target
	case decel > 0:
		vx = common.MoveToward(vx, 0, decel*dt)
	default:
		vx = 0
	}
	if maxSpeed > 0 {
		vx = common.Clamp(vx, -maxSpeed, maxSpeed)
	}
	return vx
}

func (h *HorizontalMachine) readAxis(in *component.Input) float64 {
	left, right := h.directionKeys()
	x := 0.0
	if in.IsHeld(left) {
		x--
	}
	if in.IsHeld(right) {
		x++
	}
	return x
}

func (h *HorizontalMachine) directionKeys() (component.Key, component.Key) {
	return keyOr(h.cfg.Movement.Left, component.KeyLeft), keyOr(h.cfg.Movement.Right, component.KeyRight)
}

// readTaps records direction key presses. A second press of the same key
// inside a window is a double tap; a press of the other key forgets the
// pending one.
func (h *HorizontalMachine) readTaps(f *hFrame) {
	m := h.m
	left, right := h.directionKeys()
	keys := [2]component.Key{left, right}
	dirs := [2]float64{-1, 1}
	for i, key := range keys {
		if !f.in.IsPressed(key) {
			continue
		}
		m.LastTap[1-i] = -1
		if m.LastTap[i] >= 0 {
			gap := m.Clock - m.LastTap[i]
			f.tapDir = dirs[i]
			f.dashTap = h.cfg.Dash.DoubleTap && gap <= h.cfg.Dash.DoubleTapWindow
			f.sprintTap = h.cfg.Sprint.DoubleTap && gap <= h.cfg.Sprint.DoubleTapWindow
		}
		m.LastTap[i] = m.Clock
	}
}

func (h *HorizontalMachine) consumeTap(dir float64) {
	if dir < 0 {
		h.m.LastTap[0] = -1
	} else if dir > 0 {
		h.m.LastTap[1] = -1
	}
}

// payDashCost draws the dash cost from the configured resource module. A
// missing module aborts the dash.
func (h *HorizontalMachine) payDashCost() bool {
	name := h.cfg.Dash.Resource
	if name == "" {
		return true
	}
	mod, err := h.ctx.Lookup(name)
	if err != nil {
		log.Printf("movement: dash aborted: %v", err)
		h.notify.moduleMissing(name)
		return false
	}
	consumer, ok := mod.(ResourceConsumer)
	if !ok {
		log.Printf("movement: dash aborted: module %q cannot supply resources", name)
		return false
	}
	return consumer.Consume(h.cfg.Dash.ResourceCost)
}

func (h *HorizontalMachine) speed() float64 {
	return math.Abs(h.ctx.Velocity().X)
}

func (h *HorizontalMachine) idleEpsilon() float64 {
	if h.cfg.Movement.IdleEpsilon > 0 {
		return h.cfg.Movement.IdleEpsilon
	}
	return defaultIdleEpsilon
}

func keyOr(k, fallback component.Key) component.Key {
	if k == component.KeyNone {
		return fallback
	}
	return k
}
