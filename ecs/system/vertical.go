package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

// vFrame holds what one think pass of the vertical machine derived from its
// inputs.
type vFrame struct {
	in       *component.Input
	surfaces *component.Surfaces
	vy       float64

	jumpPressed    bool
	jumpHeld       bool
	airJumpPressed bool
	wallJumpPress  bool
	grabHeld       bool
	crouchHeld     bool
	// climbAxis is 1 for up, -1 for down, 0 for none.
	climbAxis float64
}

// VerticalMachine drives the vertical velocity component, gravity scale and
// crouch collider reduction of one entity. It reads the horizontal machine's
// committed output for the same frame.
type VerticalMachine struct {
	ctx    *EntityContext
	cfg    *component.ActionConfig
	m      *component.VerticalMotion
	notify *notifier
	h      *HorizontalMachine

	// Cached from the last think pass for the fixed-step integrate calls.
	grounded  bool
	jumpHeld  bool
	climbAxis float64
	// jump is the settings of the jump or air jump in progress.
	jump *component.JumpAction
}

func NewVerticalMachine(ctx *EntityContext, cfg *component.ActionConfig, m *component.VerticalMotion, h *HorizontalMachine, n *notifier) *VerticalMachine {
	if m == nil {
		m = &component.VerticalMotion{}
	}
	v := &VerticalMachine{ctx: ctx, cfg: cfg, m: m, notify: n, h: h, jump: &cfg.Jump}
	m.Charges = v.maxCharges()
	return v
}

func (v *VerticalMachine) State() component.VerticalState { return v.m.State }

func (v *VerticalMachine) Motion() *component.VerticalMotion { return v.m }

func (v *VerticalMachine) maxCharges() int {
	if !v.cfg.AirJump.Enabled {
		return 0
	}
	return v.cfg.AirJump.MaxExtraJumps
}

// Tick runs a think pass followed by one integrate step of dt.
func (v *VerticalMachine) Tick(in *component.Input, s *component.Surfaces, dt float64) component.VerticalState {
	state := v.Think(in, s, dt)
	v.Integrate(dt)
	return state
}

// Think advances timers, reads input and sensor results, takes at most one
// transition, and runs the per-state think work of the resulting state.
func (v *VerticalMachine) Think(in *component.Input, s *component.Surfaces, dt float64) component.VerticalState {
	if !v.ctx.Ready() {
		return v.m.State
	}
	if s == nil {
		s = &component.Surfaces{}
	}
	m := v.m
	m.StateTime += dt
	m.AirJumpCooldown -= dt
	if m.WallJumpLock > 0 {
		m.WallJumpLock -= dt
		if timerDone(m.WallJumpLock) {
			m.LockedShape = nil
		}
	}
	if m.DropShape != nil {
		m.DropTimer -= dt
		if timerDone(m.DropTimer) {
			m.DropShape = nil
			v.ctx.IgnorePlatform(nil)
		}
	}

	grounded := s.Grounded
	if grounded && !m.WasGrounded {
		m.Charges = v.maxCharges()
	}
	if m.AlignedLedge != nil && s.Ledge.Shape != m.AlignedLedge {
		m.AlignedLedge = nil
	}

	f := v.readFrame(in, s)
	v.grounded = grounded
	v.jumpHeld = f.jumpHeld
	v.climbAxis = f.climbAxis
	v.trackFall(f, dt)

	for _, tr := range verticalTransitions[m.State] {
		if tr.when(v, f) {
			v.transition(tr.to, f)
			break
		}
	}

	v.update(f, dt)
	v.applyGravity()
	m.WasGrounded = grounded
	return m.State
}

func (v *VerticalMachine) transition(to component.VerticalState, f *vFrame) {
	from := v.m.State
	v.exit(from, to)
	v.m.State = to
	v.m.StateTime = 0
	v.enter(from, to, f)
	if from != to {
		v.notify.vertical(from, to)
	}
}

// Integrate applies the active state's vertical motion and gravity scale.
func (v *VerticalMachine) Integrate(dt float64) {
	if !v.ctx.Ready() {
		return
	}
	m := v.m
	switch m.State {
	case component.VerticalJumping, component.VerticalAirJumping:
		if m.JumpBoosting {
			if v.jumpHeld && m.JumpHold > timerEpsilon {
				v.ctx.SetVelocityY(v.jump.InitialSpeed)
				m.JumpHold -= dt
			} else {
				m.JumpBoosting = false
			}
		}
	case component.VerticalClimbing:
		v.ctx.SetVelocityY(v.climbAxis * v.cfg.Climb.Speed)
	case component.VerticalWallGrab:
		if v.cfg.Wall.Mode == component.GrabHold {
			v.ctx.SetVelocity(cp.Vector{})
		}
	case component.VerticalLedgeGrab:
		v.ctx.SetVelocity(cp.Vector{})
	}
	v.applyGravity()
}

// applyGravity sets the gravity scale owned by the current state. States
// without an override leave the default in place.
func (v *VerticalMachine) applyGravity() {
	def := v.ctx.DefaultGravityScale()
	natural := v.cfg.Movement.FallGravityScale
	if natural <= 0 {
		natural = def
	}
	vy := v.ctx.Velocity().Y

	scale := def
	switch v.m.State {
	case component.VerticalIdle, component.VerticalFalling:
		if !v.grounded && vy <= 0 {
			scale = natural
		}
	case component.VerticalJumping, component.VerticalAirJumping, component.VerticalWallJump:
		j := v.jump
		if vy > 0 || v.m.JumpBoosting {
			if j.AscendGravityScale > 0 {
				scale = j.AscendGravityScale
			}
		} else if j.FallGravityScale > 0 {
			scale = j.FallGravityScale
		}
	case component.VerticalClimbing, component.VerticalLedgeGrab:
		scale = 0
	case component.VerticalWallGrab:
		if v.cfg.Wall.Mode == component.GrabSlide {
			scale = v.cfg.Wall.SlideGravityScale
		} else {
			scale = 0
		}
	}
	v.ctx.SetGravityScale(scale)
}

func (v *VerticalMachine) readFrame(in *component.Input, s *component.Surfaces) *vFrame {
	cfg := v.cfg
	jump := cfg.Jump.Binding
	jump.Key = keyOr(jump.Key, component.KeyJump)
	airJump := cfg.AirJump.Binding
	if airJump.Key == component.KeyNone && airJump.Auto == component.AutoNone {
		airJump = jump
	}
	wallJump := cfg.Wall.Jump.Binding
	if wallJump.Key == component.KeyNone && wallJump.Auto == component.AutoNone {
		wallJump = jump
	}
	grab := cfg.Wall.Binding
	grab.Key = keyOr(grab.Key, component.KeyGrab)
	crouch := cfg.Crouch.Binding
	crouch.Key = keyOr(crouch.Key, component.KeyCrouch)

	f := &vFrame{
		in:             in,
		surfaces:       s,
		vy:             v.ctx.Velocity().Y,
		jumpPressed:    jump.Pressed(in),
		jumpHeld:       jump.Held(in),
		airJumpPressed: airJump.Pressed(in),
		wallJumpPress:  wallJump.Pressed(in),
		grabHeld:       grab.Held(in),
		crouchHeld:     crouch.Held(in),
	}

	switch cfg.Climb.Binding.Auto {
	case component.AutoUp:
		f.climbAxis = 1
	case component.AutoDown:
		f.climbAxis = -1
	default:
		if in.IsHeld(keyOr(cfg.Movement.Up, component.KeyUp)) {
			f.climbAxis++
		}
		if in.IsHeld(keyOr(cfg.Movement.Down, component.KeyDown)) {
			f.climbAxis--
		}
	}
	return f
}

// trackFall accumulates the time spent ungrounded and descending faster
// than the fall threshold. Any frame outside that condition resets it.
func (v *VerticalMachine) trackFall(f *vFrame, dt float64) {
	fall := v.cfg.Fall
	if fall.Enabled && !f.surfaces.Grounded && f.vy < -fall.Threshold {
		v.m.FallGrace += dt
		return
	}
	v.m.FallGrace = 0
}

// launch starts a jump with settings j.
func (v *VerticalMachine) launch(j *component.JumpAction) {
	m := v.m
	v.jump = j
	if j.Mode == component.JumpDerivative {
		v.ctx.SetVelocityY(j.InitialSpeed)
		m.JumpHold = j.MaxHoldTime
		m.JumpBoosting = true
		return
	}

	scale := j.AscendGravityScale
	if scale <= 0 {
		scale = v.ctx.DefaultGravityScale()
	}
	g := math.Abs(v.cfg.Movement.Gravity)
	impulse := math.Sqrt(2*j.Height*g*scale) * v.ctx.Mass()
	m.JumpBoosting = false
	v.ctx.SetVelocityY(0)
	v.ctx.ApplyImpulseY(impulse)
}

// wallJump launches away from the surface the entity is attached to.
func (v *VerticalMachine) wallJump(from component.VerticalState, s *component.Surfaces) {
	cfg := v.cfg.Wall.Jump
	contact := s.Wall
	if from == component.VerticalLedgeGrab || !contact.Touching() {
		contact = s.Ledge
	}

	dir := -float64(contact.Side)
	if dir == 0 {
		dir = 1
		if v.ctx.FacingRight() {
			dir = -1
		}
	}
	rad := cfg.Angle * math.Pi / 180
	v.ctx.SetVelocity(cp.Vector{X: dir * cfg.Force * math.Cos(rad), Y: cfg.Force * math.Sin(rad)})

	v.m.LockedShape = contact.Shape
	v.m.WallJumpLock = cfg.LockDuration
	v.m.JumpBoosting = false
	v.jump = &v.cfg.Jump

	if cfg.UpdateFacing {
		v.ctx.SetFacing(dir > 0)
		if v.h != nil {
			v.h.m.Direction = dir
		}
	}
}

// alignToLedge moves the entity vertically so its collider lines up with
// the ledge along the configured edge.
func (v *VerticalMachine) alignToLedge(ledge component.Contact) {
	bounds := v.ctx.Bounds()
	var dy float64
	switch v.cfg.Wall.Ledge.Alignment {
	case component.AlignTop:
		dy = ledge.Bounds.T - bounds.T
	case component.AlignCenter:
		dy = (ledge.Bounds.B+ledge.Bounds.T)/2 - (bounds.B+bounds.T)/2
	case component.AlignBottom:
		dy = ledge.Bounds.B - bounds.B
	}
	pos := v.ctx.Position()
	v.ctx.SetPosition(cp.Vector{X: pos.X, Y: pos.Y + dy})
	v.m.AlignedLedge = ledge.Shape
}

func (v *VerticalMachine) startDrop(platform *cp.Shape) {
	m := v.m
	m.DropShape = platform
	m.DropTimer = v.cfg.Crouch.DropDuration
	m.CrouchHold = 0
	v.ctx.IgnorePlatform(platform)
}

func (v *VerticalMachine) locked(shape *cp.Shape) bool {
	return shape != nil && shape == v.m.LockedShape && v.m.WallJumpLock > timerEpsilon
}

// horizontalAxis is the directional input the horizontal machine committed
// this frame.
func (v *VerticalMachine) horizontalAxis() float64 {
	if v.h == nil {
		return 0
	}
	return v.h.Axis()
}
