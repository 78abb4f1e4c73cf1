package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

type verticalTransition struct {
	name string
	to   component.VerticalState
	when func(*VerticalMachine, *vFrame) bool
}

var (
	vLedge   = verticalTransition{"ledge_grab", component.VerticalLedgeGrab, (*VerticalMachine).ledgeGrabbed}
	vWall    = verticalTransition{"wall_grab", component.VerticalWallGrab, (*VerticalMachine).wallGrabbed}
	vJump    = verticalTransition{"jump", component.VerticalJumping, (*VerticalMachine).jumpTriggered}
	vAirJump = verticalTransition{"air_jump", component.VerticalAirJumping, (*VerticalMachine).airJumpTriggered}
	vClimb   = verticalTransition{"climb", component.VerticalClimbing, (*VerticalMachine).climbTriggered}
	vCrouch  = verticalTransition{"crouch", component.VerticalCrouching, (*VerticalMachine).crouchTriggered}
	vFall    = verticalTransition{"fall", component.VerticalFalling, (*VerticalMachine).fallTriggered}
	vLanded  = verticalTransition{"landed", component.VerticalIdle, (*VerticalMachine).landed}
	vWallJmp = verticalTransition{"wall_jump", component.VerticalWallJump, (*VerticalMachine).wallJumpTriggered}
)

// verticalTransitions lists, per state, the transitions checked each think
// pass in priority order. The first whose predicate holds is taken.
var verticalTransitions = map[component.VerticalState][]verticalTransition{
	component.VerticalIdle: {
		vLedge,
		vWall,
		vJump,
		vAirJump,
		vClimb,
		vCrouch,
		vFall,
	},
	component.VerticalJumping: {
		vLedge,
		vWall,
		vAirJump,
		vClimb,
		vLanded,
		vFall,
	},
	component.VerticalAirJumping: {
		vLedge,
		vWall,
		vAirJump,
		vClimb,
		vLanded,
		vFall,
	},
	component.VerticalCrouching: {
		vJump,
		{"crouch_released", component.VerticalIdle, (*VerticalMachine).crouchReleased},
	},
	component.VerticalClimbing: {
		{"climb_jump", component.VerticalJumping, (*VerticalMachine).climbJump},
		{"climb_lost", component.VerticalIdle, (*VerticalMachine).climbLost},
		{"climb_released", component.VerticalIdle, (*VerticalMachine).climbReleased},
	},
	component.VerticalWallGrab: {
		vWallJmp,
		vLedge,
		{"wall_released", component.VerticalIdle, (*VerticalMachine).wallReleased},
	},
	component.VerticalLedgeGrab: {
		vWallJmp,
		{"ledge_released", component.VerticalIdle, (*VerticalMachine).ledgeReleased},
	},
	component.VerticalWallJump: {
		vLedge,
		vWall,
		vAirJump,
		vLanded,
		vFall,
	},
	component.VerticalFalling: {
		vLedge,
		vWall,
		vAirJump,
		vClimb,
		vLanded,
	},
}

func (v *VerticalMachine) jumpTriggered(f *vFrame) bool {
	return f.surfaces.Grounded && f.jumpPressed
}

func (v *VerticalMachine) airJumpTriggered(f *vFrame) bool {
	return v.cfg.AirJump.Enabled && !f.surfaces.Grounded && f.airJumpPressed &&
		v.m.Charges > 0 && timerDone(v.m.AirJumpCooldown)
}

func (v *VerticalMachine) landed(f *vFrame) bool {
	return f.surfaces.Grounded && f.vy <= timerEpsilon
}

func (v *VerticalMachine) fallTriggered(*vFrame) bool {
	fall := v.cfg.Fall
	return fall.Enabled && v.m.FallGrace > 0 && v.m.FallGrace >= fall.GraceDelay-timerEpsilon
}

func (v *VerticalMachine) crouchTriggered(f *vFrame) bool {
	return v.cfg.Crouch.Enabled && f.surfaces.Grounded && f.crouchHeld
}

func (v *VerticalMachine) crouchReleased(f *vFrame) bool {
	return !f.crouchHeld || !f.surfaces.Grounded
}

func (v *VerticalMachine) climbTriggered(f *vFrame) bool {
	if !v.cfg.Climb.Enabled || !f.surfaces.Climbable.Touching() {
		return false
	}
	return f.climbAxis > 0 || (f.climbAxis < 0 && !f.surfaces.Grounded)
}

func (v *VerticalMachine) climbJump(f *vFrame) bool {
	return f.jumpPressed
}

func (v *VerticalMachine) climbLost(f *vFrame) bool {
	return !f.surfaces.Climbable.Touching() || (f.surfaces.Grounded && f.climbAxis < 0)
}

func (v *VerticalMachine) climbReleased(f *vFrame) bool {
	return f.climbAxis == 0 && !v.cfg.Climb.Hold
}

func (v *VerticalMachine) wallGrabbed(f *vFrame) bool {
	s := f.surfaces
	return v.cfg.Wall.Enabled && !s.Grounded && s.Wall.Touching() && f.grabHeld && !v.locked(s.Wall.Shape)
}

func (v *VerticalMachine) ledgeGrabbed(f *vFrame) bool {
	s := f.surfaces
	return v.cfg.Wall.Ledge.Enabled && !s.Grounded && s.Ledge.Touching() && f.grabHeld && !v.locked(s.Ledge.Shape)
}

func (v *VerticalMachine) wallReleased(f *vFrame) bool {
	s := f.surfaces
	return s.Grounded || !s.Wall.Touching() || !f.grabHeld
}

func (v *VerticalMachine) ledgeReleased(f *vFrame) bool {
	s := f.surfaces
	return s.Grounded || !s.Ledge.Touching() || !f.grabHeld
}

func (v *VerticalMachine) wallJumpTriggered(f *vFrame) bool {
	return v.cfg.Wall.Jump.Enabled && f.wallJumpPress
}

func (v *VerticalMachine) enter(from, state component.VerticalState, f *vFrame) {
	m := v.m
	cfg := v.cfg
	switch state {
	case component.VerticalJumping:
		v.launch(&cfg.Jump)
	case component.VerticalAirJumping:
		m.Charges--
		m.AirJumpCooldown = cfg.AirJump.MinInterval
		v.launch(&cfg.AirJump.JumpAction)
	case component.VerticalCrouching:
		m.CrouchReduced = true
		m.CrouchHold = 0
		v.ctx.setReduction(reductionCrouch, cfg.Crouch.HeightReduction)
		v.ctx.SetLinearDrag(cfg.Crouch.LinearDrag)
	case component.VerticalClimbing:
		m.ClimbFrozen = false
		v.ctx.SetVelocityY(0)
	case component.VerticalWallGrab:
		if v.cfg.Wall.Mode == component.GrabHold {
			v.ctx.SetVelocity(cp.Vector{})
		} else {
			v.ctx.SetVelocityY(0)
		}
	case component.VerticalLedgeGrab:
		v.ctx.SetVelocity(cp.Vector{})
		if m.AlignedLedge != f.surfaces.Ledge.Shape {
			v.alignToLedge(f.surfaces.Ledge)
		}
	case component.VerticalWallJump:
		v.wallJump(from, f.surfaces)
	}
}

func (v *VerticalMachine) exit(state, next component.VerticalState) {
	m := v.m
	switch state {
	case component.VerticalJumping, component.VerticalAirJumping:
		m.JumpBoosting = false
	case component.VerticalCrouching:
		if next == component.VerticalCrouching {
			return
		}
		m.CrouchReduced = false
		m.CrouchHold = 0
		v.ctx.setReduction(reductionCrouch, 0)
		v.ctx.RestoreLinearDrag()
	case component.VerticalClimbing:
		if m.ClimbFrozen {
			m.ClimbFrozen = false
			v.ctx.LockY(false)
			v.notify.climbPause(false)
		}
	}
}

// update runs the think-rate work of the current state.
func (v *VerticalMachine) update(f *vFrame, dt float64) {
	m := v.m
	switch m.State {
	case component.VerticalCrouching:
		if v.cfg.Crouch.Mode != component.CrouchPlatform || m.DropShape != nil {
			return
		}
		platform := f.surfaces.Platform
		if !platform.Touching() || v.horizontalAxis() != 0 {
			m.CrouchHold = 0
			return
		}
		m.CrouchHold += dt
		if m.CrouchHold >= v.cfg.Crouch.DropHoldTime-timerEpsilon {
			v.startDrop(platform.Shape)
		}
	case component.VerticalClimbing:
		frozen := f.climbAxis == 0 && v.cfg.Climb.Hold
		if frozen == m.ClimbFrozen {
			return
		}
		m.ClimbFrozen = frozen
		v.ctx.LockY(frozen)
		v.notify.climbPause(frozen)
	case component.VerticalLedgeGrab:
		ledge := f.surfaces.Ledge
		if ledge.Touching() && m.AlignedLedge != ledge.Shape {
			v.alignToLedge(ledge)
		}
	}
}
