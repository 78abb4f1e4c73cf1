package system

import (
	"math"

	"github.com/milk9111/sidescroller-movement/common"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

const defaultIdleEpsilon = 0.1

type horizontalTransition struct {
	name string
	to   component.HorizontalState
	when func(*HorizontalMachine, *hFrame) bool
}

var (
	hDash   = horizontalTransition{"dash", component.HorizontalDashing, (*HorizontalMachine).dashTriggered}
	hSprint = horizontalTransition{"sprint", component.HorizontalSprinting, (*HorizontalMachine).sprintTriggered}
	hSlide  = horizontalTransition{"slide", component.HorizontalSliding, (*HorizontalMachine).slideTriggered}
	hBrake  = horizontalTransition{"brake", component.HorizontalBraking, (*HorizontalMachine).brakeTriggered}
	hIdle   = horizontalTransition{"idle", component.HorizontalIdle, (*HorizontalMachine).settled}
	hWalk   = horizontalTransition{"walk", component.HorizontalWalking, (*HorizontalMachine).moving}
)

// horizontalTransitions lists, per state, the transitions checked each think
// pass in priority order. The first whose predicate holds is taken.
var horizontalTransitions = map[component.HorizontalState][]horizontalTransition{
	component.HorizontalIdle: {
		hDash,
		hSprint,
		hSlide,
		hWalk,
	},
	component.HorizontalWalking: {
		hDash,
		hSprint,
		{"auto_sprint", component.HorizontalSprinting, (*HorizontalMachine).autoSprint},
		hSlide,
		hBrake,
		hIdle,
	},
	component.HorizontalSprinting: {
		hDash,
		hSlide,
		hBrake,
		hIdle,
		{"sprint_released", component.HorizontalWalking, (*HorizontalMachine).sprintReleased},
		{"auto_walk", component.HorizontalWalking, (*HorizontalMachine).autoWalk},
	},
	component.HorizontalDashing: {
		{"dash_over", component.HorizontalWalking, (*HorizontalMachine).dashOver},
	},
	component.HorizontalSliding: {
		{"slide_over", component.HorizontalWalking, (*HorizontalMachine).slideOver},
	},
	component.HorizontalBraking: {
		hDash,
		{"stopped", component.HorizontalIdle, (*HorizontalMachine).brakeStoppedStill},
		{"brake_released", component.HorizontalWalking, (*HorizontalMachine).brakeReleased},
	},
}

func (h *HorizontalMachine) dashTriggered(f *hFrame) bool {
	d := h.cfg.Dash
	if !d.Enabled || !timerDone(h.m.DashCooldown) {
		return false
	}
	if d.DoubleTap {
		if !f.dashTap {
			return false
		}
	} else if !f.in.IsPressed(keyOr(d.Binding.Key, component.KeyDash)) {
		return false
	}
	// Last so the cost is only paid when the dash fires.
	return h.payDashCost()
}

func (h *HorizontalMachine) sprintTriggered(f *hFrame) bool {
	sp := h.cfg.Sprint
	if !sp.Enabled || !timerDone(h.m.SprintCooldown) || f.axis == 0 || !h.canSteer {
		return false
	}
	if sp.DoubleTap {
		return f.sprintTap
	}
	return h.sprintBinding().Held(f.in)
}

func (h *HorizontalMachine) autoSprint(f *hFrame) bool {
	w := h.cfg.Walk
	return h.cfg.Sprint.Enabled && w.Mode != component.MotionConstantSpeed && w.AutoSprint &&
		w.SprintThreshold > 0 && f.axis != 0 && h.speed() >= w.SprintThreshold
}

func (h *HorizontalMachine) autoWalk(f *hFrame) bool {
	sp := h.cfg.Sprint
	return sp.Mode != component.MotionConstantSpeed && sp.AutoWalk && h.speed() < sp.WalkThreshold
}

func (h *HorizontalMachine) sprintReleased(f *hFrame) bool {
	if f.axis == 0 {
		return true
	}
	if h.cfg.Sprint.DoubleTap || h.cfg.Walk.AutoSprint {
		return false
	}
	return !h.sprintBinding().Held(f.in)
}

func (h *HorizontalMachine) sprintBinding() component.Binding {
	b := h.cfg.Sprint.Binding
	b.Key = keyOr(b.Key, component.KeySprint)
	return b
}

func (h *HorizontalMachine) slideTriggered(f *hFrame) bool {
	sl := h.cfg.Slide
	if !sl.Enabled || !f.surfaces.Grounded || !timerDone(h.m.SlideCooldown) {
		return false
	}
	if !f.in.IsPressed(keyOr(sl.Binding.Key, component.KeySlide)) {
		return false
	}
	return h.speed() >= sl.MinSpeed
}

func (h *HorizontalMachine) brakeActive(f *hFrame) bool {
	w := h.cfg.Walk
	if w.Mode != component.MotionVehicle {
		return false
	}
	if f.in.IsHeld(keyOr(w.Brake.Key, component.KeyBrake)) {
		return true
	}
	vx := h.ctx.Velocity().X
	return w.AutoBrake && f.axis != 0 && vx != 0 && f.axis != common.Sign(vx)
}

func (h *HorizontalMachine) brakeTriggered(f *hFrame) bool {
	return f.surfaces.Grounded && h.speed() >= h.idleEpsilon() && h.brakeActive(f)
}

func (h *HorizontalMachine) brakeStoppedStill(f *hFrame) bool {
	return f.axis == 0 && h.speed() < h.idleEpsilon()
}

func (h *HorizontalMachine) brakeReleased(f *hFrame) bool {
	return !h.brakeActive(f) || h.speed() < h.idleEpsilon()
}

func (h *HorizontalMachine) settled(f *hFrame) bool {
	return f.axis == 0 && h.speed() < h.idleEpsilon()
}

func (h *HorizontalMachine) moving(f *hFrame) bool {
	return f.axis != 0 && h.canSteer
}

func (h *HorizontalMachine) dashOver(*hFrame) bool {
	return h.m.StateTime >= h.m.DashDuration-timerEpsilon
}

func (h *HorizontalMachine) slideOver(f *hFrame) bool {
	sl := h.cfg.Slide
	if !f.surfaces.Grounded {
		return true
	}
	if sl.Mode == component.SlideRoll {
		return h.m.StateTime >= h.m.SlideDuration-timerEpsilon
	}
	stop := sl.StopSpeed
	if stop <= 0 {
		stop = h.idleEpsilon()
	}
	return h.m.SlideSpeed < stop || !f.in.IsHeld(keyOr(sl.Binding.Key, component.KeySlide))
}

func (h *HorizontalMachine) enter(state component.HorizontalState, f *hFrame) {
	m := h.m
	cfg := h.cfg
	switch state {
	case component.HorizontalIdle:
		// Snap the residue only; momentum is never discarded on entry.
		if h.speed() < h.idleEpsilon() {
			h.ctx.SetVelocityX(0)
		}
	case component.HorizontalSprinting:
		m.SprintCooldown = cfg.Sprint.Cooldown
		h.consumeTap(f.tapDir)
	case component.HorizontalDashing:
		m.DashCooldown = cfg.Dash.Cooldown
		m.DashDuration = cfg.Dash.Duration()
		m.DashDirection = h.dashDirection(f)
		h.consumeTap(f.tapDir)
	case component.HorizontalSliding:
		sl := cfg.Slide
		vx := h.ctx.Velocity().X
		if vx != 0 {
			m.Direction = common.Sign(vx)
		}
		m.SlideCooldown = sl.Cooldown
		if sl.Mode == component.SlideRoll {
			m.SlideDuration = sl.RollDuration()
			m.SlideSpeed = sl.Speed
		} else {
			mult := sl.SpeedMultiplier
			if mult <= 0 {
				mult = 1
			}
			m.SlideSpeed = math.Abs(vx) * mult
		}
		m.SlideReduced = true
		h.ctx.setReduction(reductionSlide, sl.HeightReduction)
	}
}

func (h *HorizontalMachine) exit(state, next component.HorizontalState) {
	if state == component.HorizontalSliding && next != component.HorizontalSliding {
		h.m.SlideReduced = false
		h.ctx.setReduction(reductionSlide, 0)
	}
}

// dashDirection prefers the automatic direction, then a double-tapped
// direction, then held input, then facing.
func (h *HorizontalMachine) dashDirection(f *hFrame) float64 {
	switch h.cfg.Dash.Binding.Auto {
	case component.AutoLeft:
		return -1
	case component.AutoRight:
		return 1
	}
	if f.tapDir != 0 && h.cfg.Dash.DoubleTap {
		return f.tapDir
	}
	if f.axis != 0 {
		return f.axis
	}
	if h.ctx.FacingRight() {
		return 1
	}
	return -1
}
