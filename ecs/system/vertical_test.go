package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

func TestVerticalConstantHeightJump(t *testing.T) {
	cfg := component.ActionConfig{}
	cfg.Movement.Gravity = 10
	cfg.Movement.DefaultGravityScale = 3
	cfg.Jump = component.JumpAction{Mode: component.JumpConstantHeight, Height: 7}
	r := newRig(t, cfg)
	r.s.Grounded = true

	r.step(component.KeyJump)
	if r.v.State() != component.VerticalJumping {
		t.Fatalf("expected jumping, got %v", r.v.State())
	}
	want := math.Sqrt(2 * 7 * 10 * 3)
	if vy := r.velocity().Y; !approx(vy, want) {
		t.Fatalf("expected vy=%v, got %v", want, vy)
	}

	r.s.Grounded = false
	r.step()
	r.s.Grounded = true
	r.step(component.KeyJump)
	if r.v.State() != component.VerticalJumping {
		t.Fatalf("expected no landing while rising, got %v", r.v.State())
	}
	if vy := r.velocity().Y; !approx(vy, want) {
		t.Fatalf("expected a single impulse, vy=%v", vy)
	}

	r.setVelocity(0, -1)
	r.step()
	if r.v.State() != component.VerticalIdle {
		t.Fatalf("expected idle on landing, got %v", r.v.State())
	}
	if got := r.rec.countVertical(component.VerticalJumping); got != 1 {
		t.Fatalf("expected one jumping notification, got %d", got)
	}
}

func TestVerticalDerivativeJump(t *testing.T) {
	cases := []struct {
		name   string
		hold   bool
		wantVY float64
	}{
		{"held_reapplies_speed", true, 8},
		{"released_stops_boost", false, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := component.ActionConfig{}
			cfg.Movement.Gravity = 10
			cfg.Jump = component.JumpAction{
				Mode:               component.JumpDerivative,
				InitialSpeed:       8,
				MaxHoldTime:        0.1,
				AscendGravityScale: 2,
				FallGravityScale:   4,
			}
			r := newRig(t, cfg)
			r.s.Grounded = true

			r.step(component.KeyJump)
			if vy := r.velocity().Y; vy != 8 {
				t.Fatalf("expected initial speed, got %v", vy)
			}
			if r.gravity() != 2 {
				t.Fatalf("expected ascend gravity, got %v", r.gravity())
			}

			r.s.Grounded = false
			r.setVelocity(0, 5)
			if tc.hold {
				r.step(component.KeyJump)
			} else {
				r.step()
			}
			if vy := r.velocity().Y; vy != tc.wantVY {
				t.Fatalf("expected vy=%v, got %v", tc.wantVY, vy)
			}

			// Hold time is spent: no more boost.
			r.setVelocity(0, 5)
			r.step(component.KeyJump)
			if vy := r.velocity().Y; vy != 5 {
				t.Fatalf("expected boost to end, got %v", vy)
			}

			r.setVelocity(0, -1)
			r.step()
			if r.gravity() != 4 {
				t.Fatalf("expected fall gravity, got %v", r.gravity())
			}
		})
	}
}

func airJumpConfig() component.ActionConfig {
	cfg := component.ActionConfig{}
	cfg.Movement.Gravity = 10
	cfg.Jump = component.JumpAction{Mode: component.JumpConstantHeight, Height: 2}
	cfg.AirJump = component.AirJumpAction{
		JumpAction:    component.JumpAction{Mode: component.JumpConstantHeight, Height: 1},
		Enabled:       true,
		MaxExtraJumps: 2,
	}
	return cfg
}

func TestVerticalAirJumpCharges(t *testing.T) {
	r := newRig(t, airJumpConfig())
	r.s.Grounded = true

	frames := []struct {
		grounded bool
		held     []component.Key
		charges  int
	}{
		{true, []component.Key{component.KeyJump}, 2},
		{false, nil, 2},
		{false, []component.Key{component.KeyJump}, 1},
		{false, nil, 1},
		{false, []component.Key{component.KeyJump}, 0},
		{false, nil, 0},
		{false, []component.Key{component.KeyJump}, 0},
	}
	for i, f := range frames {
		r.s.Grounded = f.grounded
		r.step(f.held...)
		if got := r.v.Motion().Charges; got != f.charges {
			t.Fatalf("frame %d: expected %d charges, got %d", i, f.charges, got)
		}
	}
	if r.v.State() != component.VerticalAirJumping {
		t.Fatalf("expected air jumping, got %v", r.v.State())
	}
	// The second air jump re-entered AirJumping without a notification.
	if got := r.rec.countVertical(component.VerticalAirJumping); got != 1 {
		t.Fatalf("expected one air jump notification, got %d", got)
	}

	r.s.Grounded = true
	r.setVelocity(0, -1)
	r.step()
	if got := r.v.Motion().Charges; got != 2 {
		t.Fatalf("expected charges reset on landing, got %d", got)
	}
	if r.v.State() != component.VerticalIdle {
		t.Fatalf("expected idle on landing, got %v", r.v.State())
	}
}

func TestVerticalAirJumpMinInterval(t *testing.T) {
	cfg := airJumpConfig()
	cfg.AirJump.MinInterval = 0.3
	r := newRig(t, cfg)

	r.step(component.KeyJump)
	if got := r.v.Motion().Charges; got != 1 {
		t.Fatalf("expected first air jump, got %d charges", got)
	}
	r.step()
	r.step(component.KeyJump)
	if got := r.v.Motion().Charges; got != 1 {
		t.Fatalf("expected min interval to block, got %d charges", got)
	}
	for i := 0; i < 4; i++ {
		r.step()
	}
	r.step(component.KeyJump)
	if got := r.v.Motion().Charges; got != 0 {
		t.Fatalf("expected second air jump after interval, got %d charges", got)
	}
}

func wallContact(side int) component.Contact {
	return component.Contact{Side: side, Shape: staticShape(), Bounds: cp.BB{L: 10, B: 0, R: 20, T: 100}}
}

func TestVerticalWallGrabHold(t *testing.T) {
	cases := []struct {
		name    string
		release func(r *rig) []component.Key
	}{
		{"grab_released", func(r *rig) []component.Key { return nil }},
		{"contact_lost", func(r *rig) []component.Key {
			r.s.Wall = component.Contact{}
			return []component.Key{component.KeyGrab}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := component.ActionConfig{}
			cfg.Movement.FallGravityScale = 2.5
			cfg.Wall = component.WallAction{Enabled: true, Mode: component.GrabHold}
			r := newRig(t, cfg)
			r.s.Wall = wallContact(1)

			for i := 0; i < 4; i++ {
				r.setVelocity(4, -3)
				r.step(component.KeyGrab)
				if r.v.State() != component.VerticalWallGrab {
					t.Fatalf("frame %d: expected wall grab, got %v", i, r.v.State())
				}
				if v := r.velocity(); v != (cp.Vector{}) {
					t.Fatalf("frame %d: expected zero velocity, got %v", i, v)
				}
				if r.gravity() != 0 {
					t.Fatalf("frame %d: expected zero gravity, got %v", i, r.gravity())
				}
			}

			r.setVelocity(0, -3)
			r.step(tc.release(r)...)
			if r.v.State() != component.VerticalIdle {
				t.Fatalf("expected idle, got %v", r.v.State())
			}
			if r.gravity() != 2.5 {
				t.Fatalf("expected natural fall gravity, got %v", r.gravity())
			}
		})
	}
}

func TestVerticalWallGrabSlide(t *testing.T) {
	cfg := component.ActionConfig{}
	cfg.Wall = component.WallAction{Enabled: true, Mode: component.GrabSlide, SlideGravityScale: 0.2}
	r := newRig(t, cfg)
	r.s.Wall = wallContact(-1)

	r.setVelocity(0, -3)
	r.step(component.KeyGrab)
	if r.v.State() != component.VerticalWallGrab {
		t.Fatalf("expected wall grab, got %v", r.v.State())
	}
	if r.gravity() != 0.2 {
		t.Fatalf("expected slide gravity, got %v", r.gravity())
	}
}

func TestVerticalLedgeAlignsOncePerContact(t *testing.T) {
	cfg := component.ActionConfig{}
	cfg.Wall.Ledge = component.LedgeSettings{Enabled: true, Alignment: component.AlignTop}
	r := newRig(t, cfg)
	r.pb.Body.SetPosition(cp.Vector{X: 0, Y: 50})
	r.s.Ledge = component.Contact{Side: 1, Shape: staticShape(), Bounds: cp.BB{L: 10, B: 90, R: 30, T: 100}}

	r.setVelocity(4, -3)
	r.step(component.KeyGrab)
	if r.v.State() != component.VerticalLedgeGrab {
		t.Fatalf("expected ledge grab, got %v", r.v.State())
	}
	if top := r.ctx.Bounds().T; !approx(top, 100) {
		t.Fatalf("expected collider top aligned to 100, got %v", top)
	}
	if r.gravity() != 0 || r.velocity() != (cp.Vector{}) {
		t.Fatalf("expected ledge hang, gravity=%v v=%v", r.gravity(), r.velocity())
	}

	r.pb.Body.SetPosition(cp.Vector{X: 0, Y: 75})
	r.setVelocity(4, -3)
	r.step(component.KeyGrab)
	if top := r.ctx.Bounds().T; !approx(top, 95) {
		t.Fatalf("expected no re-alignment on the same ledge, got top %v", top)
	}
	if v := r.velocity(); v != (cp.Vector{}) {
		t.Fatalf("expected the hang to cancel drift, got %v", v)
	}

	r.s.Ledge = component.Contact{Side: 1, Shape: staticShape(), Bounds: cp.BB{L: 10, B: 110, R: 30, T: 120}}
	r.step(component.KeyGrab)
	if top := r.ctx.Bounds().T; !approx(top, 120) {
		t.Fatalf("expected alignment to the new ledge, got top %v", top)
	}
}

func TestVerticalLedgeAlignment(t *testing.T) {
	cases := []struct {
		name      string
		alignment component.LedgeAlignment
		check     func(body, ledge cp.BB) bool
	}{
		{"center", component.AlignCenter, func(b, l cp.BB) bool { return approx((b.B+b.T)/2, (l.B+l.T)/2) }},
		{"bottom", component.AlignBottom, func(b, l cp.BB) bool { return approx(b.B, l.B) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := component.ActionConfig{}
			cfg.Wall.Ledge = component.LedgeSettings{Enabled: true, Alignment: tc.alignment}
			r := newRig(t, cfg)
			ledge := cp.BB{L: 10, B: 90, R: 30, T: 100}
			r.s.Ledge = component.Contact{Side: 1, Shape: staticShape(), Bounds: ledge}

			r.step(component.KeyGrab)
			if !tc.check(r.ctx.Bounds(), ledge) {
				t.Fatalf("bounds %v not aligned to %v", r.ctx.Bounds(), ledge)
			}
		})
	}
}

func TestVerticalWallJump(t *testing.T) {
	cfg := component.ActionConfig{}
	cfg.Wall = component.WallAction{
		Enabled: true,
		Mode:    component.GrabHold,
		Jump: component.WallJumpSettings{
			Enabled:      true,
			Force:        10,
			Angle:        60,
			LockDuration: 0.2,
			UpdateFacing: true,
		},
	}
	r := newRig(t, cfg)
	r.s.Wall = wallContact(1)

	r.step(component.KeyGrab)
	r.step(component.KeyGrab, component.KeyJump)
	if r.v.State() != component.VerticalWallJump {
		t.Fatalf("expected wall jump, got %v", r.v.State())
	}
	v := r.velocity()
	if !approx(v.X, -5) || !approx(v.Y, 10*math.Sin(math.Pi/3)) {
		t.Fatalf("expected launch away from the wall, got %v", v)
	}
	if r.ctx.FacingRight() || r.h.Motion().Direction != -1 {
		t.Fatalf("expected facing updated to the jump direction")
	}

	for i := 0; i < 3; i++ {
		r.step(component.KeyGrab)
		if r.v.State() != component.VerticalWallJump {
			t.Fatalf("frame %d: locked wall was re-grabbed, state %v", i, r.v.State())
		}
	}
	r.step(component.KeyGrab)
	if r.v.State() != component.VerticalWallGrab {
		t.Fatalf("expected re-grab once the lock expired, got %v", r.v.State())
	}
}

func TestVerticalCrouchRestoresCollider(t *testing.T) {
	cfg := component.ActionConfig{}
	cfg.Crouch = component.CrouchAction{Enabled: true, HeightReduction: 50, LinearDrag: 4}
	r := newRig(t, cfg)
	r.s.Grounded = true
	original := r.col.Current

	r.step(component.KeyCrouch)
	if r.v.State() != component.VerticalCrouching {
		t.Fatalf("expected crouching, got %v", r.v.State())
	}
	if r.col.Current.Size.Y != 20 || r.pb.LinearDrag != 4 {
		t.Fatalf("expected reduced collider and drag, got %+v drag=%v", r.col.Current, r.pb.LinearDrag)
	}

	r.step()
	if r.v.State() != component.VerticalIdle {
		t.Fatalf("expected idle on release, got %v", r.v.State())
	}
	if r.col.Current != original || r.pb.LinearDrag != 0 {
		t.Fatalf("expected collider and drag restored, got %+v drag=%v", r.col.Current, r.pb.LinearDrag)
	}
}

func TestCrouchAndSlideReductionsOverlap(t *testing.T) {
	cfg := constantWalk()
	cfg.Crouch = component.CrouchAction{Enabled: true, HeightReduction: 50}
	cfg.Slide = component.SlideAction{
		Enabled:         true,
		Mode:            component.SlideRoll,
		Distance:        10,
		Speed:           100,
		HeightReduction: 25,
	}
	r := newRig(t, cfg)
	r.s.Grounded = true
	original := r.col.Current

	r.step(component.KeyRight)
	r.step(component.KeyRight, component.KeyCrouch, component.KeySlide)
	if r.h.State() != component.HorizontalSliding || r.v.State() != component.VerticalCrouching {
		t.Fatalf("expected slide and crouch, got %v/%v", r.h.State(), r.v.State())
	}
	if r.col.Current.Size.Y != 20 {
		t.Fatalf("expected the larger reduction, got %+v", r.col.Current)
	}

	for i := 0; i < 3; i++ {
		r.step(component.KeyRight, component.KeyCrouch)
	}
	if r.h.State() == component.HorizontalSliding {
		t.Fatalf("expected the roll to end")
	}
	if r.col.Current.Size.Y != 20 {
		t.Fatalf("slide exit must not undo the crouch, got %+v", r.col.Current)
	}

	r.step(component.KeyRight)
	if r.col.Current != original {
		t.Fatalf("expected original collider, got %+v", r.col.Current)
	}
}

func TestVerticalPlatformDropThrough(t *testing.T) {
	platformCfg := func() component.ActionConfig {
		cfg := constantWalk()
		cfg.Crouch = component.CrouchAction{
			Enabled:      true,
			Mode:         component.CrouchPlatform,
			DropHoldTime: 0.1,
			DropDuration: 0.2,
		}
		return cfg
	}

	t.Run("drops_then_restores", func(t *testing.T) {
		r := newRig(t, platformCfg())
		platform := staticShape()
		r.s.Grounded = true
		r.s.Ground = component.Contact{Shape: platform}
		r.s.Platform = component.Contact{Shape: platform}

		r.step(component.KeyCrouch)
		if r.pb.IgnoredShape != nil {
			t.Fatalf("dropped before the hold time")
		}
		r.step(component.KeyCrouch)
		if r.pb.IgnoredShape != platform {
			t.Fatalf("expected drop-through after the hold time")
		}

		*r.s = component.Surfaces{}
		for i := 0; i < 3; i++ {
			r.step(component.KeyCrouch)
			if r.pb.IgnoredShape != platform {
				t.Fatalf("frame %d: platform re-enabled too early", i)
			}
		}
		r.step(component.KeyCrouch)
		if r.pb.IgnoredShape != nil {
			t.Fatalf("expected platform collision re-enabled")
		}
	})

	t.Run("directional_input_blocks_drop", func(t *testing.T) {
		r := newRig(t, platformCfg())
		platform := staticShape()
		r.s.Grounded = true
		r.s.Platform = component.Contact{Shape: platform}

		for i := 0; i < 5; i++ {
			r.step(component.KeyCrouch, component.KeyRight)
		}
		if r.pb.IgnoredShape != nil {
			t.Fatalf("expected no drop while moving")
		}
	})
}

func climbConfig(hold bool) component.ActionConfig {
	cfg := component.ActionConfig{}
	cfg.Climb = component.ClimbAction{Enabled: true, Speed: 3, Hold: hold}
	return cfg
}

func TestVerticalClimbRestoresGravity(t *testing.T) {
	r := newRig(t, climbConfig(false))
	r.s.Grounded = true
	r.s.Climbable = component.Contact{Shape: staticShape()}

	r.step(component.KeyUp)
	if r.v.State() != component.VerticalClimbing {
		t.Fatalf("expected climbing, got %v", r.v.State())
	}
	if r.gravity() != 0 || r.velocity().Y != 3 {
		t.Fatalf("expected input-driven climb, gravity=%v vy=%v", r.gravity(), r.velocity().Y)
	}

	r.step()
	if r.v.State() != component.VerticalIdle {
		t.Fatalf("expected climb to stop on release, got %v", r.v.State())
	}
	if r.gravity() != 1 {
		t.Fatalf("expected default gravity on exit, got %v", r.gravity())
	}
}

func TestVerticalClimbFreeze(t *testing.T) {
	r := newRig(t, climbConfig(true))
	r.s.Climbable = component.Contact{Shape: staticShape()}

	r.step(component.KeyUp)
	r.step()
	if r.v.State() != component.VerticalClimbing || !r.pb.LockY {
		t.Fatalf("expected frozen climb, state=%v lock=%v", r.v.State(), r.pb.LockY)
	}
	if r.velocity().Y != 0 {
		t.Fatalf("expected no vertical motion while frozen, got %v", r.velocity().Y)
	}

	r.step(component.KeyUp)
	if r.pb.LockY {
		t.Fatalf("expected unlock when climbing resumes")
	}
	r.step()
	r.s.Climbable = component.Contact{}
	r.step()
	if r.v.State() != component.VerticalIdle || r.pb.LockY {
		t.Fatalf("expected release on contact loss, state=%v lock=%v", r.v.State(), r.pb.LockY)
	}

	want := []bool{true, false, true, false}
	if len(r.rec.pauses) != len(want) {
		t.Fatalf("expected pauses %v, got %v", want, r.rec.pauses)
	}
	for i := range want {
		if r.rec.pauses[i] != want[i] {
			t.Fatalf("expected pauses %v, got %v", want, r.rec.pauses)
		}
	}
}

func TestVerticalAutoClimb(t *testing.T) {
	cases := []struct {
		name     string
		auto     component.AutoMode
		grounded bool
		wantVY   float64
	}{
		{"up_from_ground", component.AutoUp, true, 3},
		{"down_from_air", component.AutoDown, false, -3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := climbConfig(false)
			cfg.Climb.Binding.Auto = tc.auto
			r := newRig(t, cfg)
			r.s.Grounded = tc.grounded
			r.s.Climbable = component.Contact{Shape: staticShape()}

			r.step()
			if r.v.State() != component.VerticalClimbing {
				t.Fatalf("expected climbing without input, got %v", r.v.State())
			}
			if vy := r.velocity().Y; vy != tc.wantVY {
				t.Fatalf("expected vy=%v, got %v", tc.wantVY, vy)
			}

			// Held keys do not override the automatic direction.
			r.step(component.KeyDown, component.KeyUp)
			if vy := r.velocity().Y; vy != tc.wantVY {
				t.Fatalf("expected automatic direction to hold, got %v", vy)
			}
		})
	}

	t.Run("down_stops_on_ground", func(t *testing.T) {
		cfg := climbConfig(false)
		cfg.Climb.Binding.Auto = component.AutoDown
		r := newRig(t, cfg)
		r.s.Climbable = component.Contact{Shape: staticShape()}

		r.step()
		r.s.Grounded = true
		r.step()
		if r.v.State() != component.VerticalIdle {
			t.Fatalf("expected idle on reaching the ground, got %v", r.v.State())
		}
		// Grounded with a downward climb never re-enters.
		r.step()
		if r.v.State() != component.VerticalIdle {
			t.Fatalf("expected to stay idle, got %v", r.v.State())
		}
	})
}

func TestVerticalAutoJump(t *testing.T) {
	cfg := component.ActionConfig{}
	cfg.Movement.Gravity = 10
	cfg.Jump = component.JumpAction{
		Mode:    component.JumpConstantHeight,
		Height:  2,
		Binding: component.Binding{Auto: component.AutoAlways},
	}
	r := newRig(t, cfg)

	r.step()
	if r.v.State() != component.VerticalIdle {
		t.Fatalf("expected no jump while airborne, got %v", r.v.State())
	}

	r.s.Grounded = true
	r.step()
	if r.v.State() != component.VerticalJumping {
		t.Fatalf("expected jump without input, got %v", r.v.State())
	}
	if vy := r.velocity().Y; !approx(vy, math.Sqrt(2*2*10)) {
		t.Fatalf("expected jump impulse, got %v", vy)
	}

	r.setVelocity(0, -1)
	r.step()
	if r.v.State() != component.VerticalIdle {
		t.Fatalf("expected landing, got %v", r.v.State())
	}
	r.step()
	if r.v.State() != component.VerticalJumping {
		t.Fatalf("expected the jump to repeat on the ground, got %v", r.v.State())
	}
	if got := r.rec.countVertical(component.VerticalJumping); got != 2 {
		t.Fatalf("expected two jumping notifications, got %d", got)
	}
}

func TestVerticalNoBodyIsNoop(t *testing.T) {
	cfg := component.ActionConfig{}
	cfg.Crouch = component.CrouchAction{Enabled: true}
	r := newRig(t, cfg)
	r.pb.Body = nil
	r.s.Grounded = true

	for i := 0; i < 3; i++ {
		r.step(component.KeyJump, component.KeyCrouch)
	}
	if r.v.State() != component.VerticalIdle {
		t.Fatalf("expected idle without a body, got %v", r.v.State())
	}
	if len(r.rec.vertical) != 0 || r.v.Motion().StateTime != 0 {
		t.Fatalf("expected no notifications or timer progress, got %v time=%v", r.rec.vertical, r.v.Motion().StateTime)
	}
}

func TestVerticalFallingGrace(t *testing.T) {
	fallCfg := func() component.ActionConfig {
		cfg := component.ActionConfig{}
		cfg.Movement.FallGravityScale = 2
		cfg.Fall = component.FallAction{Enabled: true, Threshold: 0.5, GraceDelay: 0.15}
		return cfg
	}

	cases := []struct {
		name string
		vys  []float64
		// fallAt is the frame that enters Falling, -1 for never.
		fallAt int
	}{
		{"accumulates", []float64{-2, -2, -2}, 2},
		{"resets_when_condition_breaks", []float64{-2, -2, 0, -2, -2, -2}, 5},
		{"slow_descent_never_falls", []float64{-0.2, -0.2, -0.2, -0.2}, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t, fallCfg())
			got := -1
			for i, vy := range tc.vys {
				r.setVelocity(0, vy)
				r.step()
				if got < 0 && r.v.State() == component.VerticalFalling {
					got = i
				}
			}
			if got != tc.fallAt {
				t.Fatalf("expected falling at frame %d, got %d", tc.fallAt, got)
			}
			if got >= 0 && r.gravity() != 2 {
				t.Fatalf("expected natural fall gravity, got %v", r.gravity())
			}
		})
	}
}
