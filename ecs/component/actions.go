package component

import (
	"errors"
	"fmt"
	"strings"
)

// MotionMode selects the horizontal motion algorithm for walk and sprint.
type MotionMode uint8

const (
	MotionConstantSpeed MotionMode = iota
	MotionAcceleration
	MotionVehicle
)

// SlideMode selects the slide style.
type SlideMode uint8

const (
	SlideRoll SlideMode = iota
	SlideLong
)

// JumpMode selects the jump height model.
type JumpMode uint8

const (
	JumpConstantHeight JumpMode = iota
	JumpDerivative
)

// CrouchMode selects plain crouching or crouching with platform drop-through.
type CrouchMode uint8

const (
	CrouchNormal CrouchMode = iota
	CrouchPlatform
)

// GrabMode selects how gravity behaves while attached to a wall or ledge.
type GrabMode uint8

const (
	GrabHold GrabMode = iota
	GrabSlide
)

// LedgeAlignment selects which collider bound is aligned to the ledge.
type LedgeAlignment uint8

const (
	AlignTop LedgeAlignment = iota
	AlignCenter
	AlignBottom
)

// AutoMode substitutes for held-key state on a binding.
type AutoMode uint8

const (
	AutoNone AutoMode = iota
	AutoLeft
	AutoRight
	AutoUp
	AutoDown
	AutoAlways
)

func parseEnum(kind string, text []byte, names []string) (uint8, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if s == "" {
		return 0, nil
	}
	for i, n := range names {
		if n == s {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (want one of %s)", kind, s, strings.Join(names, ", "))
}

var (
	motionModeNames = []string{"constant_speed", "acceleration", "vehicle"}
	slideModeNames  = []string{"roll", "long"}
	jumpModeNames   = []string{"constant_height", "derivative"}
	crouchModeNames = []string{"normal", "platform"}
	grabModeNames   = []string{"hold", "slide"}
	alignmentNames  = []string{"top", "center", "bottom"}
	autoModeNames   = []string{"none", "left", "right", "up", "down", "always"}
)

func (m *MotionMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("motion mode", text, motionModeNames)
	*m = MotionMode(v)
	return err
}

func (m *SlideMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("slide mode", text, slideModeNames)
	*m = SlideMode(v)
	return err
}

func (m *JumpMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("jump mode", text, jumpModeNames)
	*m = JumpMode(v)
	return err
}

func (m *CrouchMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("crouch mode", text, crouchModeNames)
	*m = CrouchMode(v)
	return err
}

func (m *GrabMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("grab mode", text, grabModeNames)
	*m = GrabMode(v)
	return err
}

func (a *LedgeAlignment) UnmarshalText(text []byte) error {
	v, err := parseEnum("ledge alignment", text, alignmentNames)
	*a = LedgeAlignment(v)
	return err
}

func (a *AutoMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("auto mode", text, autoModeNames)
	*a = AutoMode(v)
	return err
}

func (m MotionMode) String() string     { return motionModeNames[m] }
func (m SlideMode) String() string      { return slideModeNames[m] }
func (m JumpMode) String() string       { return jumpModeNames[m] }
func (m CrouchMode) String() string     { return crouchModeNames[m] }
func (m GrabMode) String() string       { return grabModeNames[m] }
func (a LedgeAlignment) String() string { return alignmentNames[a] }
func (a AutoMode) String() string       { return autoModeNames[a] }

// Binding ties an action to a key, or to an automatic override that stands
// in for held-key state.
type Binding struct {
	Key  Key      `yaml:"key"`
	Auto AutoMode `yaml:"auto"`
}

// Held reports whether the binding is active this frame.
func (b Binding) Held(in *Input) bool {
	if b.Auto != AutoNone {
		return true
	}
	return in.IsHeld(b.Key)
}

// Pressed reports whether the binding became active this frame. Automatic
// bindings count as pressed every frame.
func (b Binding) Pressed(in *Input) bool {
	if b.Auto != AutoNone {
		return true
	}
	return in.IsPressed(b.Key)
}

// MovementSettings are shared by both axis machines.
type MovementSettings struct {
	// Gravity is the world gravity magnitude in units/s².
	Gravity             float64 `yaml:"gravity"`
	DefaultGravityScale float64 `yaml:"default_gravity_scale"`
	// FallGravityScale is the natural-fall override used in Idle/Falling.
	FallGravityScale   float64 `yaml:"fall_gravity_scale"`
	DefaultFacingRight bool    `yaml:"default_facing_right"`
	AllowAirMovement   bool    `yaml:"allow_air_movement"`
	IdleEpsilon        float64 `yaml:"idle_epsilon"`
	FixedStep          float64 `yaml:"fixed_step"`
	Left               Key     `yaml:"left"`
	Right              Key     `yaml:"right"`
	Up                 Key     `yaml:"up"`
	Down               Key     `yaml:"down"`
}

// SensorSettings configure the surface probes.
type SensorSettings struct {
	GroundProbeRadius   float64 `yaml:"ground_probe_radius"`
	GroundProbeDistance float64 `yaml:"ground_probe_distance"`
	// Skin expands the collider bounds for wall/ledge/platform overlap tests.
	Skin       float64 `yaml:"skin"`
	GroundMask uint    `yaml:"ground_mask"`
}

type WalkAction struct {
	Mode              MotionMode `yaml:"mode"`
	Speed             float64    `yaml:"speed"`
	Acceleration      float64    `yaml:"acceleration"`
	Deceleration      float64    `yaml:"deceleration"`
	MaxSpeed          float64    `yaml:"max_speed"`
	SprintThreshold   float64    `yaml:"sprint_threshold"`
	AutoSprint        bool       `yaml:"auto_sprint"`
	BrakeDeceleration float64    `yaml:"brake_deceleration"`
	AutoBrake         bool       `yaml:"auto_brake"`
	Brake             Binding    `yaml:"brake"`
}

type SprintAction struct {
	Enabled         bool       `yaml:"enabled"`
	Mode            MotionMode `yaml:"mode"`
	Speed           float64    `yaml:"speed"`
	Acceleration    float64    `yaml:"acceleration"`
	Deceleration    float64    `yaml:"deceleration"`
	MaxSpeed        float64    `yaml:"max_speed"`
	WalkThreshold   float64    `yaml:"walk_threshold"`
	AutoWalk        bool       `yaml:"auto_walk"`
	Cooldown        float64    `yaml:"cooldown"`
	DoubleTap       bool       `yaml:"double_tap"`
	DoubleTapWindow float64    `yaml:"double_tap_window"`
	Binding         Binding    `yaml:"binding"`
}

type DashAction struct {
	Enabled         bool    `yaml:"enabled"`
	Distance        float64 `yaml:"distance"`
	Speed           float64 `yaml:"speed"`
	Cooldown        float64 `yaml:"cooldown"`
	DoubleTap       bool    `yaml:"double_tap"`
	DoubleTapWindow float64 `yaml:"double_tap_window"`
	// Binding.Auto left/right forces the dash direction.
	Binding Binding `yaml:"binding"`
	// Resource names a sibling container module the dash draws from.
	Resource     string  `yaml:"resource"`
	ResourceCost float64 `yaml:"resource_cost"`
}

// Duration is the dash time derived from distance and speed.
func (d DashAction) Duration() float64 {
	if d.Speed <= 0 {
		return 0
	}
	return d.Distance / d.Speed
}

type SlideAction struct {
	Enabled bool      `yaml:"enabled"`
	Mode    SlideMode `yaml:"mode"`
	// Roll
	Distance float64 `yaml:"distance"`
	Speed    float64 `yaml:"speed"`
	Cooldown float64 `yaml:"cooldown"`
	// Long
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	Decay           float64 `yaml:"decay"`
	StopSpeed       float64 `yaml:"stop_speed"`
	// MinSpeed is the horizontal speed needed to start a slide.
	MinSpeed float64 `yaml:"min_speed"`
	// HeightReduction is the percentage of the original collider height
	// removed while sliding.
	HeightReduction float64 `yaml:"height_reduction"`
	Binding         Binding `yaml:"binding"`
}

func (s SlideAction) RollDuration() float64 {
	if s.Speed <= 0 {
		return 0
	}
	return s.Distance / s.Speed
}

type JumpAction struct {
	Mode JumpMode `yaml:"mode"`
	// Constant height
	Height float64 `yaml:"height"`
	// Derivative
	InitialSpeed float64 `yaml:"initial_speed"`
	MaxHoldTime  float64 `yaml:"max_hold_time"`
	// Gravity scales applied after take-off while rising and falling.
	AscendGravityScale float64 `yaml:"ascend_gravity_scale"`
	FallGravityScale   float64 `yaml:"fall_gravity_scale"`
	Binding            Binding `yaml:"binding"`
}

type AirJumpAction struct {
	JumpAction    `yaml:",inline"`
	Enabled       bool    `yaml:"enabled"`
	MaxExtraJumps int     `yaml:"max_extra_jumps"`
	MinInterval   float64 `yaml:"min_interval"`
}

type CrouchAction struct {
	Enabled         bool       `yaml:"enabled"`
	Mode            CrouchMode `yaml:"mode"`
	HeightReduction float64    `yaml:"height_reduction"`
	LinearDrag      float64    `yaml:"linear_drag"`
	DropHoldTime    float64    `yaml:"drop_hold_time"`
	DropDuration    float64    `yaml:"drop_duration"`
	Binding         Binding    `yaml:"binding"`
}

type ClimbAction struct {
	Enabled       bool    `yaml:"enabled"`
	Speed         float64 `yaml:"speed"`
	ProbeDistance float64 `yaml:"probe_distance"`
	// Hold keeps the body attached and frozen when input is released.
	Hold bool `yaml:"hold"`
	// Binding.Auto up/down drives the climb without input.
	Binding Binding `yaml:"binding"`
}

type WallJumpSettings struct {
	Enabled bool    `yaml:"enabled"`
	Force   float64 `yaml:"force"`
	// Angle in degrees above the horizontal.
	Angle        float64 `yaml:"angle"`
	LockDuration float64 `yaml:"lock_duration"`
	UpdateFacing bool    `yaml:"update_facing"`
	Binding      Binding `yaml:"binding"`
}

type LedgeSettings struct {
	Enabled   bool           `yaml:"enabled"`
	Alignment LedgeAlignment `yaml:"alignment"`
}

type WallAction struct {
	Enabled           bool             `yaml:"enabled"`
	Mode              GrabMode         `yaml:"mode"`
	SlideGravityScale float64          `yaml:"slide_gravity_scale"`
	Binding           Binding          `yaml:"binding"`
	Jump              WallJumpSettings `yaml:"jump"`
	Ledge             LedgeSettings    `yaml:"ledge"`
}

type FallAction struct {
	Enabled    bool    `yaml:"enabled"`
	Threshold  float64 `yaml:"threshold"`
	GraceDelay float64 `yaml:"grace_delay"`
}

// ActionConfig is the authored movement configuration of one character.
// Machines only read it. A hot reload overwrites it between frames.
type ActionConfig struct {
	// Source is the prefab file the config came from, empty when inline.
	Source string `yaml:"-"`

	Movement MovementSettings `yaml:"movement"`
	Sensor   SensorSettings   `yaml:"sensor"`
	Walk     WalkAction       `yaml:"walk"`
	Sprint   SprintAction     `yaml:"sprint"`
	Dash     DashAction       `yaml:"dash"`
	Slide    SlideAction      `yaml:"slide"`
	Jump     JumpAction       `yaml:"jump"`
	AirJump  AirJumpAction    `yaml:"air_jump"`
	Crouch   CrouchAction     `yaml:"crouch"`
	Climb    ClimbAction      `yaml:"climb"`
	Wall     WallAction       `yaml:"wall"`
	Fall     FallAction       `yaml:"fall"`
}

// Validate reports values that cannot be simulated. Zero values are valid
// and mean "disabled" or "always available".
func (c *ActionConfig) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative (got %v)", name, v))
		}
	}
	percent := func(name string, v float64) {
		if v < 0 || v >= 100 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 100) (got %v)", name, v))
		}
	}

	check("movement.gravity", c.Movement.Gravity)
	check("movement.default_gravity_scale", c.Movement.DefaultGravityScale)
	check("movement.fall_gravity_scale", c.Movement.FallGravityScale)
	check("movement.idle_epsilon", c.Movement.IdleEpsilon)
	check("movement.fixed_step", c.Movement.FixedStep)
	check("walk.speed", c.Walk.Speed)
	check("walk.max_speed", c.Walk.MaxSpeed)
	check("sprint.cooldown", c.Sprint.Cooldown)
	check("sprint.double_tap_window", c.Sprint.DoubleTapWindow)
	check("dash.cooldown", c.Dash.Cooldown)
	check("dash.double_tap_window", c.Dash.DoubleTapWindow)
	check("slide.cooldown", c.Slide.Cooldown)
	check("slide.decay", c.Slide.Decay)
	percent("slide.height_reduction", c.Slide.HeightReduction)
	check("jump.height", c.Jump.Height)
	check("jump.max_hold_time", c.Jump.MaxHoldTime)
	check("air_jump.min_interval", c.AirJump.MinInterval)
	if c.AirJump.MaxExtraJumps < 0 {
		errs = append(errs, fmt.Errorf("air_jump.max_extra_jumps must not be negative (got %d)", c.AirJump.MaxExtraJumps))
	}
	percent("crouch.height_reduction", c.Crouch.HeightReduction)
	check("crouch.drop_hold_time", c.Crouch.DropHoldTime)
	check("crouch.drop_duration", c.Crouch.DropDuration)
	check("climb.speed", c.Climb.Speed)
	check("wall.jump.lock_duration", c.Wall.Jump.LockDuration)
	check("fall.grace_delay", c.Fall.GraceDelay)

	return errors.Join(errs...)
}

var ActionConfigComponent = NewComponent[ActionConfig]()
