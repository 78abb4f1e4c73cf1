package component

import "github.com/jakecoffman/cp"

// HorizontalMotion is the persistent data of the horizontal movement machine.
type HorizontalMotion struct {
	State HorizontalState
	// Clock is the total simulated time seen by the machine; tap timestamps
	// are measured against it.
	Clock float64
	// StateTime is reset on every state entry.
	StateTime float64
	// Direction of travel, -1 or 1.
	Direction float64

	// Cooldowns count down and survive state re-entry.
	DashCooldown   float64
	SprintCooldown float64
	SlideCooldown  float64

	DashDirection float64
	DashDuration  float64
	SlideDuration float64
	SlideSpeed    float64
	// SlideReduced is set while the slide owns a reduced collider.
	SlideReduced bool

	// LastTap holds the time of the last unconsumed press of left (0) and
	// right (1). Negative means no pending tap.
	LastTap [2]float64
}

var HorizontalMotionComponent = NewComponent[HorizontalMotion]()

// VerticalMotion is the persistent data of the vertical movement machine.
type VerticalMotion struct {
	State     VerticalState
	StateTime float64

	// Charges is the number of air jumps left.
	Charges int
	// AirJumpCooldown counts down the minimum interval between air jumps.
	AirJumpCooldown float64
	// JumpHold is the remaining time the derivative jump keeps re-applying
	// its speed while the key is held.
	JumpHold float64
	// JumpBoosting is true while a derivative jump is still being held.
	JumpBoosting bool

	// FallGrace accumulates ungrounded descending time before Falling.
	FallGrace float64

	CrouchReduced bool
	// CrouchHold accumulates time crouching on a platform.
	CrouchHold float64
	// DropTimer counts down while DropShape is ignored by collisions.
	DropTimer float64
	DropShape *cp.Shape

	// WallJumpLock counts down while LockedShape may not be grabbed.
	WallJumpLock float64
	LockedShape  *cp.Shape

	ClimbFrozen bool
	// AlignedLedge is the ledge shape the body was last aligned to.
	AlignedLedge *cp.Shape

	WasGrounded bool
}

var VerticalMotionComponent = NewComponent[VerticalMotion]()
