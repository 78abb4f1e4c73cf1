package component

import (
	"fmt"
	"strings"
)

// HorizontalState is the active state of the horizontal movement machine.
type HorizontalState uint8

const (
	HorizontalIdle HorizontalState = iota
	HorizontalWalking
	HorizontalSprinting
	HorizontalDashing
	HorizontalSliding
	HorizontalBraking
	horizontalStateCount
)

var horizontalNames = [...]string{
	HorizontalIdle:      "idle",
	HorizontalWalking:   "walking",
	HorizontalSprinting: "sprinting",
	HorizontalDashing:   "dashing",
	HorizontalSliding:   "sliding",
	HorizontalBraking:   "braking",
}

func (s HorizontalState) String() string {
	if s < horizontalStateCount {
		return horizontalNames[s]
	}
	return fmt.Sprintf("horizontal(%d)", uint8(s))
}

func (s *HorizontalState) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range horizontalNames {
		if n == name {
			*s = HorizontalState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown horizontal state %q", text)
}

// HorizontalStates lists every horizontal state in declaration order.
func HorizontalStates() []HorizontalState {
	out := make([]HorizontalState, 0, horizontalStateCount)
	for s := HorizontalIdle; s < horizontalStateCount; s++ {
		out = append(out, s)
	}
	return out
}

// VerticalState is the active state of the vertical movement machine.
type VerticalState uint8

const (
	VerticalIdle VerticalState = iota
	VerticalJumping
	VerticalAirJumping
	VerticalCrouching
	VerticalClimbing
	VerticalWallGrab
	VerticalWallJump
	VerticalLedgeGrab
	VerticalFalling
	verticalStateCount
)

var verticalNames = [...]string{
	VerticalIdle:       "idle",
	VerticalJumping:    "jumping",
	VerticalAirJumping: "air_jumping",
	VerticalCrouching:  "crouching",
	VerticalClimbing:   "climbing",
	VerticalWallGrab:   "wall_grab",
	VerticalWallJump:   "wall_jump",
	VerticalLedgeGrab:  "ledge_grab",
	VerticalFalling:    "falling",
}

func (s VerticalState) String() string {
	if s < verticalStateCount {
		return verticalNames[s]
	}
	return fmt.Sprintf("vertical(%d)", uint8(s))
}

func (s *VerticalState) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range verticalNames {
		if n == name {
			*s = VerticalState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown vertical state %q", text)
}

// VerticalStates lists every vertical state in declaration order.
func VerticalStates() []VerticalState {
	out := make([]VerticalState, 0, verticalStateCount)
	for s := VerticalIdle; s < verticalStateCount; s++ {
		out = append(out, s)
	}
	return out
}
