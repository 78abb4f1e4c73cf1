package component

import (
	"fmt"
	"strings"
)

// Key is a logical input key. Physical keys and gamepad buttons are mapped
// onto these by the input systems.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyJump
	KeySprint
	KeyDash
	KeySlide
	KeyCrouch
	KeyBrake
	KeyGrab
	KeyClimb
	keyCount
)

var keyNames = [...]string{
	KeyNone:   "none",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyJump:   "jump",
	KeySprint: "sprint",
	KeyDash:   "dash",
	KeySlide:  "slide",
	KeyCrouch: "crouch",
	KeyBrake:  "brake",
	KeyGrab:   "grab",
	KeyClimb:  "climb",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// ParseKey resolves a key name as written in action specs.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KeyNone, nil
	}
	for k, name := range keyNames {
		if name == s {
			return Key(k), nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", s)
}

func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KeySet is a bitset of logical keys.
type KeySet uint32

func (s KeySet) Has(k Key) bool {
	return k != KeyNone && s&(1<<k) != 0
}

func (s KeySet) With(k Key) KeySet {
	if k == KeyNone {
		return s
	}
	return s | 1<<k
}

func (s KeySet) Without(k Key) KeySet {
	return s &^ (1 << k)
}

// Input stores per-frame input state for an entity.
type Input struct {
	Held     KeySet
	Pressed  KeySet
	Released KeySet
}

// Next records the keys held this frame and derives the pressed/released edges from
// the previous frame's held set.
func (in *Input) Next(held KeySet) {
	prev := in.Held
	in.Held = held
	in.Pressed = held &^ prev
	in.Released = prev &^ held
}

func (in *Input) IsHeld(k Key) bool     { return in != nil && in.Held.Has(k) }
func (in *Input) IsPressed(k Key) bool  { return in != nil && in.Pressed.Has(k) }
func (in *Input) IsReleased(k Key) bool { return in != nil && in.Released.Has(k) }

// AxisX returns -1, 0 or 1 from the held left/right keys.
func (in *Input) AxisX() float64 {
	x := 0.0
	if in.IsHeld(KeyLeft) {
		x--
	}
	if in.IsHeld(KeyRight) {
		x++
	}
	return x
}

// AxisY returns -1, 0 or 1 from the held down/up keys.
func (in *Input) AxisY() float64 {
	y := 0.0
	if in.IsHeld(KeyDown) {
		y--
	}
	if in.IsHeld(KeyUp) {
		y++
	}
	return y
}

var InputComponent = NewComponent[Input]()
