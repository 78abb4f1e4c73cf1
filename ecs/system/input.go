package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

const stickDeadzone = 0.2

// DefaultKeyboard maps physical keys onto logical keys.
var DefaultKeyboard = map[ebiten.Key]component.Key{
	ebiten.KeyA:          component.KeyLeft,
	ebiten.KeyArrowLeft:  component.KeyLeft,
	ebiten.KeyD:          component.KeyRight,
	ebiten.KeyArrowRight: component.KeyRight,
	ebiten.KeyW:          component.KeyUp,
	ebiten.KeyArrowUp:    component.KeyUp,
	ebiten.KeyS:          component.KeyDown,
	ebiten.KeyArrowDown:  component.KeyDown,
	ebiten.KeySpace:      component.KeyJump,
	ebiten.KeyShiftLeft:  component.KeySprint,
	ebiten.KeyJ:          component.KeyDash,
	ebiten.KeyK:          component.KeySlide,
	ebiten.KeyC:          component.KeyCrouch,
	ebiten.KeyB:          component.KeyBrake,
	ebiten.KeyL:          component.KeyGrab,
}

// DefaultGamepad maps standard gamepad buttons onto logical keys.
var DefaultGamepad = map[ebiten.StandardGamepadButton]component.Key{
	ebiten.StandardGamepadButtonRightBottom:     component.KeyJump,
	ebiten.StandardGamepadButtonRightLeft:       component.KeyDash,
	ebiten.StandardGamepadButtonRightRight:      component.KeySlide,
	ebiten.StandardGamepadButtonRightTop:        component.KeyCrouch,
	ebiten.StandardGamepadButtonFrontBottomLeft: component.KeyBrake,
	ebiten.StandardGamepadButtonFrontTopLeft:    component.KeySprint,
	ebiten.StandardGamepadButtonFrontTopRight:   component.KeyGrab,
	ebiten.StandardGamepadButtonLeftLeft:        component.KeyLeft,
	ebiten.StandardGamepadButtonLeftRight:       component.KeyRight,
	ebiten.StandardGamepadButtonLeftTop:         component.KeyUp,
	ebiten.StandardGamepadButtonLeftBottom:      component.KeyDown,
}

// InputSystem samples keyboard and the first gamepad into the Input of the
// player entity. Entities with scripted input are left to the script system.
type InputSystem struct {
	Keyboard map[ebiten.Key]component.Key
	Gamepad  map[ebiten.StandardGamepadButton]component.Key
}

func NewInputSystem() *InputSystem {
	return &InputSystem{Keyboard: DefaultKeyboard, Gamepad: DefaultGamepad}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	held := i.sample()
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, input *component.Input) {
		if ecs.Has(w, e, component.ScriptedInputComponent.Kind()) {
			return
		}
		input.Next(held)
	})
}

func (i *InputSystem) sample() component.KeySet {
	var held component.KeySet
	for key, logical := range i.Keyboard {
		if ebiten.IsKeyPressed(key) {
			held = held.With(logical)
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		for button, logical := range i.Gamepad {
			if ebiten.IsStandardGamepadButtonPressed(id, button) {
				held = held.With(logical)
			}
		}
		held = held.With(stickKey(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal), component.KeyLeft, component.KeyRight))
		// Stick Y grows downward.
		held = held.With(stickKey(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical), component.KeyUp, component.KeyDown))
	}
	return held
}

func stickKey(value float64, negative, positive component.Key) component.Key {
	switch {
	case value < -stickDeadzone:
		return negative
	case value > stickDeadzone:
		return positive
	}
	return component.KeyNone
}
