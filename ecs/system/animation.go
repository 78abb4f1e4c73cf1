package system

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

// AnimationSystem advances sprite sheet animations at 60 ticks per second.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		if anim.Sheet == nil {
			return
		}
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		if anim.Playing && !anim.Paused {
			advanceFrame(anim, def)
		}

		x := def.ColStart*def.FrameW + anim.Frame*def.FrameW
		y := def.Row * def.FrameH
		rect := image.Rect(x, y, x+def.FrameW, y+def.FrameH)
		sprite.Image = anim.Sheet.SubImage(rect).(*ebiten.Image)
	})
}

func advanceFrame(anim *component.Animation, def component.AnimationDef) {
	ticksPerFrame := 1
	if def.FPS > 0 {
		ticksPerFrame = max(int(60.0/def.FPS), 1)
	}

	anim.FrameTimer++
	if anim.FrameTimer < ticksPerFrame {
		return
	}
	anim.FrameTimer = 0
	anim.Frame++
	if anim.Frame < def.FrameCount {
		return
	}
	if def.Loop {
		anim.Frame = 0
		return
	}
	anim.Frame = def.FrameCount - 1
	anim.Playing = false
}
