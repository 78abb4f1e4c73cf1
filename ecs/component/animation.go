package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int // start column (frame 0)
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

type Animation struct {
	Sheet      *ebiten.Image
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
	// Paused holds the current frame without ending the animation.
	Paused bool
}

// Play switches to the named animation from its first frame. Unknown names
// leave the animation untouched and report false.
func (a *Animation) Play(name string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Defs[name]; !ok {
		return false
	}
	if a.Current == name && a.Playing {
		return true
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	a.Paused = false
	return true
}

var AnimationComponent = NewComponent[Animation]()
