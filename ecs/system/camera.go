package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultCameraFollow = 0.25
	// retargetDistance is how far the target may drift from the current
	// tween goal before a new tween starts.
	retargetDistance = 0.5
)

// View maps Y-up world coordinates to Y-down screen pixels.
type View struct {
	X, Y float64
	Zoom float64
	W, H float64
}

func (v View) ToScreen(p cp.Vector) (float64, float64) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (p.X-v.X)*zoom + v.W/2, (v.Y-p.Y)*zoom + v.H/2
}

// CameraSystem eases the camera toward its target with gween tweens and
// keeps the view inside the level bounds.
type CameraSystem struct {
	FrameTime float64

	tweenX, tweenY *gween.Tween
	goal           cp.Vector
	started        bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{FrameTime: defaultFixedStep}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	camTransform, _ := ecs.Get(w, camEntity, component.TransformComponent.Kind())

	target, ok := w.First(component.CameraTagComponent.Kind(), component.TransformComponent.Kind())
	if ok {
		t, _ := ecs.Get(w, target, component.TransformComponent.Kind())
		cs.follow(cam, camTransform, cp.Vector{X: t.X, Y: t.Y})
	}

	if bounds, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		lb, _ := ecs.Get(w, bounds, component.LevelBoundsComponent.Kind())
		clampToBounds(cam, camTransform, lb)
	}
}

func (cs *CameraSystem) follow(cam *component.Camera, t *component.Transform, goal cp.Vector) {
	if !cs.started {
		cs.started = true
		cs.goal = goal
		t.X, t.Y = goal.X, goal.Y
		return
	}

	if goal.Distance(cs.goal) > retargetDistance {
		duration := cam.Follow
		if duration <= 0 {
			duration = defaultCameraFollow
		}
		cs.goal = goal
		cs.tweenX = gween.New(float32(t.X), float32(goal.X), float32(duration), ease.OutQuad)
		cs.tweenY = gween.New(float32(t.Y), float32(goal.Y), float32(duration), ease.OutQuad)
	}
	if cs.tweenX == nil {
		return
	}

	dt := float32(cs.FrameTime)
	x, doneX := cs.tweenX.Update(dt)
	y, doneY := cs.tweenY.Update(dt)
	t.X, t.Y = float64(x), float64(y)
	if doneX && doneY {
		t.X, t.Y = cs.goal.X, cs.goal.Y
		cs.tweenX, cs.tweenY = nil, nil
	}
}

func clampToBounds(cam *component.Camera, t *component.Transform, lb *component.LevelBounds) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	t.X, t.Y = lb.ClampView(t.X, t.Y, cam.ViewW/zoom/2, cam.ViewH/zoom/2)
}

// CameraView returns the view of the first camera in w.
func CameraView(w *ecs.World) View {
	view := View{Zoom: 1}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return view
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		view.Zoom = cam.Zoom
		view.W = cam.ViewW
		view.H = cam.ViewH
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		view.X = t.X
		view.Y = t.Y
	}
	return view
}
