package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

func TestViewToScreen(t *testing.T) {
	tests := []struct {
		name   string
		view   View
		p      cp.Vector
		wx, wy float64
	}{
		{"center", View{X: 10, Y: 20, Zoom: 1, W: 320, H: 240}, cp.Vector{X: 10, Y: 20}, 160, 120},
		{"y up", View{X: 100, Y: 50, Zoom: 2, W: 320, H: 240}, cp.Vector{X: 110, Y: 60}, 180, 100},
		{"zero zoom", View{W: 100, H: 100}, cp.Vector{X: 5, Y: -5}, 55, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.view.ToScreen(tt.p)
			if x != tt.wx || y != tt.wy {
				t.Fatalf("ToScreen = (%v, %v), want (%v, %v)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func newCameraWorld(t *testing.T, targetX, targetY float64) (*ecs.World, *component.Transform, *component.Transform) {
	t.Helper()
	w := ecs.NewWorld()

	cam := ecs.CreateEntity(w)
	camT := &component.Transform{}
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 1, Follow: 0.25, ViewW: 320, ViewH: 240}); err != nil {
		t.Fatalf("add camera: %v", err)
	}
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), camT); err != nil {
		t.Fatalf("add camera transform: %v", err)
	}

	target := ecs.CreateEntity(w)
	targetT := &component.Transform{X: targetX, Y: targetY}
	if err := ecs.Add(w, target, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		t.Fatalf("add tag: %v", err)
	}
	if err := ecs.Add(w, target, component.TransformComponent.Kind(), targetT); err != nil {
		t.Fatalf("add target transform: %v", err)
	}
	return w, camT, targetT
}

func TestCameraFollowsTarget(t *testing.T) {
	w, camT, targetT := newCameraWorld(t, 400, 200)
	cs := NewCameraSystem()

	cs.Update(w)
	if camT.X != 400 || camT.Y != 200 {
		t.Fatalf("first frame = (%v, %v), want snap to (400, 200)", camT.X, camT.Y)
	}

	targetT.X = 500
	cs.Update(w)
	if camT.X <= 400 || camT.X >= 500 {
		t.Fatalf("camera x = %v, want between 400 and 500 while easing", camT.X)
	}
	if camT.Y != 200 {
		t.Fatalf("camera y = %v, want 200", camT.Y)
	}

	for i := 0; i < 30; i++ {
		cs.Update(w)
	}
	if camT.X != 500 || camT.Y != 200 {
		t.Fatalf("settled = (%v, %v), want (500, 200)", camT.X, camT.Y)
	}
	if cs.tweenX != nil {
		t.Fatalf("tween still running after settling")
	}
}

func TestCameraIgnoresSmallDrift(t *testing.T) {
	w, camT, targetT := newCameraWorld(t, 0, 0)
	cs := NewCameraSystem()
	cs.Update(w)

	targetT.X = 0.25
	cs.Update(w)
	if cs.tweenX != nil {
		t.Fatalf("drift below retarget distance started a tween")
	}
	if camT.X != 0 {
		t.Fatalf("camera x = %v, want 0", camT.X)
	}
}

func TestCameraClampsToLevel(t *testing.T) {
	tests := []struct {
		name         string
		bounds       component.LevelBounds
		tx, ty       float64
		wantX, wantY float64
	}{
		{"bottom left", component.LevelBounds{Width: 960, Height: 320}, 10, 10, 160, 120},
		{"top right", component.LevelBounds{Width: 960, Height: 320}, 950, 310, 800, 200},
		{"inside", component.LevelBounds{Width: 960, Height: 320}, 480, 150, 480, 150},
		{"level smaller than view", component.LevelBounds{Width: 200, Height: 100}, 30, 90, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, camT, _ := newCameraWorld(t, tt.tx, tt.ty)
			lb := ecs.CreateEntity(w)
			bounds := tt.bounds
			if err := ecs.Add(w, lb, component.LevelBoundsComponent.Kind(), &bounds); err != nil {
				t.Fatalf("add bounds: %v", err)
			}

			NewCameraSystem().Update(w)
			if math.Abs(camT.X-tt.wantX) > 1e-9 || math.Abs(camT.Y-tt.wantY) > 1e-9 {
				t.Fatalf("camera = (%v, %v), want (%v, %v)", camT.X, camT.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCameraView(t *testing.T) {
	w, _, _ := newCameraWorld(t, 64, 32)
	NewCameraSystem().Update(w)

	view := CameraView(w)
	if view.X != 64 || view.Y != 32 || view.Zoom != 1 || view.W != 320 || view.H != 240 {
		t.Fatalf("view = %+v", view)
	}

	if got := CameraView(ecs.NewWorld()); got.Zoom != 1 || got.W != 0 {
		t.Fatalf("empty world view = %+v, want zoom 1", got)
	}
}
