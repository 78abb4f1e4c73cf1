package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

const physicsStep = 1.0 / 60.0

func spawnBody(t *testing.T, w *ecs.World, x, y float64) (ecs.Entity, *component.PhysicsBody, *component.Transform) {
	t.Helper()
	e := ecs.CreateEntity(w)
	pb := &component.PhysicsBody{Mass: 1}
	tr := &component.Transform{X: x, Y: y}
	col := &component.Collider{Kind: component.ColliderBox, Current: component.ColliderShape{Size: cp.Vector{X: 20, Y: 40}}}
	for _, err := range []error{
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), pb),
		ecs.Add(w, e, component.TransformComponent.Kind(), tr),
		ecs.Add(w, e, component.ColliderComponent.Kind(), col),
	} {
		if err != nil {
			t.Fatalf("add component: %v", err)
		}
	}
	return e, pb, tr
}

func simulate(ps *PhysicsSystem, w *ecs.World, frames int) {
	for i := 0; i < frames; i++ {
		ps.Update(w)
		ps.Step(physicsStep)
	}
	ps.Update(w)
}

func TestPhysicsCreatesBody(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(100)
	_, pb, _ := spawnBody(t, w, 5, 30)

	ps.Update(w)
	if pb.Body == nil || pb.Shape == nil || pb.Space != ps.Space() {
		t.Fatalf("expected body, shape and space to be set")
	}
	if pos := pb.Body.Position(); pos.X != 5 || pos.Y != 30 {
		t.Fatalf("expected body at the transform, got %v", pos)
	}
	if pb.Shape.UserData != pb {
		t.Fatalf("expected the shape to reference its physics body")
	}
}

func TestPhysicsOneWayPlatform(t *testing.T) {
	t.Run("lands_from_above", func(t *testing.T) {
		w := ecs.NewWorld()
		ps := NewPhysicsSystem(100)
		ps.AddSurface(cp.BB{L: -100, B: -10, R: 100, T: 0}, component.SurfaceTag{Kind: component.SurfacePlatform})
		_, _, tr := spawnBody(t, w, 0, 30)

		simulate(ps, w, 120)
		if math.Abs(tr.Y-20) > 1 {
			t.Fatalf("expected to rest on the platform at y=20, got %v", tr.Y)
		}
	})

	t.Run("drops_through_ignored_platform", func(t *testing.T) {
		w := ecs.NewWorld()
		ps := NewPhysicsSystem(100)
		platform := ps.AddSurface(cp.BB{L: -100, B: -10, R: 100, T: 0}, component.SurfaceTag{Kind: component.SurfacePlatform})
		_, pb, tr := spawnBody(t, w, 0, 30)

		simulate(ps, w, 120)
		pb.IgnoredShape = platform
		simulate(ps, w, 60)
		if tr.Y > -20 {
			t.Fatalf("expected to fall through the platform, got y=%v", tr.Y)
		}
	})

	t.Run("solid_ground_blocks", func(t *testing.T) {
		w := ecs.NewWorld()
		ps := NewPhysicsSystem(100)
		ground := ps.AddSurface(cp.BB{L: -100, B: -10, R: 100, T: 0}, component.SurfaceTag{Kind: component.SurfaceGround})
		_, pb, tr := spawnBody(t, w, 0, 30)

		simulate(ps, w, 120)
		pb.IgnoredShape = ground
		simulate(ps, w, 60)
		if math.Abs(tr.Y-20) > 1 {
			t.Fatalf("expected ground to stay solid, got y=%v", tr.Y)
		}
	})
}

func TestPhysicsBodyControls(t *testing.T) {
	t.Run("gravity_scale", func(t *testing.T) {
		w := ecs.NewWorld()
		ps := NewPhysicsSystem(100)
		e, pb, _ := spawnBody(t, w, 0, 0)
		if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 0, Default: 1}); err != nil {
			t.Fatal(err)
		}

		simulate(ps, w, 30)
		if vy := pb.Body.Velocity().Y; vy != 0 {
			t.Fatalf("expected no gravity with scale 0, got vy=%v", vy)
		}
	})

	t.Run("lock_y", func(t *testing.T) {
		w := ecs.NewWorld()
		ps := NewPhysicsSystem(100)
		_, pb, tr := spawnBody(t, w, 0, 0)
		pb.LockY = true

		simulate(ps, w, 30)
		if tr.Y != 0 {
			t.Fatalf("expected locked vertical position, got %v", tr.Y)
		}
	})

	t.Run("linear_drag", func(t *testing.T) {
		w := ecs.NewWorld()
		ps := NewPhysicsSystem(0)
		_, pb, _ := spawnBody(t, w, 0, 0)
		pb.LinearDrag = 4
		ps.Update(w)
		pb.Body.SetVelocity(10, 0)

		simulate(ps, w, 30)
		if vx := pb.Body.Velocity().X; vx >= 10 || vx <= 0 {
			t.Fatalf("expected drag to slow the body, got vx=%v", vx)
		}
	})
}

func TestPhysicsCleansUpDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(100)
	e, pb, _ := spawnBody(t, w, 0, 0)
	ps.Update(w)

	ecs.DestroyEntity(w, e)
	ps.Update(w)
	if pb.Body != nil || pb.Shape != nil || pb.Space != nil {
		t.Fatalf("expected body released after destroy")
	}
	if len(ps.entities) != 0 {
		t.Fatalf("expected no tracked entities, got %d", len(ps.entities))
	}
}
