package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypePlatform
	collisionTypeSolid
)

// characterFilter lets characters collide with everything except climbable
// geometry, which only the surface sensor sees.
var characterFilter = cp.ShapeFilter{
	Group:      0,
	Categories: component.LayerCharacter,
	Mask:       allCategories &^ component.LayerClimbable,
}

// PhysicsSystem owns the Chipmunk space. It creates bodies for new physics
// entities, resolves one-way platforms and keeps transforms in sync. The
// space is stepped through Step by the movement system's fixed-step loop.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body *cp.Body
	pb   *component.PhysicsBody
}

// NewPhysicsSystem creates a space with gravity pointing down the Y axis.
// The world is Y-up; gravity is a positive magnitude.
func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -math.Abs(gravity)})
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetGravity changes the gravity magnitude, e.g. after a config reload.
func (ps *PhysicsSystem) SetGravity(gravity float64) {
	ps.space.SetGravity(cp.Vector{X: 0, Y: -math.Abs(gravity)})
}

// Step advances the space by dt seconds.
func (ps *PhysicsSystem) Step(dt float64) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.ensureHandlers()
	ps.space.Step(dt)
}

// AddSurface adds tagged static geometry.
func (ps *PhysicsSystem) AddSurface(bb cp.BB, tag component.SurfaceTag) *cp.Shape {
	return NewSurfaceShape(ps.space, bb, tag)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	platformHandler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypePlatform)
	platformHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		shapeA, shapeB := arb.Shapes()
		character, platform := shapeA, shapeB
		n := arb.Normal()
		if _, ok := shapeA.UserData.(*component.PhysicsBody); !ok {
			character, platform = shapeB, shapeA
			n = n.Neg()
		}
		pb, ok := character.UserData.(*component.PhysicsBody)
		if !ok {
			return true
		}
		if pb.IgnoredShape == platform {
			return false
		}
		// One-way: only collide when the platform is below the character.
		return n.Y < -0.5
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		gravity, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
		if !ok {
			gravity = &component.GravityScale{Scale: 1, Default: 1}
			_ = ecs.Add(w, e, component.GravityScaleComponent.Kind(), gravity)
		}
		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())

		ps.entities[e] = ps.createBody(transform, pb, col, gravity, layer)
	}
}

func (ps *PhysicsSystem) createBody(transform *component.Transform, pb *component.PhysicsBody, col *component.Collider, gravity *component.GravityScale, layer *component.CollisionLayer) *bodyInfo {
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}
	pb.Mass = mass

	// Infinite moment: characters never rotate.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetVelocityUpdateFunc(func(body *cp.Body, g cp.Vector, damping float64, dt float64) {
		if pb.LinearDrag > 0 {
			damping *= math.Exp(-pb.LinearDrag * dt)
		}
		cp.BodyUpdateVelocity(body, g.Mult(gravity.Scale), damping, dt)
		if pb.LockY {
			v := body.Velocity()
			body.SetVelocity(v.X, 0)
		}
	})

	pb.CollisionType = collisionTypeCharacter
	pb.Filter = characterFilter
	if layer != nil {
		if layer.Category != 0 {
			pb.Filter.Categories = layer.Category
		}
		if layer.Mask != 0 {
			pb.Filter.Mask = layer.Mask
		}
	}

	if col.Original == (component.ColliderShape{}) {
		col.Original = col.Current
	}
	shape := NewColliderShape(body, col.Kind, col.Current)
	configureShape(shape, pb, col)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape
	pb.Space = ps.space
	return &bodyInfo{body: body, pb: pb}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, transform *component.Transform) {
		if pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.pb.Shape != nil {
			ps.space.RemoveShape(info.pb.Shape)
		}
		ps.space.RemoveBody(info.body)
		info.pb.Body = nil
		info.pb.Shape = nil
		info.pb.Space = nil
		delete(ps.entities, e)
	}
}
