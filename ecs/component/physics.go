package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data for a dynamic entity.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
	Space *cp.Space
	Mass  float64
	// LinearDrag damps velocity each physics step (1/s). Zero disables it.
	LinearDrag float64
	// LockY freezes vertical motion; the velocity update keeps Y at zero.
	LockY bool
	// IgnoredShape is a one-way platform the body currently drops through.
	IgnoredShape *cp.Shape

	// Shape settings reapplied whenever the collider is rebuilt.
	CollisionType cp.CollisionType
	Filter        cp.ShapeFilter
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
