package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

// NewColliderShape builds the Chipmunk shape for a collider on body. Boxes
// become offset polygons; capsules become a vertical segment whose radius is
// half the width.
func NewColliderShape(body *cp.Body, kind component.ColliderKind, shape component.ColliderShape) *cp.Shape {
	w := math.Max(shape.Size.X, 0)
	h := math.Max(shape.Size.Y, 0)
	off := shape.Offset

	if kind == component.ColliderCapsule {
		r := w / 2
		half := math.Max(h/2-r, 0)
		a := cp.Vector{X: off.X, Y: off.Y - half}
		b := cp.Vector{X: off.X, Y: off.Y + half}
		return cp.NewSegment(body, a, b, r)
	}

	bb := cp.BB{L: off.X - w/2, B: off.Y - h/2, R: off.X + w/2, T: off.Y + h/2}
	return cp.NewBox2(body, bb, 0)
}

// ColliderBounds returns the world-space bounds of a collider on a body at pos.
func ColliderBounds(pos cp.Vector, shape component.ColliderShape) cp.BB {
	cx := pos.X + shape.Offset.X
	cy := pos.Y + shape.Offset.Y
	return cp.BB{
		L: cx - shape.Size.X/2,
		B: cy - shape.Size.Y/2,
		R: cx + shape.Size.X/2,
		T: cy + shape.Size.Y/2,
	}
}

// ColliderSize returns the current full width and height.
func ColliderSize(col *component.Collider) cp.Vector {
	if col == nil {
		return cp.Vector{}
	}
	return col.Current.Size
}

// ColliderOffset returns the current body-local offset.
func ColliderOffset(col *component.Collider) cp.Vector {
	if col == nil {
		return cp.Vector{}
	}
	return col.Current.Offset
}

// SetColliderShape resizes the collider and rebuilds the body's Chipmunk
// shape to match. The old shape is swapped out of the space when the body is
// in one.
func SetColliderShape(pb *component.PhysicsBody, col *component.Collider, size, offset cp.Vector) {
	if col == nil {
		return
	}
	col.Current = component.ColliderShape{Size: size, Offset: offset}
	if pb == nil || pb.Body == nil {
		return
	}

	shape := NewColliderShape(pb.Body, col.Kind, col.Current)
	configureShape(shape, pb, col)

	if pb.Space != nil && pb.Shape != nil {
		pb.Space.RemoveShape(pb.Shape)
	}
	pb.Shape = shape
	if pb.Space != nil {
		pb.Space.AddShape(shape)
	}
}

func configureShape(shape *cp.Shape, pb *component.PhysicsBody, col *component.Collider) {
	shape.SetFriction(col.Friction)
	shape.SetElasticity(0)
	if pb.CollisionType != 0 {
		shape.SetCollisionType(pb.CollisionType)
	}
	if pb.Filter != (cp.ShapeFilter{}) {
		shape.SetFilter(pb.Filter)
	}
	shape.UserData = pb
}

// reducedShape shrinks original's height by percent, keeping its bottom edge
// in place.
func reducedShape(original component.ColliderShape, percent float64) component.ColliderShape {
	if percent <= 0 {
		return original
	}
	h := original.Size.Y * (1 - percent/100)
	return component.ColliderShape{
		Size:   cp.Vector{X: original.Size.X, Y: h},
		Offset: cp.Vector{X: original.Offset.X, Y: original.Offset.Y - (original.Size.Y-h)/2},
	}
}
