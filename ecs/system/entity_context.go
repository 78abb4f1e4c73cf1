package system

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

var (
	ErrNoPhysicsBody = errors.New("movement: entity has no physics body")
	ErrNoCollider    = errors.New("movement: entity has no collider")
)

// Collider height reductions are tracked per owner so crouch and slide can
// overlap without one restoring the other's shape.
type reductionOwner int

const (
	reductionSlide reductionOwner = iota
	reductionCrouch
	reductionCount
)

// EntityContext is the movement machines' view of one entity. It is built
// once from the entity's components; the component pointers stay valid for
// the entity's lifetime.
type EntityContext struct {
	Entity ecs.Entity

	body     *component.PhysicsBody
	collider *component.Collider
	gravity  *component.GravityScale
	facing   *component.Facing
	sprite   *component.Sprite
	audio    *component.Audio
	anim     *component.Animation
	modules  *component.Modules

	defaultDrag float64
	reductions  [reductionCount]float64
}

// NewEntityContext resolves the components of e. A physics body and a
// collider are required; everything else is optional.
func NewEntityContext(w *ecs.World, e ecs.Entity) (*EntityContext, error) {
	ctx := &EntityContext{Entity: e}

	var ok bool
	if ctx.body, ok = ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); !ok {
		return nil, ErrNoPhysicsBody
	}
	if ctx.collider, ok = ecs.Get(w, e, component.ColliderComponent.Kind()); !ok {
		return nil, ErrNoCollider
	}
	if ctx.gravity, ok = ecs.Get(w, e, component.GravityScaleComponent.Kind()); !ok {
		ctx.gravity = &component.GravityScale{Scale: 1, Default: 1}
		_ = ecs.Add(w, e, component.GravityScaleComponent.Kind(), ctx.gravity)
	}
	if ctx.gravity.Default == 0 {
		ctx.gravity.Default = ctx.gravity.Scale
	}
	if ctx.facing, ok = ecs.Get(w, e, component.FacingComponent.Kind()); !ok {
		ctx.facing = &component.Facing{Right: true, DefaultRight: true}
		_ = ecs.Add(w, e, component.FacingComponent.Kind(), ctx.facing)
	}
	ctx.sprite, _ = ecs.Get(w, e, component.SpriteComponent.Kind())
	ctx.audio, _ = ecs.Get(w, e, component.AudioComponent.Kind())
	ctx.anim, _ = ecs.Get(w, e, component.AnimationComponent.Kind())
	ctx.modules, _ = ecs.Get(w, e, component.ModulesComponent.Kind())
	ctx.defaultDrag = ctx.body.LinearDrag

	if ctx.collider.Original == (component.ColliderShape{}) {
		ctx.collider.Original = ctx.collider.Current
	}
	return ctx, nil
}

// Ready reports whether the physics body has been created.
func (c *EntityContext) Ready() bool {
	return c != nil && c.body != nil && c.body.Body != nil
}

func (c *EntityContext) Body() *component.PhysicsBody { return c.body }

func (c *EntityContext) Velocity() cp.Vector {
	if !c.Ready() {
		return cp.Vector{}
	}
	return c.body.Body.Velocity()
}

// SetVelocityX replaces the horizontal component and keeps the vertical one.
func (c *EntityContext) SetVelocityX(x float64) {
	if !c.Ready() {
		return
	}
	v := c.body.Body.Velocity()
	c.body.Body.SetVelocity(x, v.Y)
}

// SetVelocityY replaces the vertical component and keeps the horizontal one.
func (c *EntityContext) SetVelocityY(y float64) {
	if !c.Ready() {
		return
	}
	v := c.body.Body.Velocity()
	c.body.Body.SetVelocity(v.X, y)
}

func (c *EntityContext) SetVelocity(v cp.Vector) {
	if !c.Ready() {
		return
	}
	c.body.Body.SetVelocityVector(v)
}

// ApplyImpulseY applies an upward impulse through the body's center.
func (c *EntityContext) ApplyImpulseY(j float64) {
	if !c.Ready() {
		return
	}
	c.body.Body.ApplyImpulseAtLocalPoint(cp.Vector{X: 0, Y: j}, cp.Vector{})
}

func (c *EntityContext) Mass() float64 {
	if !c.Ready() {
		return 0
	}
	return c.body.Body.Mass()
}

func (c *EntityContext) Position() cp.Vector {
	if !c.Ready() {
		return cp.Vector{}
	}
	return c.body.Body.Position()
}

func (c *EntityContext) SetPosition(p cp.Vector) {
	if !c.Ready() {
		return
	}
	c.body.Body.SetPosition(p)
}

func (c *EntityContext) GravityScale() float64 { return c.gravity.Scale }

func (c *EntityContext) SetGravityScale(s float64) { c.gravity.Scale = s }

func (c *EntityContext) DefaultGravityScale() float64 { return c.gravity.Default }

func (c *EntityContext) SetLinearDrag(d float64) { c.body.LinearDrag = d }

func (c *EntityContext) RestoreLinearDrag() { c.body.LinearDrag = c.defaultDrag }

// LockY freezes or releases the vertical axis of the body.
func (c *EntityContext) LockY(locked bool) { c.body.LockY = locked }

// IgnorePlatform makes the body pass through shape until cleared with nil.
func (c *EntityContext) IgnorePlatform(shape *cp.Shape) { c.body.IgnoredShape = shape }

func (c *EntityContext) ColliderKind() component.ColliderKind { return c.collider.Kind }

func (c *EntityContext) Collider() component.ColliderShape { return c.collider.Current }

func (c *EntityContext) OriginalCollider() component.ColliderShape { return c.collider.Original }

func (c *EntityContext) SetColliderShape(size, offset cp.Vector) {
	SetColliderShape(c.body, c.collider, size, offset)
}

// Bounds returns the current world-space collider bounds.
func (c *EntityContext) Bounds() cp.BB {
	return ColliderBounds(c.Position(), c.collider.Current)
}

// setReduction records the height reduction owned by o and reapplies the
// largest active one. With no active reduction the original shape is
// restored exactly.
func (c *EntityContext) setReduction(o reductionOwner, percent float64) {
	c.reductions[o] = percent
	largest := 0.0
	for _, p := range c.reductions {
		if p > largest {
			largest = p
		}
	}
	target := reducedShape(c.collider.Original, largest)
	if target == c.collider.Current {
		return
	}
	c.SetColliderShape(target.Size, target.Offset)
}

func (c *EntityContext) FacingRight() bool { return c.facing.Right }

// SetFacing turns the entity and mirrors the sprite against the authored
// default facing.
func (c *EntityContext) SetFacing(right bool) {
	c.facing.Right = right
	if c.sprite != nil {
		c.sprite.Mirrored = right != c.facing.DefaultRight
	}
}

func (c *EntityContext) Audio() *component.Audio { return c.audio }

func (c *EntityContext) Animation() *component.Animation { return c.anim }

// Lookup finds a sibling module by name.
func (c *EntityContext) Lookup(name string) (any, error) {
	mod, err := c.modules.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("entity %v: %w", c.Entity, err)
	}
	return mod.Value, nil
}
