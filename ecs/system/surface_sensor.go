package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

const allCategories = ^uint(0)

const (
	defaultProbeDistance = 2.0
	defaultSkin          = 1.0
)

// DefaultGroundMask is used when the action config leaves the ground mask
// unset: anything solid can be stood on.
const DefaultGroundMask = component.LayerGround | component.LayerWall | component.LayerLedge | component.LayerPlatform

// SurfaceSensor answers grounded/wall/ledge/platform/climbable questions for
// one collider against the static geometry of a space.
type SurfaceSensor struct {
	Space    *cp.Space
	Settings component.SensorSettings
	// ClimbProbe widens the climbable query beyond the collider bounds.
	ClimbProbe float64
}

// NewSurfaceSensor builds a sensor from an action config.
func NewSurfaceSensor(space *cp.Space, cfg *component.ActionConfig) *SurfaceSensor {
	s := &SurfaceSensor{Space: space}
	if cfg != nil {
		s.Settings = cfg.Sensor
		s.ClimbProbe = cfg.Climb.ProbeDistance
	}
	return s
}

// Sense runs every probe for a collider at pos. ignored is skipped by all
// probes (a platform being dropped through).
func (s *SurfaceSensor) Sense(pos cp.Vector, collider component.ColliderShape, ignored *cp.Shape) component.Surfaces {
	var out component.Surfaces
	if s == nil || s.Space == nil {
		return out
	}

	skin := s.Settings.Skin
	if skin <= 0 {
		skin = defaultSkin
	}

	bounds := ColliderBounds(pos, collider)
	out.Ground = s.probeGround(bounds, skin, ignored)
	out.Grounded = out.Ground.Touching()
	if tag := surfaceTag(out.Ground.Shape); tag != nil && tag.Kind == component.SurfacePlatform {
		out.Platform = out.Ground
	}

	side := cp.BB{L: bounds.L - skin, B: bounds.B + skin, R: bounds.R + skin, T: bounds.T}
	out.Wall = s.overlap(side, bounds, component.SurfaceWall, ignored)
	out.Ledge = s.overlap(side, bounds, component.SurfaceLedge, ignored)

	climb := s.ClimbProbe
	if climb < skin {
		climb = skin
	}
	reach := cp.BB{L: bounds.L - climb, B: bounds.B - climb, R: bounds.R + climb, T: bounds.T + climb}
	out.Climbable = s.overlap(reach, bounds, component.SurfaceClimbable, ignored)
	return out
}

// probeGround casts a circle of the probe radius from one skin above the
// collider's bottom edge down past it. Geometry higher up the body, such as
// a platform being jumped through, is never ground.
func (s *SurfaceSensor) probeGround(bounds cp.BB, skin float64, ignored *cp.Shape) component.Contact {
	dist := s.Settings.GroundProbeDistance
	if dist <= 0 {
		dist = defaultProbeDistance
	}
	mask := s.Settings.GroundMask
	if mask == 0 {
		mask = DefaultGroundMask
	}

	cx := (bounds.L + bounds.R) / 2
	start := cp.Vector{X: cx, Y: math.Min(bounds.B+skin, (bounds.B+bounds.T)/2)}
	end := cp.Vector{X: cx, Y: bounds.B - dist}
	filter := cp.ShapeFilter{Group: 0, Categories: allCategories, Mask: mask}

	info := s.Space.SegmentQueryFirst(start, end, s.Settings.GroundProbeRadius, filter)
	if info.Shape == nil || info.Shape == ignored {
		return component.Contact{}
	}
	return component.Contact{Shape: info.Shape, Bounds: info.Shape.BB()}
}

// overlap returns the tagged shape of kind nearest to the collider centre
// among those intersecting query. Side is measured from the collider centre
// too, not the entity origin; the two differ only for offset colliders.
func (s *SurfaceSensor) overlap(query, bounds cp.BB, kind component.SurfaceKind, ignored *cp.Shape) component.Contact {
	cx := (bounds.L + bounds.R) / 2
	filter := cp.ShapeFilter{Group: 0, Categories: allCategories, Mask: kind.Layer()}

	var best component.Contact
	bestDist := math.Inf(1)
	s.Space.BBQuery(query, filter, func(shape *cp.Shape, _ interface{}) {
		if shape == ignored {
			return
		}
		tag := surfaceTag(shape)
		if tag == nil || tag.Kind != kind {
			return
		}
		bb := shape.BB()
		dx := (bb.L+bb.R)/2 - cx
		if math.Abs(dx) >= bestDist {
			return
		}
		bestDist = math.Abs(dx)
		side := 1
		if dx < 0 {
			side = -1
		}
		best = component.Contact{Side: side, Shape: shape, Bounds: bb}
	}, nil)
	return best
}

func surfaceTag(shape *cp.Shape) *component.SurfaceTag {
	if shape == nil {
		return nil
	}
	tag, _ := shape.UserData.(*component.SurfaceTag)
	return tag
}

// NewSurfaceShape adds a static, tagged box to space.
func NewSurfaceShape(space *cp.Space, bb cp.BB, tag component.SurfaceTag) *cp.Shape {
	shape := cp.NewBox2(space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	mask := allCategories
	if tag.Kind == component.SurfaceClimbable {
		mask &^= component.LayerCharacter
	}
	shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: tag.Kind.Layer(), Mask: mask})
	if tag.Kind == component.SurfacePlatform {
		shape.SetCollisionType(collisionTypePlatform)
	} else {
		shape.SetCollisionType(collisionTypeSolid)
	}
	t := tag
	shape.UserData = &t
	space.AddShape(shape)
	return shape
}
