package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// SurfaceKind classifies level geometry for the surface sensor.
type SurfaceKind uint8

const (
	SurfaceGround SurfaceKind = iota
	SurfaceWall
	SurfaceLedge
	SurfacePlatform
	SurfaceClimbable
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceGround:
		return "ground"
	case SurfaceWall:
		return "wall"
	case SurfaceLedge:
		return "ledge"
	case SurfacePlatform:
		return "platform"
	case SurfaceClimbable:
		return "climbable"
	}
	return fmt.Sprintf("surface(%d)", uint8(k))
}

// ParseSurfaceKind accepts the names used by level files.
func ParseSurfaceKind(s string) (SurfaceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ground", "solid":
		return SurfaceGround, nil
	case "wall":
		return SurfaceWall, nil
	case "ledge":
		return SurfaceLedge, nil
	case "platform":
		return SurfacePlatform, nil
	case "climbable", "ladder":
		return SurfaceClimbable, nil
	}
	return SurfaceGround, fmt.Errorf("unknown surface kind %q", s)
}

// Layer returns the collision category geometry of this kind is placed in.
func (k SurfaceKind) Layer() uint {
	switch k {
	case SurfaceWall:
		return LayerWall
	case SurfaceLedge:
		return LayerLedge
	case SurfacePlatform:
		return LayerPlatform
	case SurfaceClimbable:
		return LayerClimbable
	}
	return LayerGround
}

// SurfaceTag is stored in the UserData of static level shapes.
type SurfaceTag struct {
	Kind SurfaceKind
	Name string
}

// Contact is one tagged surface touching the entity.
// Side is -1 when the surface lies to the left of the entity, 1 when it lies
// to the right, and 0 when there is no contact.
type Contact struct {
	Side   int
	Shape  *cp.Shape
	Bounds cp.BB
}

func (c Contact) Touching() bool {
	return c.Shape != nil
}

// Surfaces is the per-frame result of the surface sensor.
type Surfaces struct {
	Grounded  bool
	Ground    Contact
	Wall      Contact
	Ledge     Contact
	Platform  Contact
	Climbable Contact
}

var SurfacesComponent = NewComponent[Surfaces]()
