package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// ColliderKind is the closed set of collider shapes a body may use.
type ColliderKind uint8

const (
	ColliderBox ColliderKind = iota
	ColliderCapsule
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderBox:
		return "box"
	case ColliderCapsule:
		return "capsule"
	}
	return fmt.Sprintf("collider(%d)", uint8(k))
}

func (k *ColliderKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "box":
		*k = ColliderBox
	case "capsule":
		*k = ColliderCapsule
	default:
		return fmt.Errorf("unknown collider kind %q", text)
	}
	return nil
}

// ColliderShape is the size and offset of a collider relative to its body.
// Offsets are body-local; sizes are full width/height.
type ColliderShape struct {
	Size   cp.Vector
	Offset cp.Vector
}

// Collider describes the main collision shape of a body. Original is captured
// once when the body is built and is what reducing states restore.
type Collider struct {
	Kind     ColliderKind
	Current  ColliderShape
	Original ColliderShape
	Friction float64
}

var ColliderComponent = NewComponent[Collider]()
