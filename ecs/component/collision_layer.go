package component

// CollisionLayer allows entities to declare a collision category and mask
// so the physics system can selectively enable/disable collisions between
// groups of objects.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system will treat it as category 1.
	Category uint `yaml:"category,omitempty"`
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, the physics system will treat it as all-bits set (collide with all).
	Mask uint `yaml:"mask,omitempty"`
}

// Collision categories used by level geometry and characters.
const (
	LayerGround uint = 1 << iota
	LayerWall
	LayerLedge
	LayerPlatform
	LayerClimbable
	LayerCharacter
)

var CollisionLayerComponent = NewComponent[CollisionLayer]()
