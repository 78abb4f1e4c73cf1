package component

// GravityScale scales world gravity for a dynamic physics body.
// 1.0 = normal gravity, 0.0 = no gravity. Default is the value the body was
// authored with and the value restored when no movement state overrides it.
type GravityScale struct {
	Scale   float64
	Default float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
