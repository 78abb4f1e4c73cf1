package component

// Camera looks at a world point and eases toward the entity tagged with
// CameraTag. The camera entity's Transform holds the point it looks at.
type Camera struct {
	Zoom float64
	// Follow is the time in seconds the camera takes to catch up with a
	// target that moved.
	Follow float64
	// ViewW and ViewH are the screen size in pixels.
	ViewW float64
	ViewH float64
}

var CameraComponent = NewComponent[Camera]()
