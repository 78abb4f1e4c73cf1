package component

// PlayerTag marks the entity driven by local input.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// CameraTag marks the entity the sandbox camera follows.
type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
