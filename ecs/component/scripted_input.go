package component

// ScriptedInput replaces device input with a tengo script that decides the
// held keys every frame.
type ScriptedInput struct {
	// Script is a path under prefabs/scripts.
	Script string
}

var ScriptedInputComponent = NewComponent[ScriptedInput]()
