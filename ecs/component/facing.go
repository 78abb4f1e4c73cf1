package component

// Facing is the direction the character looks. DefaultRight is the direction
// the sprite art was authored facing; the sprite is mirrored whenever Right
// differs from it.
type Facing struct {
	Right        bool
	DefaultRight bool
}

// Sign returns 1 when facing right and -1 when facing left.
func (f Facing) Sign() float64 {
	if f.Right {
		return 1
	}
	return -1
}

var FacingComponent = NewComponent[Facing]()
