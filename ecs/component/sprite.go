package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image     *ebiten.Image
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
	// Mirrored flips the image horizontally when drawn. Movement keeps it in
	// sync with Facing.
	Mirrored bool
}

var SpriteComponent = NewComponent[Sprite]()
