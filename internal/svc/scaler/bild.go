package scaler

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Bild uses "github.com/anthonynsimon/bild/transform"
type Bild struct{}

func (Bild) Name() string {
	return "bild"
}

func (Bild) Scale(img image.Image, width, height int) image.Image {
	return transform.Resize(img, width, height, transform.Lanczos)
}
