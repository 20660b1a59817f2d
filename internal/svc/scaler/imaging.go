package scaler

import (
	"image"

	"github.com/disintegration/imaging"
)

// Imaging uses "github.com/disintegration/imaging"
type Imaging struct{}

func (Imaging) Name() string {
	return "imaging"
}

func (Imaging) Scale(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}
