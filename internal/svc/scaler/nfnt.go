package scaler

import (
	"image"

	"github.com/nfnt/resize"
)

// Nfnt uses "github.com/nfnt/resize"
type Nfnt struct{}

func (Nfnt) Name() string {
	return "nfnt"
}

func (Nfnt) Scale(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}
