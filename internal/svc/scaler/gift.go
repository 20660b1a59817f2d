package scaler

import (
	"image"

	"github.com/disintegration/gift"
)

// Gift uses "github.com/disintegration/gift"
type Gift struct{}

func (Gift) Name() string {
	return "gift"
}

func (Gift) Scale(img image.Image, width, height int) image.Image {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	gift.Resize(width, height, gift.LanczosResampling).Draw(m, img, &gift.Options{Parallelization: true})

	return m
}
