package resize

import "image"

// Raster is a decoded source image. It belongs to the pipeline call that
// fetched it and is never shared.
type Raster struct {
	Image  image.Image
	Format string
	Size   int
}

func (r Raster) Width() int {
	return r.Image.Bounds().Dx()
}

func (r Raster) Height() int {
	return r.Image.Bounds().Dy()
}

type Output struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}
