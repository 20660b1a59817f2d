package scaler

import (
	"image"

	"golang.org/x/image/draw"
)

// XDraw uses "golang.org/x/image/draw" with Catmull-Rom, the highest quality
// kernel that package ships.
type XDraw struct{}

func (XDraw) Name() string {
	return "xdraw"
}

func (XDraw) Scale(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return dst
}
