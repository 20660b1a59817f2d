package resizer

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/seventv/image-resizer/internal/instance"
	"github.com/seventv/image-resizer/resize"
)

// DefaultMaxPixels bounds the largest intermediate raster a request may ask
// for, roughly 200MB of NRGBA.
const DefaultMaxPixels = 50_000_000

type Resizer struct {
	Scaler    instance.Scaler
	MaxPixels int
}

func New(scaler instance.Scaler, maxPixels int) Resizer {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	return Resizer{
		Scaler:    scaler,
		MaxPixels: maxPixels,
	}
}

// Resize dispatches on mode. An empty mode is fit.
func (r Resizer) Resize(img image.Image, mode resize.Mode, height, width int) (image.Image, error) {
	switch mode {
	case resize.ModeFit, "":
		return r.Fit(img, height, width)
	case resize.ModeFill:
		return r.Fill(img, height, width)
	default:
		return nil, resize.NewError(resize.KindInvalidInput, "resize", fmt.Sprintf("unknown mode %q", string(mode)))
	}
}

// Fit scales img so it fits entirely inside height x width, keeping the
// aspect ratio. Zero dimensions default to the image's own.
func (r Resizer) Fit(img image.Image, height, width int) (image.Image, error) {
	srcW, srcH, err := dimensions(img)
	if err != nil {
		return nil, err
	}

	w, h := FitSize(srcW, srcH, width, height)
	if err := r.checkPixels(w, h); err != nil {
		return nil, err
	}

	if w == srcW && h == srcH {
		return img, nil
	}

	out := r.Scaler.Scale(img, w, h)

	return out, expectSize("fit", out, w, h)
}

// Fill scales img to cover height x width and crops the centered window.
func (r Resizer) Fill(img image.Image, height, width int) (image.Image, error) {
	srcW, srcH, err := dimensions(img)
	if err != nil {
		return nil, err
	}

	scaled, crop := FillGeometry(srcW, srcH, width, height)
	if err := r.checkPixels(scaled.X, scaled.Y); err != nil {
		return nil, err
	}

	if scaled.X != srcW || scaled.Y != srcH {
		img = r.Scaler.Scale(img, scaled.X, scaled.Y)
	}

	b := img.Bounds()
	window := crop.Add(b.Min)
	if !window.In(b) {
		return nil, resize.NewError(resize.KindInternal, "fill", fmt.Sprintf("crop window %v outside raster %v", window, b))
	}

	if window == b {
		return img, nil
	}

	out := imaging.Crop(img, window)

	return out, expectSize("fill", out, crop.Dx(), crop.Dy())
}

func (r Resizer) checkPixels(w, h int) error {
	if r.MaxPixels > 0 && int64(w)*int64(h) > int64(r.MaxPixels) {
		return resize.NewError(resize.KindInvalidInput, "resize", fmt.Sprintf("requested %dx%d exceeds the %d pixel limit", w, h, r.MaxPixels))
	}

	return nil
}

func dimensions(img image.Image) (int, int, error) {
	if img == nil {
		return 0, 0, resize.NewError(resize.KindInternal, "resize", "nil image")
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0, 0, resize.NewError(resize.KindInternal, "resize", fmt.Sprintf("empty raster %v", b))
	}

	return b.Dx(), b.Dy(), nil
}

func expectSize(op string, img image.Image, w, h int) error {
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		return resize.NewError(resize.KindInternal, op, fmt.Sprintf("produced %dx%d, expected %dx%d", b.Dx(), b.Dy(), w, h))
	}

	return nil
}
