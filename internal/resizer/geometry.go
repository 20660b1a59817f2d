package resizer

import (
	"image"
	"math"
)

// FitSize scales srcW x srcH uniformly into a boxW x boxH box. A box
// dimension <= 0 takes the source's value. The axis with the smaller ratio
// lands exactly on the box edge, the other is rounded and kept inside it.
func FitSize(srcW, srcH, boxW, boxH int) (int, int) {
	if boxW <= 0 {
		boxW = srcW
	}
	if boxH <= 0 {
		boxH = srcH
	}

	if srcW == boxW && srcH == boxH {
		return srcW, srcH
	}

	rw := float64(boxW) / float64(srcW)
	rh := float64(boxH) / float64(srcH)

	if rw <= rh {
		return boxW, clamp(int(math.Round(float64(srcH)*rw)), 1, boxH)
	}

	return clamp(int(math.Round(float64(srcW)*rh)), 1, boxW), boxH
}

// FillGeometry returns the size the source is scaled to so it covers the
// target, and the centered target-sized window to crop from the scaled
// raster. Rounding never leaves the scaled raster smaller than the target,
// so the window is always inside it.
func FillGeometry(srcW, srcH, targetW, targetH int) (image.Point, image.Rectangle) {
	if targetW <= 0 {
		targetW = srcW
	}
	if targetH <= 0 {
		targetH = srcH
	}

	ratio := math.Max(
		float64(targetW)/float64(srcW),
		float64(targetH)/float64(srcH),
	)

	scaled := image.Point{
		X: max(int(math.Round(float64(srcW)*ratio)), targetW),
		Y: max(int(math.Round(float64(srcH)*ratio)), targetH),
	}

	x0 := (scaled.X - targetW) / 2
	y0 := (scaled.Y - targetH) / 2

	return scaled, image.Rect(x0, y0, x0+targetW, y0+targetH)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
