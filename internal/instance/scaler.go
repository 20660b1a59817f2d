package instance

import "image"

// Scaler resamples img to exactly width x height. Implementations must be
// safe for concurrent use and deterministic.
type Scaler interface {
	Name() string
	Scale(img image.Image, width, height int) image.Image
}
