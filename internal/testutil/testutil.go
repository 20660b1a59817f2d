package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func Assert(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	require.Equal(t, expected, actual, msg)
}

func IsNil(t *testing.T, v interface{}, msg string) {
	t.Helper()
	require.Nil(t, v, msg)
}

func NotNil(t *testing.T, v interface{}, msg string) {
	t.Helper()
	require.NotNil(t, v, msg)
}

func ReadFile(t *testing.T, file string) []byte {
	t.Helper()

	data, err := os.ReadFile(file)
	require.NoError(t, err, "read %s", file)

	return data
}

// Image returns a width x height gradient so resampled output is not
// trivially uniform.
func Image(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(width-1, 1)),
				G: uint8(y * 255 / max(height-1, 1)),
				B: 128,
				A: 255,
			})
		}
	}

	return img
}

func JPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	buf := bytes.Buffer{}
	require.NoError(t, jpeg.Encode(&buf, Image(width, height), &jpeg.Options{Quality: 90}))

	return buf.Bytes()
}

func PNG(t *testing.T, width, height int) []byte {
	t.Helper()

	buf := bytes.Buffer{}
	require.NoError(t, png.Encode(&buf, Image(width, height)))

	return buf.Bytes()
}
