package resizer

import (
	"fmt"
	"image"
	"math/rand"
	"testing"

	"github.com/seventv/image-resizer/internal/testutil"
)

func TestFitSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		srcW, srcH, boxW, boxH int
		w, h                   int
	}{
		{400, 400, 200, 100, 100, 100},
		{400, 200, 200, 200, 200, 100},
		{200, 400, 200, 200, 100, 200},
		{400, 300, 0, 0, 400, 300},
		{400, 300, 200, 0, 200, 150},
		{400, 300, 0, 150, 200, 150},
		{400, 300, 800, 0, 400, 300},
		{100, 50, 400, 400, 400, 200},
		{3, 1000, 10, 10, 1, 10},
		{640, 480, 320, 240, 320, 240},
	}

	for _, c := range cases {
		w, h := FitSize(c.srcW, c.srcH, c.boxW, c.boxH)
		name := fmt.Sprintf("%dx%d into %dx%d", c.srcW, c.srcH, c.boxW, c.boxH)
		testutil.Assert(t, c.w, w, name+" width")
		testutil.Assert(t, c.h, h, name+" height")
	}
}

func TestFitSizeProperties(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		srcW, srcH := 1+rnd.Intn(3000), 1+rnd.Intn(3000)
		boxW, boxH := 1+rnd.Intn(3000), 1+rnd.Intn(3000)

		w, h := FitSize(srcW, srcH, boxW, boxH)
		name := fmt.Sprintf("%dx%d into %dx%d gave %dx%d", srcW, srcH, boxW, boxH, w, h)

		testutil.Assert(t, true, w >= 1 && w <= boxW, name)
		testutil.Assert(t, true, h >= 1 && h <= boxH, name)
		testutil.Assert(t, true, w == boxW || h == boxH, name)

		w, h = FitSize(srcW, srcH, 0, 0)
		testutil.Assert(t, image.Pt(srcW, srcH), image.Pt(w, h), "no box keeps the source size")
	}
}

func TestFillGeometry(t *testing.T) {
	t.Parallel()

	scaled, crop := FillGeometry(400, 400, 200, 100)
	testutil.Assert(t, image.Pt(200, 200), scaled, "scaled to cover")
	testutil.Assert(t, image.Rect(0, 50, 200, 150), crop, "centered crop")

	scaled, crop = FillGeometry(300, 100, 100, 100)
	testutil.Assert(t, image.Pt(300, 100), scaled, "already covers")
	testutil.Assert(t, image.Rect(100, 0, 200, 100), crop, "horizontal center")

	scaled, crop = FillGeometry(640, 480, 0, 0)
	testutil.Assert(t, image.Pt(640, 480), scaled, "no target keeps size")
	testutil.Assert(t, image.Rect(0, 0, 640, 480), crop, "crop is the whole image")

	// Truncating 3 * (100/3) can give 99, one short of the target.
	scaled, crop = FillGeometry(3, 7, 100, 1)
	testutil.Assert(t, true, scaled.X >= 100, "clamped to the target width")
	testutil.Assert(t, true, crop.In(image.Rectangle{Max: scaled}), "crop inside scaled raster")
}

func TestFillGeometryProperties(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(11))

	for i := 0; i < 5000; i++ {
		srcW, srcH := 1+rnd.Intn(3000), 1+rnd.Intn(3000)
		tW, tH := 1+rnd.Intn(3000), 1+rnd.Intn(3000)

		scaled, crop := FillGeometry(srcW, srcH, tW, tH)
		name := fmt.Sprintf("%dx%d fill %dx%d scaled %v crop %v", srcW, srcH, tW, tH, scaled, crop)

		testutil.Assert(t, image.Pt(tW, tH), crop.Size(), name)
		testutil.Assert(t, true, crop.In(image.Rectangle{Max: scaled}), name)

		left, right := crop.Min.X, scaled.X-crop.Max.X
		top, bottom := crop.Min.Y, scaled.Y-crop.Max.Y
		testutil.Assert(t, true, right-left >= 0 && right-left <= 1, name+" horizontal center")
		testutil.Assert(t, true, bottom-top >= 0 && bottom-top <= 1, name+" vertical center")
	}
}
