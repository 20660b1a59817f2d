package container

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
	"github.com/seventv/image-resizer/internal/testutil"
)

type testCase struct {
	Name         string
	Data         []byte
	ExpectedType types.Type
	Decodable    bool
}

func gifData(t *testing.T) []byte {
	buf := bytes.Buffer{}
	testutil.IsNil(t, gif.Encode(&buf, testutil.Image(8, 8), nil), "gif encodes")

	return buf.Bytes()
}

func TestMatch(t *testing.T) {
	t.Parallel()

	avif := []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p', 'a', 'v', 'i', 'f', 0x00, 0x00}

	cases := []testCase{
		{"static.jpeg", testutil.JPEG(t, 16, 16), matchers.TypeJpeg, true},
		{"static.png", testutil.PNG(t, 16, 16), matchers.TypePng, true},
		{"static.gif", gifData(t), matchers.TypeGif, true},
		{"static.avif", avif, TypeAvif, false},
		{"text", []byte("<html>not an image</html>"), types.Unknown, false},
		{"empty", nil, types.Unknown, false},
	}

	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()

			match := Match(c.Data)
			testutil.Assert(t, c.ExpectedType, match, "matched type")
			testutil.Assert(t, c.Decodable, Decodable(match), "decodable")
		})
	}
}

func TestMimes(t *testing.T) {
	t.Parallel()

	testutil.Assert(t, "image/jpeg", MimeJPEG, "jpeg mime")
	testutil.Assert(t, "image/avif", TypeAvif.MIME.Value, "avif mime")
	testutil.Assert(t, false, Decodable(TypeAvif), "avif has no decoder")

	for _, mime := range []string{MimeJPEG, MimePNG, MimeGIF, MimeBMP, MimeTIFF, MimeWEBP} {
		testutil.Assert(t, true, Decodable(types.Type{MIME: types.NewMIME(mime)}), mime)
	}
}
