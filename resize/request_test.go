package resize

import (
	"net/url"
	"testing"

	"github.com/seventv/image-resizer/internal/testutil"
)

func TestParseRequest(t *testing.T) {
	t.Parallel()

	req, err := ParseRequest("https://good.example/img.jpg?v=2", "", "100", "")
	testutil.IsNil(t, err, "request parses")
	testutil.Assert(t, ModeFit, req.Mode, "mode defaults to fit")
	testutil.Assert(t, "good.example", req.URL.Host, "host")
	testutil.Assert(t, 100, req.Height, "height")
	testutil.Assert(t, 0, req.Width, "width absent")
	testutil.IsNil(t, req.Validate(), "parsed request validates")

	req, err = ParseRequest("http://good.example:8080/a.png", "fill", "", "64")
	testutil.IsNil(t, err, "fill request parses")
	testutil.Assert(t, ModeFill, req.Mode, "fill mode")
	testutil.Assert(t, 64, req.Width, "width")
}

func TestParseRequestInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                     string
		url, mode, height, width string
	}{
		{"missing url", "", "", "", ""},
		{"garbage url", "::not a url", "", "", ""},
		{"relative url", "img.jpg", "", "", ""},
		{"no host", "http://", "", "", ""},
		{"file scheme", "file:///etc/passwd", "", "", ""},
		{"mode case", "https://good.example/a.jpg", "FIT", "", ""},
		{"unknown mode", "https://good.example/a.jpg", "stretch", "", ""},
		{"height not a number", "https://good.example/a.jpg", "", "1.5", ""},
		{"negative height", "https://good.example/a.jpg", "", "-1", ""},
		{"zero width", "https://good.example/a.jpg", "", "", "0"},
		{"huge width", "https://good.example/a.jpg", "", "", "99999999999"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseRequest(c.url, c.mode, c.height, c.width)
			testutil.Assert(t, KindInvalidInput, KindOf(err), "invalid input")
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://good.example/img.jpg")
	testutil.IsNil(t, err, "url parses")

	testutil.IsNil(t, Request{URL: u, Mode: ModeFill}.Validate(), "valid")
	testutil.IsNil(t, Request{URL: u}.Validate(), "empty mode is fit")
	testutil.Assert(t, KindInvalidInput, KindOf(Request{URL: u, Mode: "crop"}.Validate()), "unknown mode")
	testutil.Assert(t, KindInvalidInput, KindOf(Request{Mode: ModeFit}.Validate()), "nil url")
	testutil.Assert(t, KindInvalidInput, KindOf(Request{URL: u, Mode: ModeFit, Height: -3}.Validate()), "negative height")
}
