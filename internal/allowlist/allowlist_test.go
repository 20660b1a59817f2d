package allowlist

import (
	"net/url"
	"testing"

	"github.com/seventv/image-resizer/internal/testutil"
)

func mustParse(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	testutil.IsNil(t, err, "url parses")

	return u
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	testutil.Assert(t, ErrEmpty, err, "nil list is rejected")

	_, err = New([]string{"", "  "})
	testutil.Assert(t, ErrEmpty, err, "blank entries are rejected")

	a, err := New([]string{"good.example", " cdn.example ", "good.example"})
	testutil.IsNil(t, err, "list builds")
	testutil.Assert(t, 2, a.Len(), "duplicates and whitespace collapse")
}

func TestIsAllowed(t *testing.T) {
	t.Parallel()

	a, err := New([]string{"good.example", "cdn.example"})
	testutil.IsNil(t, err, "list builds")

	cases := []struct {
		name    string
		url     string
		allowed bool
	}{
		{"listed host", "https://good.example/img.jpg", true},
		{"listed host with port", "http://cdn.example:8080/a.png", true},
		{"unlisted host", "https://evil.example/img.jpg", false},
		{"subdomain is not the host", "https://img.good.example/a.jpg", false},
		{"case sensitive", "https://GOOD.example/img.jpg", false},
		{"suffix trick", "https://good.example.evil.example/a.jpg", false},
		{"no host", "file:///etc/passwd", false},
		{"relative", "/img.jpg", false},
		{"userinfo does not count", "https://good.example@evil.example/a.jpg", false},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			testutil.Assert(t, c.allowed, a.IsAllowed(mustParse(t, c.url)), c.url)
		})
	}

	testutil.Assert(t, false, a.IsAllowed(nil), "nil url")
}
