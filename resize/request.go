package resize

import (
	"fmt"
	"net/url"
	"strconv"
)

type Mode string

const (
	ModeFit  Mode = "fit"
	ModeFill Mode = "fill"
)

func (m Mode) Valid() bool {
	return m == ModeFit || m == ModeFill
}

// ParseMode maps an empty value to ModeFit.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeFit, nil
	}

	m := Mode(s)
	if !m.Valid() {
		return "", NewError(KindInvalidInput, "parse_mode", fmt.Sprintf("unknown mode %q, expected fit or fill", s))
	}

	return m, nil
}

// Request describes one resize call. A zero Height or Width means the
// dimension was not given and defaults to the source image's.
type Request struct {
	URL    *url.URL
	Mode   Mode
	Height int
	Width  int
}

// ParseRequest builds a Request from raw query values.
func ParseRequest(rawURL, mode, height, width string) (Request, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return Request{}, err
	}

	m, err := ParseMode(mode)
	if err != nil {
		return Request{}, err
	}

	h, err := parseDimension("height", height)
	if err != nil {
		return Request{}, err
	}

	w, err := parseDimension("width", width)
	if err != nil {
		return Request{}, err
	}

	return Request{
		URL:    u,
		Mode:   m,
		Height: h,
		Width:  w,
	}, nil
}

// ParseURL accepts absolute http or https URLs with a host.
func ParseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, NewError(KindInvalidInput, "parse_url", "missing url")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, Wrap(KindInvalidInput, "parse_url", "invalid url", err)
	}

	if err := validateURL(u); err != nil {
		return nil, err
	}

	return u, nil
}

func validateURL(u *url.URL) error {
	if u == nil {
		return NewError(KindInvalidInput, "parse_url", "missing url")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return NewError(KindInvalidInput, "parse_url", "url must be absolute http or https")
	}

	if u.Hostname() == "" {
		return NewError(KindInvalidInput, "parse_url", "url has no host")
	}

	return nil
}

func parseDimension(name, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(raw, 10, 31)
	if err != nil {
		return 0, Wrap(KindInvalidInput, "parse_"+name, fmt.Sprintf("%s must be a positive integer", name), err)
	}

	if v == 0 {
		return 0, NewError(KindInvalidInput, "parse_"+name, fmt.Sprintf("%s must be a positive integer", name))
	}

	return int(v), nil
}

// Validate checks a Request that was not built by ParseRequest. An empty
// Mode is accepted as ModeFit.
func (r Request) Validate() error {
	if r.Mode != "" && !r.Mode.Valid() {
		return NewError(KindInvalidInput, "validate", fmt.Sprintf("unknown mode %q, expected fit or fill", string(r.Mode)))
	}

	if err := validateURL(r.URL); err != nil {
		return err
	}

	if r.Height < 0 || r.Width < 0 {
		return NewError(KindInvalidInput, "validate", "dimensions must be positive")
	}

	return nil
}
