package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/seventv/image-resizer/container"
	"github.com/seventv/image-resizer/internal/instance"
	"github.com/seventv/image-resizer/internal/resizer"
	"github.com/seventv/image-resizer/resize"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	_ "golang.org/x/image/webp"
)

var (
	ErrContentLengthUnknown = errors.New("content length missing or not positive")
	ErrBodyTooLarge         = errors.New("response body exceeds the configured limit")
	ErrStatus               = errors.New("request was not successful")
	ErrHostMismatch         = errors.New("request host differs from the checked url")
	ErrTooManyPixels        = errors.New("source exceeds the pixel limit")
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 32 << 20
)

type Options struct {
	Timeout     time.Duration
	MaxBodySize int
	UserAgent   string
	MaxPixels   int
}

type Fetcher struct {
	client    *fasthttp.Client
	timeout   time.Duration
	maxPixels int
}

var _ instance.Fetcher = (*Fetcher)(nil)

func New(o Options) *Fetcher {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxBodySize <= 0 {
		o.MaxBodySize = DefaultMaxBodySize
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = resizer.DefaultMaxPixels
	}

	return &Fetcher{
		client: &fasthttp.Client{
			Name:                     o.UserAgent,
			NoDefaultUserAgentHeader: o.UserAgent == "",
			ReadTimeout:              o.Timeout,
			WriteTimeout:             o.Timeout,
			MaxResponseBodySize:      o.MaxBodySize,
		},
		timeout:   o.Timeout,
		maxPixels: o.MaxPixels,
	}
}

// Fetch downloads u and decodes it. Every failure is a *resize.Error.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) (resize.Raster, error) {
	raw, err := f.Download(ctx, u)
	if err != nil {
		return resize.Raster{}, err
	}

	img, mime, err := Decode(raw, f.maxPixels)
	if err != nil {
		return resize.Raster{}, err
	}

	return resize.Raster{
		Image:  img,
		Format: mime,
		Size:   len(raw),
	}, nil
}

// Download issues one GET for u. Redirects are not followed since the
// target host would escape the allow-list check.
func (f *Fetcher) Download(ctx context.Context, u *url.URL) ([]byte, error) {
	if u == nil {
		return nil, resize.NewError(resize.KindInvalidInput, "download", "missing url")
	}

	if err := ctx.Err(); err != nil {
		return nil, resize.Wrap(resize.KindUpstream, "download", "request cancelled", err)
	}

	deadline := time.Now().Add(f.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURI(u))
	req.Header.SetMethod(fasthttp.MethodGet)

	// fasthttp parses the authority on its own; it must agree with the host
	// the allow-list saw.
	if host := string(req.URI().Host()); !strings.EqualFold(host, u.Host) {
		return nil, resize.Wrap(resize.KindForbiddenHost, "download", fmt.Sprintf("request host %q differs from %q", host, u.Host), ErrHostMismatch)
	}

	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		switch {
		case errors.Is(err, fasthttp.ErrBodyTooLarge):
			err = ErrBodyTooLarge
		case errors.Is(err, fasthttp.ErrTimeout):
			err = fmt.Errorf("no response within %s: %w", f.timeout, err)
		}

		return nil, resize.Wrap(resize.KindUpstream, "download", "failed at request", err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		zap.S().Debugw("upstream returned non-success status",
			"host", u.Hostname(),
			"status", status,
		)

		return nil, resize.Wrap(resize.KindUpstream, "download", fmt.Sprintf("upstream responded %d", status), ErrStatus)
	}

	length := resp.Header.ContentLength()
	if length <= 0 {
		return nil, resize.Wrap(resize.KindUpstream, "download", "failed at content length", ErrContentLengthUnknown)
	}

	body := resp.Body()
	raw := make([]byte, 0, length)
	raw = append(raw, body...)

	if len(raw) != length {
		zap.S().Debugw("body length differs from declared length",
			"host", u.Hostname(),
			"declared", length,
			"read", len(raw),
		)
	}

	return raw, nil
}

// requestURI serialises only the parts of u that are sent upstream. The
// fragment and userinfo are dropped, and an empty path becomes "/" so nothing
// after the host can be read as part of the authority.
func requestURI(u *url.URL) string {
	c := *u
	c.User = nil
	c.Fragment = ""
	c.RawFragment = ""
	if c.Path == "" {
		c.Path = "/"
		c.RawPath = ""
	}

	return c.String()
}

// Decode sniffs the container before decoding so unsupported formats fail
// with a readable message. The header is read first and sources larger than
// maxPixels are refused before any pixel is decoded.
func Decode(raw []byte, maxPixels int) (image.Image, string, error) {
	match := container.Match(raw)
	if !container.Decodable(match) {
		return nil, "", resize.NewError(resize.KindDecode, "decode", fmt.Sprintf("unsupported image format: %s", match.Extension))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", resize.Wrap(resize.KindDecode, "decode", fmt.Sprintf("failed at %s header", match.Extension), err)
	}

	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, "", resize.Wrap(resize.KindDecode, "decode", fmt.Sprintf("source is %dx%d, over the %d pixel limit", cfg.Width, cfg.Height, maxPixels), ErrTooManyPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", resize.Wrap(resize.KindDecode, "decode", fmt.Sprintf("failed at %s decode", match.Extension), err)
	}

	return img, match.MIME.Value, nil
}
