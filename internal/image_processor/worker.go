package image_processor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/seventv/image-resizer/container"
	"github.com/seventv/image-resizer/resize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Resize validates req, checks its host, fetches, resizes and encodes. It
// returns either a complete Output or a *resize.Error, never both.
func (p *Pipeline) Resize(ctx context.Context, req resize.Request) (out resize.Output, err error) {
	finish := p.prom.StartRequest()

	defer func() {
		if pnk := recover(); pnk != nil {
			err = multierr.Append(resize.NewError(resize.KindInternal, "resize", fmt.Sprintf("panic at runtime: %v", pnk)), err)
		}

		if err != nil {
			out = resize.Output{}
			finish(resize.KindOf(err).String())
		} else {
			finish("ok")
		}
	}()

	if err := req.Validate(); err != nil {
		return resize.Output{}, err
	}

	if !p.allowlist.IsAllowed(req.URL) {
		return resize.Output{}, resize.NewError(resize.KindForbiddenHost, "allowlist", "host is not allowed")
	}

	release, err := p.acquire(ctx)
	if err != nil {
		return resize.Output{}, resize.Wrap(resize.KindInternal, "acquire", "failed at waiting for a job slot", err)
	}
	defer release()

	done := p.prom.FetchImage()

	raster, err := p.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return resize.Output{}, resize.Wrap(resize.KindUpstream, "fetch", "failed at fetch", err)
	}

	done()

	p.prom.TotalBytesDownloaded(raster.Size)
	p.prom.InputFileType(raster.Format)

	zap.S().Debugw("fetched image",
		"host", req.URL.Hostname(),
		"format", raster.Format,
		"width", raster.Width(),
		"height", raster.Height(),
		"size", raster.Size,
	)

	done = p.prom.ResizeImage()

	img, err := p.resizer.Resize(raster.Image, req.Mode, req.Height, req.Width)
	if err != nil {
		return resize.Output{}, resize.Wrap(resize.KindInternal, "resize", "failed at resize", err)
	}

	done()

	done = p.prom.EncodeImage()

	buf := bytes.Buffer{}
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return resize.Output{}, resize.Wrap(resize.KindInternal, "encode", "failed at jpeg encode", err)
	}

	done()

	p.prom.TotalBytesServed(buf.Len())

	b := img.Bounds()

	zap.S().Debugw("resized image",
		"mode", req.Mode,
		"width", b.Dx(),
		"height", b.Dy(),
		"size", buf.Len(),
	)

	return resize.Output{
		Data:        buf.Bytes(),
		ContentType: container.MimeJPEG,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}
