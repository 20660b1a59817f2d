package image_processor

import (
	"context"
	"runtime"

	"github.com/seventv/image-resizer/internal/allowlist"
	"github.com/seventv/image-resizer/internal/global"
	"github.com/seventv/image-resizer/internal/instance"
	"github.com/seventv/image-resizer/internal/resizer"
	"github.com/seventv/image-resizer/internal/svc/prometheus"
	"go.uber.org/zap"
)

const DefaultJPEGQuality = 75

type Options struct {
	Allowlist   *allowlist.Allowlist
	Fetcher     instance.Fetcher
	Scaler      instance.Scaler
	Prometheus  instance.Prometheus
	JPEGQuality int
	Jobs        int
	MaxPixels   int
}

// Pipeline turns a resize request into an encoded JPEG. It holds no
// per-request state; the allow-list, fetcher and scaler are shared read-only.
type Pipeline struct {
	allowlist *allowlist.Allowlist
	fetcher   instance.Fetcher
	resizer   resizer.Resizer
	prom      instance.Prometheus
	quality   int
	slots     chan struct{}
}

func New(o Options) *Pipeline {
	jobCount := o.Jobs
	if jobCount <= 0 {
		jobCount = runtime.GOMAXPROCS(0)
	}

	quality := o.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	prom := o.Prometheus
	if prom == nil {
		prom = prometheus.New(prometheus.Options{})
	}

	zap.S().Infof("Starting resize pipeline with %d jobs", jobCount)

	return &Pipeline{
		allowlist: o.Allowlist,
		fetcher:   o.Fetcher,
		resizer:   resizer.New(o.Scaler, o.MaxPixels),
		prom:      prom,
		quality:   quality,
		slots:     make(chan struct{}, jobCount),
	}
}

// NewFromGlobal wires a Pipeline from the process instances and config.
func NewFromGlobal(gCtx global.Context) *Pipeline {
	return New(Options{
		Allowlist:   gCtx.Inst().Allowlist,
		Fetcher:     gCtx.Inst().Fetcher,
		Scaler:      gCtx.Inst().Scaler,
		Prometheus:  gCtx.Inst().Prometheus,
		JPEGQuality: gCtx.Config().Image.JPEGQuality,
		Jobs:        gCtx.Config().Worker.Jobs,
		MaxPixels:   gCtx.Config().Image.MaxPixels,
	})
}

// acquire blocks until one of the job slots is free. Decoded rasters are
// only held while a slot is, which bounds peak memory.
func (p *Pipeline) acquire(ctx context.Context) (func(), error) {
	select {
	case p.slots <- struct{}{}:
		return func() { <-p.slots }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
