package health

import (
	"github.com/seventv/image-resizer/internal/global"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Handler reports unhealthy until the resize dependencies are wired, and
// once the process is shutting down.
func Handler(gCtx global.Context) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		defer func() {
			if err := recover(); err != nil {
				zap.S().Errorw("panic in health",
					"panic", err,
				)
			}
		}()

		inst := gCtx.Inst()
		ready := inst.Allowlist != nil && inst.Fetcher != nil && inst.Scaler != nil

		if !ready || gCtx.Err() != nil {
			zap.S().Warnw("health check failed",
				"ready", ready,
				"shutting_down", gCtx.Err() != nil,
			)
			ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
			return
		}

		ctx.SetStatusCode(fasthttp.StatusOK)
	}
}

func New(gCtx global.Context) <-chan struct{} {
	done := make(chan struct{})

	srv := fasthttp.Server{
		Handler:          Handler(gCtx),
		GetOnly:          true,
		DisableKeepalive: true,
	}

	go func() {
		defer close(done)
		zap.S().Infow("Health enabled",
			"bind", gCtx.Config().Health.Bind,
		)

		if err := srv.ListenAndServe(gCtx.Config().Health.Bind); err != nil {
			zap.S().Fatalw("failed to bind health",
				"error", err,
			)
		}
	}()

	go func() {
		<-gCtx.Done()

		_ = srv.Shutdown()
	}()

	return done
}
