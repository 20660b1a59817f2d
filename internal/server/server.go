package server

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/seventv/image-resizer/internal/global"
	"github.com/seventv/image-resizer/resize"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Resizer is the pipeline the handler calls into.
type Resizer interface {
	Resize(ctx context.Context, req resize.Request) (resize.Output, error)
}

const ResizePath = "/resize"

// StatusFor maps an error kind onto the HTTP status returned to callers.
func StatusFor(kind resize.ErrorKind) int {
	switch kind {
	case resize.KindInvalidInput:
		return fasthttp.StatusBadRequest
	case resize.KindForbiddenHost:
		return fasthttp.StatusForbidden
	case resize.KindUpstream:
		return fasthttp.StatusBadGateway
	case resize.KindDecode:
		return fasthttp.StatusUnsupportedMediaType
	default:
		return fasthttp.StatusInternalServerError
	}
}

// publicMessage is what the caller sees. Internal errors and the allow-list
// are not described in any detail.
func publicMessage(err error) string {
	switch resize.KindOf(err) {
	case resize.KindInvalidInput:
		var e *resize.Error
		if errors.As(err, &e) {
			return e.Message
		}
		return "invalid request"
	case resize.KindForbiddenHost:
		return "host is not allowed"
	case resize.KindUpstream:
		return "failed to fetch image"
	case resize.KindDecode:
		return "source is not a supported image"
	default:
		return "internal server error"
	}
}

type handler struct {
	gCtx    global.Context
	resizer Resizer
}

func Handler(gCtx global.Context, r Resizer) fasthttp.RequestHandler {
	h := &handler{
		gCtx:    gCtx,
		resizer: r,
	}

	return h.serve
}

func (h *handler) serve(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != ResizePath {
		writeError(ctx, "not found", fasthttp.StatusNotFound)
		return
	}

	if !ctx.IsGet() {
		ctx.Response.Header.Set(fasthttp.HeaderAllow, fasthttp.MethodGet)
		writeError(ctx, "method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	h.resize(ctx)
}

func (h *handler) resize(ctx *fasthttp.RequestCtx) {
	requestID := uuid.New().String()
	ctx.Response.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	args := ctx.QueryArgs()

	out, err := func() (resize.Output, error) {
		req, err := resize.ParseRequest(
			string(args.Peek("url")),
			string(args.Peek("mode")),
			string(args.Peek("height")),
			string(args.Peek("width")),
		)
		if err != nil {
			return resize.Output{}, err
		}

		lCtx, cancel := context.WithCancel(h.gCtx)
		defer cancel()

		return h.resizer.Resize(lCtx, req)
	}()

	if err != nil {
		kind := resize.KindOf(err)
		status := StatusFor(kind)

		log := zap.S().Infow
		if kind == resize.KindInternal {
			log = zap.S().Errorw
		}
		log("resize failed",
			"request_id", requestID,
			"kind", kind.String(),
			"status", status,
			"error", err,
			"duration", time.Since(start),
		)

		writeError(ctx, publicMessage(err), status)
		return
	}

	zap.S().Debugw("resize served",
		"request_id", requestID,
		"width", out.Width,
		"height", out.Height,
		"size", len(out.Data),
		"duration", time.Since(start),
	)

	ctx.SetContentType(out.ContentType)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(out.Data)
}

// writeError keeps headers already set, unlike RequestCtx.Error.
func writeError(ctx *fasthttp.RequestCtx, msg string, status int) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString(msg)
}

// New serves the resize endpoint on the configured bind until gCtx is done.
func New(gCtx global.Context, r Resizer) <-chan struct{} {
	srv := fasthttp.Server{
		Handler:      Handler(gCtx, r),
		Name:         "image-resizer",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		zap.S().Infow("Resize server enabled",
			"bind", gCtx.Config().Http.Bind,
		)

		if err := srv.ListenAndServe(gCtx.Config().Http.Bind); err != nil {
			zap.S().Fatalw("failed to bind resize server",
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
