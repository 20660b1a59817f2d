package monitoring

import (
	"context"
	"strings"
	"testing"

	"github.com/seventv/image-resizer/internal/configure"
	"github.com/seventv/image-resizer/internal/global"
	"github.com/seventv/image-resizer/internal/svc/prometheus"
	"github.com/seventv/image-resizer/internal/testutil"
	"github.com/valyala/fasthttp"
)

func TestHandler(t *testing.T) {
	t.Parallel()

	gCtx, cancel := global.WithCancel(global.New(context.Background(), &configure.Config{}))
	defer cancel()

	gCtx.Inst().Prometheus = prometheus.New(prometheus.Options{})
	gCtx.Inst().Prometheus.StartRequest()("ok")

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/metrics")

	Handler(gCtx)(ctx)

	testutil.Assert(t, fasthttp.StatusOK, ctx.Response.StatusCode(), "response code")
	body := string(ctx.Response.Body())
	testutil.Assert(t, true, strings.Contains(body, "image_resizer_total_requests"), "resize metrics exported")
	testutil.Assert(t, true, strings.Contains(body, "go_goroutines"), "runtime metrics exported")
}
