package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/seventv/image-resizer/internal/instance"
	tu "github.com/seventv/image-resizer/internal/testutil"
)

func TestRequests(t *testing.T) {
	t.Parallel()

	inst := New(Options{Labels: prometheus.Labels{"pod": "test"}})

	registry := prometheus.NewRegistry()
	inst.Register(registry)

	inst.StartRequest()("ok")
	inst.StartRequest()("ok")
	inst.StartRequest()("forbidden_host")

	m := inst.(*Instance)
	tu.Assert(t, 2.0, testutil.ToFloat64(m.totalRequests.WithLabelValues("ok")), "ok requests")
	tu.Assert(t, 1.0, testutil.ToFloat64(m.totalRequests.WithLabelValues("forbidden_host")), "forbidden requests")
	tu.Assert(t, 0.0, testutil.ToFloat64(m.currentRequests), "no request in flight")
}

func TestBytes(t *testing.T) {
	t.Parallel()

	var inst instance.Prometheus = New(Options{})
	m := inst.(*Instance)

	inst.TotalBytesDownloaded(100)
	inst.TotalBytesServed(40)
	inst.InputFileType("image/png")

	tu.Assert(t, 100.0, testutil.ToFloat64(m.totalBytesDownloaded), "downloaded")
	tu.Assert(t, 40.0, testutil.ToFloat64(m.totalBytesServed), "served")
	tu.Assert(t, 1.0, testutil.ToFloat64(m.inputFileTypes.WithLabelValues("image/png")), "png inputs")
}
