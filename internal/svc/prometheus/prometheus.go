package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/seventv/image-resizer/internal/instance"
)

type Options struct {
	Labels prometheus.Labels
}

func copyLabels(p prometheus.Labels) prometheus.Labels {
	x := prometheus.Labels{}
	for k, v := range p {
		x[k] = v
	}

	return x
}

func New(o Options) instance.Prometheus {
	totalRequests := copyLabels(o.Labels)
	currentRequests := copyLabels(o.Labels)
	requestDurationSeconds := copyLabels(o.Labels)
	totalBytesDownloaded := copyLabels(o.Labels)
	totalBytesServed := copyLabels(o.Labels)
	inputFileTypes := copyLabels(o.Labels)
	fetchImageDuration := copyLabels(o.Labels)
	resizeImageDuration := copyLabels(o.Labels)
	encodeImageDuration := copyLabels(o.Labels)

	totalBytesDownloaded["state"] = "downloaded"
	totalBytesServed["state"] = "served"

	return &Instance{
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "image_resizer",
			Name:        "total_requests",
			Help:        "The total number of resize requests by outcome",
			ConstLabels: totalRequests,
		}, []string{"outcome"}),
		currentRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "image_resizer",
			Name:        "current_requests",
			Help:        "The current number of resize requests",
			ConstLabels: currentRequests,
		}),
		requestDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resizer",
			Name:        "request_duration_seconds",
			Help:        "The seconds spent serving resize requests",
			ConstLabels: requestDurationSeconds,
		}),
		fetchImageDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resizer",
			Name:        "fetch_image_duration_seconds",
			Help:        "The seconds spent downloading and decoding source images",
			ConstLabels: fetchImageDuration,
		}),
		resizeImageDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resizer",
			Name:        "resize_image_duration_seconds",
			Help:        "The seconds spent resizing images",
			ConstLabels: resizeImageDuration,
		}),
		encodeImageDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resizer",
			Name:        "encode_image_duration_seconds",
			Help:        "The seconds spent encoding jpeg output",
			ConstLabels: encodeImageDuration,
		}),
		totalBytesDownloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "image_resizer",
			Name:        "total_bytes",
			Help:        "The total number of bytes transferred",
			ConstLabels: totalBytesDownloaded,
		}),
		totalBytesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "image_resizer",
			Name:        "total_bytes",
			Help:        "The total number of bytes transferred",
			ConstLabels: totalBytesServed,
		}),
		inputFileTypes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "image_resizer",
			Name:        "input_file_types",
			Help:        "The number of source images by content type",
			ConstLabels: inputFileTypes,
		}, []string{"type"}),
	}
}

type Instance struct {
	totalRequests          *prometheus.CounterVec
	currentRequests        prometheus.Gauge
	requestDurationSeconds prometheus.Histogram

	fetchImageDurationSeconds  prometheus.Histogram
	resizeImageDurationSeconds prometheus.Histogram
	encodeImageDurationSeconds prometheus.Histogram

	totalBytesDownloaded prometheus.Counter
	totalBytesServed     prometheus.Counter
	inputFileTypes       *prometheus.CounterVec
}

func (m *Instance) Register(r prometheus.Registerer) {
	r.MustRegister(
		m.totalRequests,
		m.currentRequests,
		m.requestDurationSeconds,

		m.fetchImageDurationSeconds,
		m.resizeImageDurationSeconds,
		m.encodeImageDurationSeconds,

		m.totalBytesDownloaded,
		m.totalBytesServed,
		m.inputFileTypes,
	)
}

// StartRequest returns a func that records the request outcome, either "ok"
// or an error kind.
func (m *Instance) StartRequest() func(outcome string) {
	start := time.Now()
	m.currentRequests.Inc()

	return func(outcome string) {
		m.totalRequests.WithLabelValues(outcome).Inc()
		m.currentRequests.Dec()
		m.requestDurationSeconds.Observe(float64(time.Since(start)/time.Millisecond) / 1000)
	}
}

func (m *Instance) TotalBytesDownloaded(bytes int) {
	m.totalBytesDownloaded.Add(float64(bytes))
}

func (m *Instance) TotalBytesServed(bytes int) {
	m.totalBytesServed.Add(float64(bytes))
}

func (m *Instance) InputFileType(mime string) {
	m.inputFileTypes.WithLabelValues(mime).Inc()
}

func (m *Instance) FetchImage() func() {
	start := time.Now()

	return func() {
		m.fetchImageDurationSeconds.Observe(float64(time.Since(start)/time.Millisecond) / 1000)
	}
}

func (m *Instance) ResizeImage() func() {
	start := time.Now()

	return func() {
		m.resizeImageDurationSeconds.Observe(float64(time.Since(start)/time.Millisecond) / 1000)
	}
}

func (m *Instance) EncodeImage() func() {
	start := time.Now()

	return func() {
		m.encodeImageDurationSeconds.Observe(float64(time.Since(start)/time.Millisecond) / 1000)
	}
}
