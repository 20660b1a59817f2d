package instance

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Prometheus interface {
	Register(r prometheus.Registerer)

	StartRequest() func(outcome string)

	FetchImage() func()
	ResizeImage() func()
	EncodeImage() func()

	TotalBytesDownloaded(int)
	TotalBytesServed(int)
	InputFileType(mime string)
}
