package global

import (
	"github.com/seventv/image-resizer/internal/allowlist"
	"github.com/seventv/image-resizer/internal/instance"
)

type Instances struct {
	Allowlist  *allowlist.Allowlist
	Fetcher    instance.Fetcher
	Scaler     instance.Scaler
	Prometheus instance.Prometheus
}
