package instance

import (
	"context"
	"net/url"

	"github.com/seventv/image-resizer/resize"
)

type Fetcher interface {
	Fetch(ctx context.Context, u *url.URL) (resize.Raster, error)
}
