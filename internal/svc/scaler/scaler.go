// Package scaler holds the resampling backends the resizer can run on.
// Every backend uses a Lanczos-class (or comparable cubic) filter.
package scaler

import (
	"fmt"
	"sort"

	"github.com/seventv/image-resizer/internal/instance"
)

const Default = "imaging"

var backends = map[string]func() instance.Scaler{
	"imaging": func() instance.Scaler { return Imaging{} },
	"gift":    func() instance.Scaler { return Gift{} },
	"nfnt":    func() instance.Scaler { return Nfnt{} },
	"bild":    func() instance.Scaler { return Bild{} },
	"xdraw":   func() instance.Scaler { return XDraw{} },
}

// New returns the backend called name, the default one for "".
func New(name string) (instance.Scaler, error) {
	if name == "" {
		name = Default
	}

	mk, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown scaler %q, expected one of %v", name, Names())
	}

	return mk(), nil
}

func Names() []string {
	names := make([]string, 0, len(backends))
	for k := range backends {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}
