package allowlist

import (
	"errors"
	"net/url"
	"strings"
)

var ErrEmpty = errors.New("allowlist: no hosts configured")

// Allowlist is the set of hosts images may be fetched from. It is built once
// at startup and never modified, so it is safe to share between requests.
type Allowlist struct {
	hosts map[string]struct{}
}

// New drops blank entries and fails if nothing is left. Hosts are matched
// exactly and case-sensitively.
func New(hosts []string) (*Allowlist, error) {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}

		set[h] = struct{}{}
	}

	if len(set) == 0 {
		return nil, ErrEmpty
	}

	return &Allowlist{hosts: set}, nil
}

func (a *Allowlist) IsAllowed(u *url.URL) bool {
	if a == nil || u == nil {
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}

	_, ok := a.hosts[host]

	return ok
}

func (a *Allowlist) Len() int {
	if a == nil {
		return 0
	}

	return len(a.hosts)
}
