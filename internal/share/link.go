package share

import (
	"net"
	"net/url"
	"strings"
)

// QueryParam is the link query parameter that carries a shared id.
const QueryParam = "pathway"

// DefaultBase is used for links when no share server is configured. It is
// the address the share server listens on by default.
const DefaultBase = "http://localhost:8080"

// BaseForListen returns the base URL links should use when the share
// server listens on addr. Wildcard hosts map to localhost.
func BaseForListen(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return DefaultBase
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// ShareLink builds the public link for id.
func ShareLink(base, id string) string {
	if base == "" {
		base = DefaultBase
	}
	return strings.TrimRight(base, "/") + "/?" + url.Values{QueryParam: {id}}.Encode()
}

// Location is the link the application was started with.
type Location struct {
	u *url.URL
}

// ParseLocation parses raw. An empty or unparsable link yields a Location
// without a shared id.
func ParseLocation(raw string) *Location {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		u = &url.URL{}
	}
	return &Location{u: u}
}

// LocationForID returns a Location carrying id on base.
func LocationForID(base, id string) *Location {
	return ParseLocation(ShareLink(base, id))
}

// SharedID returns the pathway id in the link, or "".
func (l *Location) SharedID() string {
	if l == nil || l.u == nil {
		return ""
	}
	return strings.TrimSpace(l.u.Query().Get(QueryParam))
}

// StripSharedID removes the shared id so the link no longer points at a
// public pathway.
func (l *Location) StripSharedID() {
	if l == nil || l.u == nil {
		return
	}
	q := l.u.Query()
	if !q.Has(QueryParam) {
		return
	}
	q.Del(QueryParam)
	l.u.RawQuery = q.Encode()
}

func (l *Location) String() string {
	if l == nil || l.u == nil {
		return ""
	}
	return l.u.String()
}
