package transport

import (
	"net/http"

	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// SessionReader is the slice of the session store the bearer transport needs.
type SessionReader interface {
	Current() *domain.User
}

// BearerTransport decorates outgoing requests with the current session's
// bearer token. Requests are cloned before modification; the original is
// never touched. With no session, or a session without a token, requests pass
// through unchanged.
//
// Sessions is assigned after construction: the session store needs an
// http.Client built on this transport before it exists itself.
type BearerTransport struct {
	Sessions SessionReader
	Next     http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	if t.Sessions == nil {
		return next.RoundTrip(req)
	}
	current := t.Sessions.Current()
	if current == nil || current.Token == "" {
		return next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+current.Token)
	return next.RoundTrip(clone)
}
