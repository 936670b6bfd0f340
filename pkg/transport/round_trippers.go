package transport

import (
	"net/http"
)

// HeaderOption sets a single header on an outgoing request.
type HeaderOption func(h http.Header)

type headersRoundTripper struct {
	next    http.RoundTripper
	options []HeaderOption
}

// NewHeadersRoundTripper returns a RoundTripper that applies opts to every request before handing it to next.
// The request is cloned first, as RoundTrippers must not modify the caller's request.
func NewHeadersRoundTripper(next http.RoundTripper, opts ...HeaderOption) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &headersRoundTripper{next: next, options: opts}
}

func (rt *headersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for _, opt := range rt.options {
		opt(req.Header)
	}
	return rt.next.RoundTrip(req)
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) HeaderOption {
	return func(h http.Header) {
		h.Set("User-Agent", userAgent)
	}
}

// WithAccept sets the Accept header.
func WithAccept(accept string) HeaderOption {
	return func(h http.Header) {
		h.Set("Accept", accept)
	}
}

// WithAcceptLanguage sets the Accept-Language header.
func WithAcceptLanguage(acceptLanguage string) HeaderOption {
	return func(h http.Header) {
		h.Set("Accept-Language", acceptLanguage)
	}
}
