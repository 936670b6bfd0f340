package transport_test

import (
	"net/http"
	"testing"

	"github.com/ogero/ghibli-films/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestHeadersRoundTripper(t *testing.T) {
	var seen *http.Request
	next := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		seen = req
		return &http.Response{StatusCode: http.StatusOK}, nil
	})

	rt := transport.NewHeadersRoundTripper(next,
		transport.WithUserAgent("TestAgent"),
		transport.WithAccept("application/json"),
		transport.WithAcceptLanguage("en-US"))

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	res, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.NotNil(t, seen)
	assert.Equal(t, "TestAgent", seen.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", seen.Header.Get("Accept"))
	assert.Equal(t, "en-US", seen.Header.Get("Accept-Language"))
}

func TestHeadersRoundTripper_DoesNotMutateCallerRequest(t *testing.T) {
	next := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK}, nil
	})

	rt := transport.NewHeadersRoundTripper(next, transport.WithUserAgent("TestAgent"))

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("User-Agent"))
}
