// Package httpclient defines the transport seam the form client submits
// through. Code accepts the Client interface so tests can substitute a stub
// for the real network.
package httpclient

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client executes prepared HTTP requests.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps the standard http.Client with a request timeout,
// so a stalled server cannot hold a form submission open indefinitely.
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient creates an HTTP client with the default timeout.
func NewStandardClient() Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
