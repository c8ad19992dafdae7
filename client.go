// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// MaxResponseBytes caps how much of a builder response is read into memory.
const MaxResponseBytes int64 = 10 * 1024 * 1024 // 10 MiB

// DefaultTimeout is the transport timeout applied when no HTTP client is
// supplied. It is the only deadline a builder call is subject to.
const DefaultTimeout = 30 * time.Second

// Client is a connection to one JSON-RPC endpoint.
type Client interface {
	// Call issues exactly one JSON-RPC request and returns the raw response.
	Call(ctx context.Context, method string, params interface{}) (*Response, error)

	// URL returns the endpoint this client is bound to
	URL() string

	// Close releases the underlying transport
	Close() error
}

// Response is the undecoded JSON-RPC response envelope of one call.
type Response struct {
	Body     json.RawMessage
	Envelope map[string]json.RawMessage
}

// DialOption configures client connections
type DialOption func(*dialOptions)

type dialOptions struct {
	codec            Codec
	httpClient       *http.Client
	maxResponseBytes int64
	headers          http.Header
}

func newDialOptions(opts []DialOption) *dialOptions {
	o := &dialOptions{
		codec:            defaultCodec,
		maxResponseBytes: MaxResponseBytes,
		headers:          http.Header{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCodec sets a custom codec for decoding response envelopes
func WithCodec(c Codec) DialOption {
	return func(o *dialOptions) { o.codec = c }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) DialOption {
	return func(o *dialOptions) { o.httpClient = c }
}

// WithMaxResponseBytes overrides the response body cap
func WithMaxResponseBytes(n int64) DialOption {
	return func(o *dialOptions) { o.maxResponseBytes = n }
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) DialOption {
	return func(o *dialOptions) { o.headers.Add(key, value) }
}
