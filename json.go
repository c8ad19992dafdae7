// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	rpc "github.com/gorilla/rpc/v2/json2"
)

var (
	ErrResponseTooLarge = errors.New("privtx: response body exceeds limit")
	ErrMalformedBody    = errors.New("privtx: response body is not a JSON object")
)

// newHTTPClient creates the per-endpoint HTTP client. Each builder gets its
// own transport so connections are never shared between builders.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

// CleanlyCloseBody drains and closes an HTTP response body to prevent
// HTTP/2 GOAWAY errors caused by closing bodies with unread data.
// See: https://github.com/golang/go/issues/46071
func CleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}

// jsonClient implements Client with JSON-RPC 2.0 over HTTP(S)
type jsonClient struct {
	uri     *url.URL
	http    *http.Client
	codec   Codec
	headers http.Header
	limit   int64
	owned   bool
}

func dialJSON(uri *url.URL, o *dialOptions) (Client, error) {
	c := &jsonClient{
		uri:     uri,
		http:    o.httpClient,
		codec:   o.codec,
		headers: o.headers.Clone(),
		limit:   o.maxResponseBytes,
	}
	if c.http == nil {
		c.http = newHTTPClient()
		c.owned = true
	}
	if c.limit <= 0 {
		c.limit = MaxResponseBytes
	}
	return c, nil
}

func (c *jsonClient) URL() string {
	return c.uri.String()
}

func (c *jsonClient) Call(ctx context.Context, method string, params interface{}) (*Response, error) {
	requestBodyBytes, err := rpc.EncodeClientRequest(method, params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode client params: %w", err)
	}

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.uri.String(),
		bytes.NewReader(requestBodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header = c.headers.Clone()
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to issue request: %w", err)
	}
	defer CleanlyCloseBody(resp.Body)

	// Return an error for any non successful status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("received status code: %d", resp.StatusCode)
	}

	// Read one byte past the limit to tell "exactly at limit" from "over".
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.limit {
		return nil, ErrResponseTooLarge
	}

	var envelope map[string]json.RawMessage
	if err := c.codec.Decode(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if envelope == nil {
		return nil, ErrMalformedBody
	}
	return &Response{Body: body, Envelope: envelope}, nil
}

func (c *jsonClient) Close() error {
	if c.owned {
		c.http.CloseIdleConnections()
	}
	return nil
}
