// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"fmt"
	"net/url"
)

// Dial opens a client bound to rawURL. The transport is picked by scheme.
// No network I/O happens here; the first Call establishes the connection.
func Dial(rawURL string, opts ...DialOption) (Client, error) {
	uri, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if uri.Host == "" {
		return nil, fmt.Errorf("invalid url %q: missing host", rawURL)
	}

	dial, ok := lookupTransport(uri.Scheme)
	if !ok {
		return nil, fmt.Errorf("unknown transport: %s", uri.Scheme)
	}
	return dial(uri, newDialOptions(opts))
}
