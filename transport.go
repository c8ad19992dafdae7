// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"net/url"
	"sort"
	"sync"
)

// Transport schemes
const (
	TransportHTTPS = "https" // JSON-RPC over TLS, used by every builder
	TransportHTTP  = "http"  // plain JSON-RPC, local relays and tests
)

type dialFunc func(uri *url.URL, o *dialOptions) (Client, error)

var (
	transportsMu sync.RWMutex
	transports   = map[string]dialFunc{
		TransportHTTPS: dialJSON,
		TransportHTTP:  dialJSON,
	}
)

// registerTransport registers a dialer for a URL scheme
func registerTransport(scheme string, dial dialFunc) {
	transportsMu.Lock()
	defer transportsMu.Unlock()
	transports[scheme] = dial
}

func lookupTransport(scheme string) (dialFunc, bool) {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	dial, ok := transports[scheme]
	return dial, ok
}

// AvailableTransports returns the registered schemes, sorted
func AvailableTransports() []string {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	result := make([]string, 0, len(transports))
	for name := range transports {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// HasTransport checks if a transport is available
func HasTransport(scheme string) bool {
	_, ok := lookupTransport(scheme)
	return ok
}
