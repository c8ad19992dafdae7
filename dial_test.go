// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"errors"
	"net/url"
	"reflect"
	"testing"
)

func TestDialRejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"", "://nohost", "https://", "ftp://relay.example", "relay.example:8545"} {
		if _, err := Dial(raw); err == nil {
			t.Errorf("Dial(%q) succeeded", raw)
		}
	}
}

func TestAvailableTransports(t *testing.T) {
	if got := AvailableTransports(); !reflect.DeepEqual(got, []string{"http", "https"}) {
		t.Errorf("AvailableTransports() = %v", got)
	}
	if !HasTransport(TransportHTTPS) || HasTransport("ws") {
		t.Error("HasTransport mismatch")
	}
}

func TestConstructionFailureIsPerKind(t *testing.T) {
	errInit := errors.New("tls init failed")
	registerTransport("broken", func(*url.URL, *dialOptions) (Client, error) { return nil, errInit })
	t.Cleanup(func() {
		transportsMu.Lock()
		delete(transports, "broken")
		transportsMu.Unlock()
	})

	fb := newFakeBuilder(t, 200, `{}`)
	r := testRegistry(map[Kind]string{
		Titan:  fb.URL,
		Beaver: "broken://relay.example",
		Rsync:  fb.URL,
	})

	_, err := r.Build(Beaver)
	var ce *ConstructionError
	if !errors.As(err, &ce) || ce.Kind != Beaver || !errors.Is(err, errInit) {
		t.Fatalf("err = %v, want ConstructionError for beaver wrapping errInit", err)
	}

	builders := r.Builders()
	if len(builders) != 2 || builders[0].Kind() != Titan || builders[1].Kind() != Rsync {
		t.Fatalf("builders = %v, want titan and rsync", builders)
	}
}
