// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"errors"
	"net/url"
	"reflect"
	"testing"
)

func TestKindsStableOrder(t *testing.T) {
	want := []Kind{Titan, Beaver, Rsync}
	for i := 0; i < 3; i++ {
		if got := Kinds(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Kinds() = %v, want %v", got, want)
		}
	}
}

func TestEndpoints(t *testing.T) {
	methods := map[Kind]string{
		Titan:  "eth_sendPrivateTransaction",
		Beaver: "eth_sendPrivateRawTransaction",
		Rsync:  "eth_sendPrivateRawTransaction",
	}
	for _, kind := range Kinds() {
		e := kind.Endpoint()
		if e != kind.Endpoint() {
			t.Errorf("%s: Endpoint not stable", kind)
		}
		if e.Method != methods[kind] {
			t.Errorf("%s: method = %q, want %q", kind, e.Method, methods[kind])
		}
		u, err := url.Parse(e.URL)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			t.Errorf("%s: bad url %q", kind, e.URL)
		}
	}
}

func TestKindString(t *testing.T) {
	if Titan.String() != "titan" || Beaver.String() != "beaver" || Rsync.String() != "rsync" {
		t.Errorf("names = %s %s %s", Titan, Beaver, Rsync)
	}
	if Kind(99).Valid() || Kind(99).String() != "unknown" {
		t.Error("Kind(99) treated as valid")
	}
	if Kind(99).Endpoint() != (Endpoint{}) {
		t.Error("Kind(99) has an endpoint")
	}
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := NewRegistry().Build(Kind(99))
	var ce *ConstructionError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConstructionError", err)
	}
}

func TestBuildRealEndpointsWithoutIO(t *testing.T) {
	// dialing is lazy: building the fixed endpoints must not touch the network
	builders := NewRegistry().Builders()
	if len(builders) != len(Kinds()) {
		t.Fatalf("built %d builders, want %d", len(builders), len(Kinds()))
	}
	for _, b := range builders {
		if b.method != b.Kind().Endpoint().Method {
			t.Errorf("%s: method = %q", b.Kind(), b.method)
		}
		if b.client.URL() != b.Kind().Endpoint().URL {
			t.Errorf("%s: url = %q", b.Kind(), b.client.URL())
		}
	}
}
