// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap/zaptest/observer"
)

// signedTx returns an EIP-155 signed transfer and its hash.
func signedTx(t testing.TB) ([]byte, common.Hash) {
	t.Helper()
	return signedTxWithData(t, nil)
}

func signedTxWithData(t testing.TB, data []byte) ([]byte, common.Hash) {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    7,
		GasPrice: big.NewInt(1_000_000_000),
		Gas:      21_000 + 16*uint64(len(data)),
		To:       &to,
		Value:    big.NewInt(1),
		Data:     data,
	}), types.NewEIP155Signer(big.NewInt(1)), key)
	if err != nil {
		t.Fatalf("SignTx: %v", err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	return raw, tx.Hash()
}

// rpcCall is what a builder sees on the wire.
type rpcCall struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type fakeBuilder struct {
	*httptest.Server
	calls  atomic.Int32
	last   atomic.Pointer[rpcCall]
	header atomic.Pointer[http.Header]
}

// newFakeBuilder serves body with status to every request.
func newFakeBuilder(t testing.TB, status int, body string) *fakeBuilder {
	t.Helper()
	fb := &fakeBuilder{}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.calls.Add(1)
		h := r.Header.Clone()
		fb.header.Store(&h)
		data, _ := io.ReadAll(r.Body)
		var call rpcCall
		if err := json.Unmarshal(data, &call); err == nil {
			fb.last.Store(&call)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(fb.Close)
	return fb
}

// testRegistry points kinds at the given URLs. Kinds missing from urls get an
// empty endpoint and fail construction.
func testRegistry(urls map[Kind]string, opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	r.endpoint = func(k Kind) Endpoint {
		u, ok := urls[k]
		if !ok {
			return Endpoint{}
		}
		return Endpoint{URL: u, Method: k.Endpoint().Method}
	}
	return r
}

func testBuilder(t testing.TB, kind Kind, url string, opts ...RegistryOption) *Builder {
	t.Helper()
	b, err := testRegistry(map[Kind]string{kind: url}, opts...).Build(kind)
	if err != nil {
		t.Fatalf("Build(%s): %v", kind, err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// builderLogs returns entries with message msg tagged with builder.
func builderLogs(logs *observer.ObservedLogs, msg, builder string) []observer.LoggedEntry {
	var out []observer.LoggedEntry
	for _, e := range logs.FilterMessage(msg).All() {
		if e.ContextMap()["builder"] == builder {
			out = append(out, e)
		}
	}
	return out
}
