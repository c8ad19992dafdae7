// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package privtx sends signed transactions privately to block builders.
//
// A transaction submitted through eth_sendPrivateRawTransaction is relayed
// to every known builder at once instead of the public mempool. The call
// succeeds if at least one builder accepts it.
//
// # Usage
//
// Mounting the method on an existing router:
//
//	registry := privtx.NewRegistry(privtx.WithLogger(log))
//	svc := privtx.NewService(registry, privtx.WithServiceLogger(log))
//	if err := svc.Mount(mux); err != nil {
//	    return err
//	}
//
// Calling it directly:
//
//	hash, err := svc.SendPrivateRawTransaction(ctx, rawTx)
//
// # Errors
//
// Callers only ever see one of three errors:
//
//	-32000  no builders available       (no client could be constructed)
//	-32001  all builders failed to send tx
//	-32602  the transaction could not be decoded or its signature recovered
//
// Which builders accepted or rejected a transaction, and what they replied,
// is only logged.
//
// # Architecture
//
//   - kind.go: the fixed set of builders and their endpoints
//   - registry.go: per request construction of builder clients
//   - builder.go, classify.go: one call per builder and response classification
//   - dispatch.go: concurrent fan-out and the any-success rule
//   - service.go, server.go: the public method and its JSON-RPC binding
//   - client.go, json.go, dial.go, transport.go: JSON-RPC over HTTP(S)
package privtx
