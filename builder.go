// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// ErrRejected is returned when a builder answers with an error-bearing body.
var ErrRejected = errors.New("builder returned error response")

// BuilderError is the failure of one SendTx call.
type BuilderError struct {
	Kind     Kind
	Err      error
	Response json.RawMessage
}

func (e *BuilderError) Error() string {
	return fmt.Sprintf("builder %s: %v", e.Kind, e.Err)
}

func (e *BuilderError) Unwrap() error { return e.Err }

// TxPayload is the single parameter object sent to a builder.
type TxPayload struct {
	Tx hexutil.Bytes `json:"tx"`
}

// Builder sends transactions to a single builder endpoint.
type Builder struct {
	kind       Kind
	method     string
	client     Client
	classifier Classifier
	log        *zap.Logger
	metrics    *Metrics
}

// Kind returns the builder this client talks to.
func (b *Builder) Kind() Kind { return b.kind }

// SendTx submits tx once. There is no retry: redundancy comes from sending to
// several builders.
func (b *Builder) SendTx(ctx context.Context, tx []byte) error {
	params := TxPayload{Tx: tx}
	log := b.log.With(zap.Stringer("builder", b.kind))
	log.Debug("sending tx to builder", zap.String("method", b.method), zap.Int("size", len(tx)))

	start := time.Now()
	resp, err := b.client.Call(ctx, b.method, params)
	if err != nil {
		b.metrics.observeSubmission(b.kind, outcomeFailed, time.Since(start))
		log.Warn("builder rejected tx", zap.Error(err))
		return &BuilderError{Kind: b.kind, Err: err}
	}
	if b.classifier.Failed(resp) {
		b.metrics.observeSubmission(b.kind, outcomeRejected, time.Since(start))
		log.Warn("builder rejected tx", zap.ByteString("response", resp.Body))
		return &BuilderError{Kind: b.kind, Err: ErrRejected, Response: resp.Body}
	}

	b.metrics.observeSubmission(b.kind, outcomeAccepted, time.Since(start))
	log.Info("tx accepted by builder", zap.ByteString("response", resp.Body))
	return nil
}

// Close releases the builder's transport.
func (b *Builder) Close() error {
	return b.client.Close()
}
