// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sender submits a transaction to one builder.
type Sender interface {
	Kind() Kind
	SendTx(ctx context.Context, tx []byte) error
}

// Dispatcher fans a transaction out to every builder.
type Dispatcher struct {
	log *zap.Logger
}

// NewDispatcher returns a dispatcher logging to log; nil means no logging.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log}
}

// Dispatch sends tx to all senders at once and waits for every call to
// finish. It succeeds if at least one sender accepted the transaction.
//
// Calls are not tied to ctx cancellation: once issued, a call ends only when
// the builder answers or its transport times out.
func (d *Dispatcher) Dispatch(ctx context.Context, tx []byte, senders []Sender) error {
	if len(senders) == 0 {
		return ErrFailedToGetBuilders
	}
	ctx = context.WithoutCancel(ctx)

	results := make([]error, len(senders))
	var g errgroup.Group
	for i, s := range senders {
		g.Go(func() error {
			results[i] = s.SendTx(ctx, tx)
			return nil
		})
	}
	_ = g.Wait()

	if !anySucceeded(results) {
		d.log.Error("all builders failed to send tx", zap.Int("builders", len(senders)))
		return ErrAllBuildersFailed
	}
	return nil
}

func anySucceeded(results []error) bool {
	for _, err := range results {
		if err == nil {
			return true
		}
	}
	return false
}
