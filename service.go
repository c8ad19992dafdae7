// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Boundary error codes
const (
	CodeFailedToGetBuilders = -32000
	CodeAllBuildersFailed   = -32001
	CodeInvalidTransaction  = -32602
)

// Error is returned to callers of the public method. It never names a
// builder or carries a builder response.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrFailedToGetBuilders = &Error{Code: CodeFailedToGetBuilders, Message: "no builders available"}
	ErrAllBuildersFailed   = &Error{Code: CodeAllBuildersFailed, Message: "all builders failed to send tx"}
)

// Option configures a Service.
type Option func(*Service)

// WithDecoder replaces the Ethereum transaction decoder.
func WithDecoder(d Decoder) Option {
	return func(s *Service) { s.decoder = d }
}

// WithServiceLogger sets the logger for request level diagnostics.
func WithServiceLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithServiceMetrics records request outcomes on m.
func WithServiceMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithMaxRequestBytes overrides the inbound request body cap.
func WithMaxRequestBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRequestBytes = n
		}
	}
}

// Service sends raw signed transactions privately to every builder.
type Service struct {
	registry   *Registry
	decoder    Decoder
	dispatcher *Dispatcher
	log        *zap.Logger
	metrics    *Metrics
	limiter    *ipLimiter

	maxRequestBytes int64
}

func NewService(registry *Registry, opts ...Option) *Service {
	s := &Service{
		registry:        registry,
		decoder:         EthDecoder{},
		log:             zap.NewNop(),
		maxRequestBytes: DefaultMaxRequestBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dispatcher = NewDispatcher(s.log)
	return s
}

// SendPrivateRawTransaction decodes raw, sends it to all builders and
// returns its hash if at least one builder accepted it.
func (s *Service) SendPrivateRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	hash, err := s.send(ctx, raw)
	s.metrics.observeRequest(err)
	return hash, err
}

func (s *Service) send(ctx context.Context, raw []byte) (common.Hash, error) {
	builders := s.registry.Builders()
	if len(builders) == 0 {
		s.log.Error("no builders available")
		return common.Hash{}, ErrFailedToGetBuilders
	}
	defer s.registry.Release(builders)

	tx, err := s.decoder.Decode(raw)
	if err != nil {
		return common.Hash{}, err
	}
	hash := tx.Hash()
	s.log.Debug("dispatching private tx",
		zap.Stringer("hash", hash),
		zap.Stringer("from", tx.From()),
		zap.Int("builders", len(builders)),
	)

	senders := make([]Sender, len(builders))
	for i, b := range builders {
		senders[i] = b
	}
	if err := s.dispatcher.Dispatch(ctx, raw, senders); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}
