// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ConstructionError reports that the client for one builder could not be
// set up. It never affects other builders.
type ConstructionError struct {
	Kind Kind
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to create builder for %s: %v", e.Kind, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLogger sets the logger used for builder diagnostics
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) { r.log = log }
}

// WithMetrics records submissions on m
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// WithDialOptions passes opts to every builder transport
func WithDialOptions(opts ...DialOption) RegistryOption {
	return func(r *Registry) { r.dialOpts = append(r.dialOpts, opts...) }
}

// WithPooling keeps built clients across requests instead of building fresh
// ones each time.
func WithPooling(enabled bool) RegistryOption {
	return func(r *Registry) { r.pool = enabled }
}

// Registry builds clients for the fixed set of builders.
type Registry struct {
	log      *zap.Logger
	metrics  *Metrics
	dialOpts []DialOption
	pool     bool

	// endpoint resolves where a kind is reached; Kind.Endpoint outside tests
	endpoint func(Kind) Endpoint

	mu     sync.Mutex
	pooled map[Kind]*Builder
}

// NewRegistry creates a registry over Kinds().
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		log:      zap.NewNop(),
		endpoint: Kind.Endpoint,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build opens a client for kind. No request is sent.
func (r *Registry) Build(kind Kind) (*Builder, error) {
	if !kind.Valid() {
		return nil, &ConstructionError{Kind: kind, Err: fmt.Errorf("unknown builder kind %d", uint8(kind))}
	}
	if r.pool {
		r.mu.Lock()
		defer r.mu.Unlock()
		if b, ok := r.pooled[kind]; ok {
			return b, nil
		}
	}

	endpoint := r.endpoint(kind)
	client, err := Dial(endpoint.URL, r.dialOpts...)
	if err != nil {
		r.metrics.observeConstructionFailure(kind)
		return nil, &ConstructionError{Kind: kind, Err: err}
	}
	b := &Builder{
		kind:       kind,
		method:     endpoint.Method,
		client:     client,
		classifier: kind.Classifier(),
		log:        r.log,
		metrics:    r.metrics,
	}

	if r.pool {
		if r.pooled == nil {
			r.pooled = make(map[Kind]*Builder)
		}
		r.pooled[kind] = b
	}
	return b, nil
}

// Builders builds a client for every kind. Kinds that fail are logged and
// left out.
func (r *Registry) Builders() []*Builder {
	builders := make([]*Builder, 0, numKinds)
	for _, kind := range Kinds() {
		b, err := r.Build(kind)
		if err != nil {
			r.log.Warn("failed to create builder", zap.Stringer("builder", kind), zap.Error(err))
			continue
		}
		r.log.Debug("builder constructed", zap.Stringer("builder", kind))
		builders = append(builders, b)
	}
	return builders
}

// Release closes builders obtained from Builders unless they are pooled.
func (r *Registry) Release(builders []*Builder) {
	if r.pool {
		return
	}
	for _, b := range builders {
		_ = b.Close()
	}
}

// Close releases every pooled client.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for kind, b := range r.pooled {
		_ = b.Close()
		delete(r.pooled, kind)
	}
	return nil
}
