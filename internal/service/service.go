// Package service orchestrates the recall, capture and forget pipelines on
// top of the fact store, the embedder and the extraction model.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/raphaelgruber/engram-go/internal/config"
	"github.com/raphaelgruber/engram-go/internal/llm"
	"github.com/raphaelgruber/engram-go/internal/metrics"
	"github.com/raphaelgruber/engram-go/internal/store"
)

// Service wires the memory pipelines together. It is safe for concurrent
// use; the store is the only shared mutable state.
type Service struct {
	store     store.Store
	embedder  llm.Embedder
	extractor llm.Extractor
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *metrics.Collector

	// initOnce guards one-time schema creation so concurrent first calls
	// cannot race it.
	initOnce sync.Once
	initErr  error
}

// New creates a Service. The extractor may be nil when automatic capture is
// not used (e.g. the CLI); Capture then refuses to run.
func New(st store.Store, embedder llm.Embedder, extractor llm.Extractor, cfg *config.Config, logger *slog.Logger, collector *metrics.Collector) *Service {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Service{
		store:     st,
		embedder:  embedder,
		extractor: extractor,
		cfg:       cfg,
		logger:    logger,
		metrics:   collector,
	}
}

// Metrics exposes the collector for the stats surfaces.
func (s *Service) Metrics() *metrics.Collector {
	return s.metrics
}

// CountFacts returns the number of stored facts.
func (s *Service) CountFacts(ctx context.Context) (int, error) {
	if err := s.ensureInit(ctx); err != nil {
		return 0, err
	}
	return s.store.Count(ctx)
}

// ensureInit lazily creates the store schema exactly once per process.
func (s *Service) ensureInit(ctx context.Context) error {
	s.initOnce.Do(func() {
		if err := s.store.EnsureSchema(ctx, s.embedder.Dimension()); err != nil {
			s.initErr = fmt.Errorf("ensure schema: %w", err)
		}
	})
	return s.initErr
}
