package service

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/engram-go/internal/memory"
	"github.com/raphaelgruber/engram-go/internal/metrics"
)

// bumpTimeout bounds the detached access-count updates fired after a recall.
const bumpTimeout = 5 * time.Second

// RecallResult is the outcome of a recall. An empty Memories slice is a valid
// result, not an error; Injection is "" in that case.
type RecallResult struct {
	Query     string                `json:"query"`
	Memories  []memory.ScoredMemory `json:"memories"`
	Injection string                `json:"injection,omitempty"`
}

// Recall embeds the query, searches the store, ranks the hits with the
// composite score and returns the top results plus the formatted injection
// block. A limit <= 0 falls back to the configured recall limit.
//
// Access counts of surfaced memories are bumped in the background; recall
// latency never waits on that bookkeeping.
func (s *Service) Recall(ctx context.Context, query string, limit int) (*RecallResult, error) {
	if err := s.ensureInit(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.Memory.RecallLimit
	}

	start := time.Now()
	embedding, err := s.embedder.Embed(ctx, query)
	s.metrics.RecordTiming(metrics.OpEmbedding, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// Over-fetch so the composite ranking has room to reorder beyond the
	// pure vector order before truncation.
	start = time.Now()
	hits, err := s.store.Search(ctx, embedding, limit*2, s.cfg.Memory.RelevanceFloor)
	s.metrics.RecordTiming(metrics.OpStoreSearch, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("search memories: %w", err)
	}

	scoringCfg := memory.ScoringConfig{
		Weights:   s.cfg.Memory.Weights,
		DecayDays: s.cfg.Memory.DecayDays,
	}
	ranked := memory.Rank(hits, scoringCfg, time.Now())
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	if len(ranked) == 0 {
		s.metrics.Inc(metrics.CounterRecallsEmpty)
		s.logger.Debug("recall found nothing", "query_len", len(query))
		return &RecallResult{Query: query, Memories: []memory.ScoredMemory{}}, nil
	}

	s.bumpAccessed(ranked)

	s.metrics.Inc(metrics.CounterRecallsServed)
	s.logger.Info("recall served", "query_len", len(query), "results", len(ranked), "top_score", ranked[0].FinalScore)

	return &RecallResult{
		Query:     query,
		Memories:  ranked,
		Injection: memory.FormatInjection(ranked),
	}, nil
}

// bumpAccessed fires access-count updates for surfaced memories without
// blocking the caller. The goroutine gets its own context so it survives the
// request context being cancelled; failures are logged and dropped.
func (s *Service) bumpAccessed(ranked []memory.ScoredMemory) {
	ids := make([]string, len(ranked))
	for i, m := range ranked {
		ids[i] = m.Fact.ID
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), bumpTimeout)
		defer cancel()

		for _, id := range ids {
			if err := s.store.BumpAccess(ctx, id); err != nil {
				s.logger.Debug("access bump failed", "id", id, "error", err)
			}
		}
	}()
}
