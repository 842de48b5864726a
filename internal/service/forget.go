package service

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/engram-go/internal/memory"
	"github.com/raphaelgruber/engram-go/internal/metrics"
)

// ForgetResult is the outcome of a query-based forget. Exactly one of the two
// fields is populated: Deleted when a single unambiguous match was removed,
// Candidates when the caller must pick one and retry by id.
type ForgetResult struct {
	Deleted    *memory.Fact          `json:"deleted,omitempty"`
	Candidates []memory.ScoredMemory `json:"candidates,omitempty"`
}

// ForgetByID removes a single fact. Deleting a missing id is not an error;
// the end state is the same either way.
func (s *Service) ForgetByID(ctx context.Context, id string) error {
	if err := s.ensureInit(ctx); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete fact: %w", err)
	}
	s.logger.Info("fact forgotten", "id", id)
	return nil
}

// ForgetByQuery deletes the fact matching a natural-language description.
// Deletion is destructive, so it only happens automatically when the match is
// unambiguous: exactly one hit at or above the auto-delete similarity. In
// every other case the near matches are returned for disambiguation and
// nothing is deleted.
func (s *Service) ForgetByQuery(ctx context.Context, query string) (*ForgetResult, error) {
	if err := s.ensureInit(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	embedding, err := s.embedder.Embed(ctx, query)
	s.metrics.RecordTiming(metrics.OpEmbedding, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// The search floor is looser than the auto-delete bar so a miss still
	// surfaces plausible candidates instead of an empty answer.
	start = time.Now()
	hits, err := s.store.Search(ctx, embedding, s.cfg.Memory.ForgetLimit, s.cfg.Memory.ForgetFloor)
	s.metrics.RecordTiming(metrics.OpStoreSearch, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("search memories: %w", err)
	}

	var confident []memory.Hit
	for _, h := range hits {
		if h.VectorScore >= s.cfg.Memory.ForgetAuto {
			confident = append(confident, h)
		}
	}

	if len(confident) == 1 {
		fact := confident[0].Fact
		if err := s.store.Delete(ctx, fact.ID); err != nil {
			return nil, fmt.Errorf("delete fact: %w", err)
		}
		s.logger.Info("fact forgotten by query", "id", fact.ID, "similarity", confident[0].VectorScore)
		return &ForgetResult{Deleted: &fact}, nil
	}

	scoringCfg := memory.ScoringConfig{
		Weights:   s.cfg.Memory.Weights,
		DecayDays: s.cfg.Memory.DecayDays,
	}
	candidates := memory.Rank(hits, scoringCfg, time.Now())
	s.logger.Debug("forget needs disambiguation", "query_len", len(query), "candidates", len(candidates), "confident", len(confident))
	return &ForgetResult{Candidates: candidates}, nil
}
