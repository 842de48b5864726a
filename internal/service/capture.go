package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/engram-go/internal/memory"
	"github.com/raphaelgruber/engram-go/internal/metrics"
)

// ErrNoExtractor is returned when automatic capture runs without a configured
// extraction model.
var ErrNoExtractor = errors.New("no extraction model configured")

// Capture runs the automatic end-of-turn pipeline: filter the user's
// messages, extract candidate facts, sanitize them, and persist the survivors
// up to the per-turn cap. Duplicates of already-stored facts are skipped.
//
// Capture never fails the turn. Every error is logged and swallowed; the
// return value is whatever was actually stored.
func (s *Service) Capture(ctx context.Context, messages []memory.Message, sessionKey, agentID string) []memory.Fact {
	if s.extractor == nil {
		s.logger.Warn("capture skipped", "error", ErrNoExtractor)
		return nil
	}
	if err := s.ensureInit(ctx); err != nil {
		s.logger.Error("capture init failed", "error", err)
		return nil
	}

	texts := make([]string, 0, len(messages))
	for _, t := range memory.UserTexts(messages) {
		if memory.ShouldSkip(t) {
			if memory.LooksLikeInjection(t) {
				s.metrics.Inc(metrics.CounterInjectionRejected)
				s.logger.Warn("message rejected as injection", "text_len", len(t))
			}
			continue
		}
		texts = append(texts, t)
	}
	if len(texts) == 0 {
		return nil
	}

	start := time.Now()
	raw, err := s.extractor.ExtractFacts(ctx, texts)
	s.metrics.RecordTiming(metrics.OpExtraction, time.Since(start))
	if err != nil {
		s.logger.Error("fact extraction failed", "error", err)
		return nil
	}

	parsed := memory.ParseCandidates(raw)
	candidates := memory.Sanitize(parsed)
	if dropped := len(parsed) - len(candidates); dropped > 0 {
		s.metrics.Add(metrics.CounterCandidatesDropped, int64(dropped))
	}
	if len(candidates) == 0 {
		s.logger.Debug("no candidates survived sanitization", "raw_len", len(raw), "parsed", len(parsed))
		return nil
	}

	var stored []memory.Fact
	for _, c := range candidates {
		if len(stored) >= s.cfg.Memory.MaxPerTurn {
			s.logger.Debug("per-turn capture cap reached", "cap", s.cfg.Memory.MaxPerTurn, "remaining", len(candidates)-len(stored))
			break
		}

		fact, existing, err := s.storeFact(ctx, c, sessionKey, agentID)
		if err != nil {
			s.logger.Error("storing extracted fact failed", "error", err)
			continue
		}
		if existing != nil {
			continue
		}
		stored = append(stored, fact)
	}

	if len(stored) > 0 {
		s.logger.Info("captured facts", "count", len(stored), "session_key", sessionKey)
	}
	return stored
}

// storeFact embeds a sanitized candidate, checks for a near-duplicate, and
// persists it. When an existing fact is similar enough the write is
// suppressed and that fact is returned instead.
func (s *Service) storeFact(ctx context.Context, c memory.RawCandidate, sessionKey, agentID string) (memory.Fact, *memory.Fact, error) {
	start := time.Now()
	embedding, err := s.embedder.Embed(ctx, c.Text)
	s.metrics.RecordTiming(metrics.OpEmbedding, time.Since(start))
	if err != nil {
		return memory.Fact{}, nil, fmt.Errorf("embed fact: %w", err)
	}

	existing, err := s.findDuplicate(ctx, embedding)
	if err != nil {
		return memory.Fact{}, nil, err
	}
	if existing != nil {
		s.metrics.Inc(metrics.CounterDuplicatesSkipped)
		s.logger.Debug("duplicate fact skipped", "existing_id", existing.ID)
		return memory.Fact{}, existing, nil
	}

	fact := memory.Fact{
		ID:         uuid.NewString(),
		Text:       c.Text,
		Category:   memory.CoerceCategory(c.Category),
		Importance: c.Importance,
		SessionKey: sessionKey,
		AgentID:    agentID,
		CreatedAt:  time.Now().UTC(),
	}

	start = time.Now()
	err = s.store.Upsert(ctx, fact, embedding)
	s.metrics.RecordTiming(metrics.OpStoreUpsert, time.Since(start))
	if err != nil {
		return memory.Fact{}, nil, fmt.Errorf("upsert fact: %w", err)
	}

	s.metrics.Inc(metrics.CounterFactsStored)
	return fact, nil, nil
}

// findDuplicate returns the closest stored fact at or above the dedup
// threshold, or nil when the candidate is novel.
func (s *Service) findDuplicate(ctx context.Context, embedding []float32) (*memory.Fact, error) {
	start := time.Now()
	hits, err := s.store.Search(ctx, embedding, 1, s.cfg.Memory.DedupThreshold)
	s.metrics.RecordTiming(metrics.OpStoreSearch, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("dedup search: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return &hits[0].Fact, nil
}
