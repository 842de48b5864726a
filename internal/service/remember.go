package service

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/engram-go/internal/memory"
	"github.com/raphaelgruber/engram-go/internal/metrics"
)

// RememberOutcome names the three ways a manual store request can end.
type RememberOutcome string

const (
	OutcomeStored    RememberOutcome = "stored"
	OutcomeDuplicate RememberOutcome = "duplicate"
	OutcomeRejected  RememberOutcome = "rejected"
)

// RememberResult reports what happened to a manual store request. Fact is set
// for OutcomeStored, Existing for OutcomeDuplicate, Reason for
// OutcomeRejected.
type RememberResult struct {
	Outcome  RememberOutcome `json:"outcome"`
	Fact     memory.Fact     `json:"fact,omitempty"`
	Existing *memory.Fact    `json:"existing,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// Remember stores a fact on explicit request. Unlike Capture it reports
// rejections and duplicates to the caller instead of silently skipping them:
// the user asked for the write and deserves to know why it did not happen.
//
// importance 0 means "use the default"; values outside (0,1] are an error.
// An empty category is coerced to "fact" like any other unrecognized value.
func (s *Service) Remember(ctx context.Context, text, category string, importance float64, sessionKey, agentID string) (*RememberResult, error) {
	if err := s.ensureInit(ctx); err != nil {
		return nil, err
	}

	if importance == 0 {
		importance = memory.DefaultImportance
	}
	if importance < 0 || importance > 1 {
		return nil, fmt.Errorf("importance must be in (0,1], got %g", importance)
	}

	if !memory.ValidFactText(text) {
		return &RememberResult{Outcome: OutcomeRejected, Reason: "fact text must be 5-500 characters"}, nil
	}
	if memory.ContainsEnvelope(text) || memory.LooksLikeInjection(text) {
		s.metrics.Inc(metrics.CounterInjectionRejected)
		s.logger.Warn("manual store rejected", "text_len", len(text))
		return &RememberResult{Outcome: OutcomeRejected, Reason: "text looks like a prompt-injection attempt"}, nil
	}

	candidate := memory.RawCandidate{
		Text:       text,
		Category:   category,
		Importance: memory.RoundImportance(importance),
	}

	fact, existing, err := s.storeFact(ctx, candidate, sessionKey, agentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &RememberResult{Outcome: OutcomeDuplicate, Existing: existing}, nil
	}

	s.logger.Info("fact stored manually", "id", fact.ID, "category", fact.Category)
	return &RememberResult{Outcome: OutcomeStored, Fact: fact}, nil
}
