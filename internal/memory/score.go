package memory

import (
	"math"
	"sort"
	"time"
)

// Weights are the contribution ceilings of the four ranking factors.
// They deliberately do not need to sum to 1: each weight caps its factor's
// contribution independently, so a deployment can raise one without
// rebalancing the rest.
type Weights struct {
	Vector     float64 `yaml:"vector"`
	Importance float64 `yaml:"importance"`
	Recency    float64 `yaml:"recency"`
	Access     float64 `yaml:"access"`
}

// DefaultWeights are the stock ranking weights.
var DefaultWeights = Weights{
	Vector:     0.35,
	Importance: 0.30,
	Recency:    0.20,
	Access:     0.15,
}

// ScoringConfig parameterizes the ranking engine.
type ScoringConfig struct {
	Weights Weights
	// DecayDays is the horizon over which the recency boost falls linearly
	// from 1.0 (just created) to 0.0 (DecayDays old or older).
	DecayDays float64
}

// DefaultScoringConfig returns the stock scoring parameters.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights:   DefaultWeights,
		DecayDays: 30,
	}
}

// RecencyBoost decays linearly from 1.0 at creation to 0.0 at decayDays days
// old, clamped at 0 beyond that. Never negative.
func RecencyBoost(createdAt, now time.Time, decayDays float64) float64 {
	if decayDays <= 0 {
		return 0
	}
	days := now.Sub(createdAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	boost := 1 - days/decayDays
	if boost < 0 {
		return 0
	}
	return boost
}

// AccessBoost reinforces frequently-recalled facts with logarithmic
// saturation: 0 for never-accessed, log10(n+1)/log10(11) otherwise, capped
// at 1.0 from ten accesses on. The base-10 log and the log10(11) denominator
// are load-bearing; boundary values are pinned by tests.
func AccessBoost(accessCount int) float64 {
	if accessCount <= 0 {
		return 0
	}
	boost := math.Log10(float64(accessCount)+1) / math.Log10(11)
	if boost > 1 {
		return 1
	}
	return boost
}

// Rank computes the composite score for each hit and returns the results
// sorted by FinalScore descending. The sort is stable, so hits with equal
// final scores keep their input order; since stores return hits in
// similarity order, ties fall back to vector order and then to input order.
func Rank(hits []Hit, cfg ScoringConfig, now time.Time) []ScoredMemory {
	scored := make([]ScoredMemory, len(hits))
	for i, h := range hits {
		recency := RecencyBoost(h.Fact.CreatedAt, now, cfg.DecayDays)
		access := AccessBoost(h.Fact.AccessCount)

		final := cfg.Weights.Vector*h.VectorScore +
			cfg.Weights.Importance*h.Fact.Importance +
			cfg.Weights.Recency*recency +
			cfg.Weights.Access*access

		scored[i] = ScoredMemory{
			Fact:        h.Fact,
			VectorScore: h.VectorScore,
			FinalScore:  final,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})
	return scored
}
