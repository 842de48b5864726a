package memory

import (
	"math"
	"testing"
	"time"
)

func TestRecencyBoost(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	decayDays := 30.0

	tests := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"just created", 0, 1.0},
		{"half horizon", 15 * 24 * time.Hour, 0.5},
		{"exactly at horizon", 30 * 24 * time.Hour, 0.0},
		{"well past horizon", 400 * 24 * time.Hour, 0.0},
		{"clock skew, created in future", -time.Hour, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecencyBoost(now.Add(-tt.age), now, decayDays)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RecencyBoost(age=%v) = %v, want %v", tt.age, got, tt.want)
			}
			if got < 0 {
				t.Errorf("RecencyBoost(age=%v) = %v, must never be negative", tt.age, got)
			}
		})
	}
}

func TestRecencyBoostIsLinear(t *testing.T) {
	now := time.Now()
	ten := RecencyBoost(now.Add(-10*24*time.Hour), now, 30)
	twenty := RecencyBoost(now.Add(-20*24*time.Hour), now, 30)

	if math.Abs(ten-2.0/3.0) > 1e-9 || math.Abs(twenty-1.0/3.0) > 1e-9 {
		t.Errorf("boost at 10/20 days = %v/%v, want 2/3 and 1/3", ten, twenty)
	}
}

func TestAccessBoost(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{-3, 0},
		{0, 0},
		{1, math.Log10(2) / math.Log10(11)}, // ~0.289
		{5, math.Log10(6) / math.Log10(11)}, // ~0.747
		{10, 1.0},                           // saturates exactly at ten
		{1000, 1.0},
	}

	for _, tt := range tests {
		got := AccessBoost(tt.count)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AccessBoost(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}

	// One access lands near 0.29, not at some other log base.
	if got := AccessBoost(1); math.Abs(got-0.289) > 0.001 {
		t.Errorf("AccessBoost(1) = %v, want ~0.289", got)
	}
	if got := AccessBoost(9); got >= 1.0 {
		t.Errorf("AccessBoost(9) = %v, want < 1.0", got)
	}
}

func TestAccessBoostMonotonic(t *testing.T) {
	prev := AccessBoost(0)
	for n := 1; n <= 50; n++ {
		cur := AccessBoost(n)
		if cur < prev {
			t.Fatalf("AccessBoost not monotonic: f(%d)=%v < f(%d)=%v", n, cur, n-1, prev)
		}
		prev = cur
	}
}

func TestRankSortsDescending(t *testing.T) {
	now := time.Now()
	cfg := DefaultScoringConfig()

	hits := []Hit{
		{Fact: Fact{ID: "a", Importance: 0.2, CreatedAt: now.Add(-40 * 24 * time.Hour)}, VectorScore: 0.4},
		{Fact: Fact{ID: "b", Importance: 0.9, CreatedAt: now, AccessCount: 12}, VectorScore: 0.9},
		{Fact: Fact{ID: "c", Importance: 0.5, CreatedAt: now.Add(-10 * 24 * time.Hour)}, VectorScore: 0.7},
	}

	scored := Rank(hits, cfg, now)

	if len(scored) != 3 {
		t.Fatalf("got %d results, want 3", len(scored))
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].FinalScore > scored[i-1].FinalScore {
			t.Errorf("results not sorted descending at %d: %v > %v", i, scored[i].FinalScore, scored[i-1].FinalScore)
		}
	}
	if scored[0].Fact.ID != "b" {
		t.Errorf("top result = %s, want b", scored[0].Fact.ID)
	}
}

func TestRankScoreBounds(t *testing.T) {
	// With every input in [0,1], no final score can leave the range spanned
	// by the weighted sum.
	now := time.Now()
	cfg := DefaultScoringConfig()
	maxSum := cfg.Weights.Vector + cfg.Weights.Importance + cfg.Weights.Recency + cfg.Weights.Access

	hits := []Hit{
		{Fact: Fact{ID: "max", Importance: 1.0, CreatedAt: now, AccessCount: 100}, VectorScore: 1.0},
		{Fact: Fact{ID: "min", Importance: 0, CreatedAt: now.Add(-1000 * 24 * time.Hour)}, VectorScore: 0},
	}

	for _, s := range Rank(hits, cfg, now) {
		if s.FinalScore < 0 || s.FinalScore > maxSum+1e-9 {
			t.Errorf("FinalScore %v for %s outside [0, %v]", s.FinalScore, s.Fact.ID, maxSum)
		}
	}
}

func TestRankHigherVectorScoreWins(t *testing.T) {
	now := time.Now()
	created := now.Add(-5 * 24 * time.Hour)

	hits := []Hit{
		{Fact: Fact{ID: "low", Importance: 0.5, CreatedAt: created, AccessCount: 2}, VectorScore: 0.6},
		{Fact: Fact{ID: "high", Importance: 0.5, CreatedAt: created, AccessCount: 2}, VectorScore: 0.8},
	}

	scored := Rank(hits, DefaultScoringConfig(), now)
	if scored[0].Fact.ID != "high" {
		t.Errorf("top result = %s, want the higher-vectorScore candidate", scored[0].Fact.ID)
	}
}

func TestRankTieKeepsInputOrder(t *testing.T) {
	now := time.Now()
	created := now.Add(-3 * 24 * time.Hour)

	// Identical in every scoring input: the stable sort must keep input order.
	hits := []Hit{
		{Fact: Fact{ID: "first", Importance: 0.5, CreatedAt: created}, VectorScore: 0.7},
		{Fact: Fact{ID: "second", Importance: 0.5, CreatedAt: created}, VectorScore: 0.7},
	}

	scored := Rank(hits, DefaultScoringConfig(), now)
	if scored[0].Fact.ID != "first" || scored[1].Fact.ID != "second" {
		t.Errorf("tie order = %s,%s; want first,second", scored[0].Fact.ID, scored[1].Fact.ID)
	}
}

func TestRankCustomWeights(t *testing.T) {
	now := time.Now()

	// Recency-only weights: a fresh fact must beat an older one regardless
	// of similarity.
	cfg := ScoringConfig{
		Weights:   Weights{Recency: 1.0},
		DecayDays: 365,
	}

	hits := []Hit{
		{Fact: Fact{ID: "stale", Importance: 1.0, CreatedAt: now.Add(-400 * 24 * time.Hour)}, VectorScore: 1.0},
		{Fact: Fact{ID: "fresh", Importance: 0.1, CreatedAt: now}, VectorScore: 0.3},
	}

	scored := Rank(hits, cfg, now)
	if scored[0].Fact.ID != "fresh" {
		t.Errorf("top result = %s, want fresh", scored[0].Fact.ID)
	}
	// A 400-day-old fact at a 365-day horizon contributes zero recency.
	if scored[1].FinalScore != 0 {
		t.Errorf("stale FinalScore = %v, want 0 under recency-only weights", scored[1].FinalScore)
	}
}
