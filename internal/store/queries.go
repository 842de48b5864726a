package store

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/raphaelgruber/engram-go/internal/memory"
)

// hnswEF is the HNSW search effort parameter. 40 trades a little latency for
// recall, which matters more than speed at memory-store sizes.
const hnswEF = 40

// factRow is the wire shape of a fact record, including the similarity
// column projected by Search.
type factRow struct {
	ID           surrealmodels.RecordID `json:"id"`
	Text         string                 `json:"text"`
	Category     string                 `json:"category"`
	Importance   float64                `json:"importance"`
	SessionKey   *string                `json:"session_key,omitempty"`
	AgentID      *string                `json:"agent_id,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	AccessCount  int                    `json:"access_count"`
	LastAccessed time.Time              `json:"last_accessed"`
	Similarity   float64                `json:"similarity,omitempty"`
}

func (r factRow) toFact() memory.Fact {
	f := memory.Fact{
		ID:           fmt.Sprint(r.ID.ID),
		Text:         r.Text,
		Category:     memory.Category(r.Category),
		Importance:   r.Importance,
		CreatedAt:    r.CreatedAt,
		AccessCount:  r.AccessCount,
		LastAccessed: r.LastAccessed,
	}
	if r.SessionKey != nil {
		f.SessionKey = *r.SessionKey
	}
	if r.AgentID != nil {
		f.AgentID = *r.AgentID
	}
	return f
}

// Upsert writes a fact and its embedding into a single record.
func (s *Surreal) Upsert(ctx context.Context, fact memory.Fact, embedding []float32) error {
	sql := `
		UPSERT type::record("fact", $id) SET
			text = $text,
			category = $category,
			importance = $importance,
			session_key = $session_key,
			agent_id = $agent_id,
			embedding = $embedding,
			created_at = $created_at,
			access_count = $access_count,
			last_accessed = $last_accessed
	`

	createdAt := fact.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	lastAccessed := fact.LastAccessed
	if lastAccessed.IsZero() {
		lastAccessed = createdAt
	}

	var sessionKey, agentID *string
	if fact.SessionKey != "" {
		sessionKey = &fact.SessionKey
	}
	if fact.AgentID != "" {
		agentID = &fact.AgentID
	}

	_, err := surrealdb.Query[any](ctx, s.db, sql, map[string]any{
		"id":            fact.ID,
		"text":          fact.Text,
		"category":      string(fact.Category),
		"importance":    fact.Importance,
		"session_key":   sessionKey,
		"agent_id":      agentID,
		"embedding":     embedding,
		"created_at":    createdAt,
		"access_count":  fact.AccessCount,
		"last_accessed": lastAccessed,
	})
	if err != nil {
		return fmt.Errorf("upsert fact: %w", wrapQueryError(err))
	}
	return nil
}

// Search performs KNN search over the HNSW index and returns hits at or
// above minScore, similarity descending.
func (s *Surreal) Search(ctx context.Context, embedding []float32, limit int, minScore float64) ([]memory.Hit, error) {
	if limit <= 0 {
		return nil, nil
	}

	// The KNN operator needs literal bounds; everything else is bound.
	sql := fmt.Sprintf(`
		SELECT id, text, category, importance, session_key, agent_id,
			created_at, access_count, last_accessed,
			vector::similarity::cosine(embedding, $emb) AS similarity
		FROM fact
		WHERE embedding <|%d,%d|> $emb
			AND vector::similarity::cosine(embedding, $emb) >= $min
		ORDER BY similarity DESC
	`, limit, hnswEF)

	results, err := surrealdb.Query[[]factRow](ctx, s.db, sql, map[string]any{
		"emb": embedding,
		"min": minScore,
	})
	if err != nil {
		return nil, fmt.Errorf("search facts: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	rows := (*results)[0].Result
	hits := make([]memory.Hit, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, memory.Hit{Fact: r.toFact(), VectorScore: r.Similarity})
	}
	return hits, nil
}

// BumpAccess increments access tracking for a fact. Callers treat this as
// best-effort bookkeeping; a missing id is a silent no-op.
func (s *Surreal) BumpAccess(ctx context.Context, id string) error {
	_, err := surrealdb.Query[any](ctx, s.db, `
		UPDATE type::record("fact", $id) SET
			access_count += 1,
			last_accessed = time::now()
	`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("bump access: %w", wrapQueryError(err))
	}
	return nil
}

// Delete removes a fact and its embedding. Idempotent.
func (s *Surreal) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Query[any](ctx, s.db, `
		DELETE type::record("fact", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete fact: %w", wrapQueryError(err))
	}
	return nil
}

// Count returns the number of stored facts.
func (s *Surreal) Count(ctx context.Context) (int, error) {
	results, err := surrealdb.Query[[]struct {
		Count int `json:"count"`
	}](ctx, s.db, `SELECT count() AS count FROM fact GROUP ALL`, nil)
	if err != nil {
		return 0, fmt.Errorf("count facts: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].Count, nil
}
