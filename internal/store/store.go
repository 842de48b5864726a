// Package store provides the fact store: a typed adapter over a
// similarity-search backend. Facts and their embedding vectors share one
// record, so an upsert or delete can never leave an orphaned vector.
package store

import (
	"context"

	"github.com/raphaelgruber/engram-go/internal/memory"
)

// Store is the similarity-search backend interface consumed by the recall
// and capture pipelines. The backend must provide per-record atomicity for
// Upsert/Delete/BumpAccess; no cross-record transactions are assumed.
type Store interface {
	// EnsureSchema creates the fact namespace and its vector index for the
	// given embedding dimensionality. Idempotent.
	EnsureSchema(ctx context.Context, dim int) error

	// Upsert writes a fact together with its embedding vector.
	Upsert(ctx context.Context, fact memory.Fact, embedding []float32) error

	// Search returns up to limit facts whose cosine similarity to the query
	// vector is at least minScore, ordered by similarity descending.
	Search(ctx context.Context, embedding []float32, limit int, minScore float64) ([]memory.Hit, error)

	// BumpAccess increments the fact's access counter and refreshes its
	// last-accessed timestamp. Best-effort bookkeeping for recall.
	BumpAccess(ctx context.Context, id string) error

	// Delete removes a fact and its vector. Deleting a missing id is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored facts.
	Count(ctx context.Context) (int, error)
}
