package store

import "fmt"

// schemaSQL returns the fact-table schema sized to the embedder's vector
// dimension. The HNSW index dimension must match the embedding model or
// every upsert fails.
func schemaSQL(dim int) string {
	return fmt.Sprintf(`
    DEFINE TABLE IF NOT EXISTS fact SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS text ON fact TYPE string;
    DEFINE FIELD IF NOT EXISTS category ON fact TYPE string DEFAULT 'fact';
    DEFINE FIELD IF NOT EXISTS importance ON fact TYPE float DEFAULT 0.7;
    DEFINE FIELD IF NOT EXISTS session_key ON fact TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS agent_id ON fact TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS embedding ON fact TYPE array<float>;
    DEFINE FIELD IF NOT EXISTS created_at ON fact TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS access_count ON fact TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS last_accessed ON fact TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS fact_category ON fact FIELDS category;
    DEFINE INDEX IF NOT EXISTS fact_session ON fact FIELDS session_key;
    DEFINE INDEX IF NOT EXISTS fact_embedding ON fact FIELDS embedding HNSW DIMENSION %d DIST COSINE TYPE F32;
`, dim)
}
