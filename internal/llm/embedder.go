// Package llm provides the embedding and fact-extraction collaborators.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/raphaelgruber/engram-go/internal/config"
)

// Embedder converts text to a fixed-length vector. Implementations validate
// that every vector matches the configured dimension, because the store's
// HNSW index is sized to it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dimension() int
}

// NewEmbedder creates an embedder from configuration.
func NewEmbedder(ctx context.Context, cfg *config.Config) (Embedder, error) {
	switch cfg.EmbedProvider {
	case config.ProviderOpenAI, config.ProviderOllama:
		return newLangchainEmbedder(cfg)
	case config.ProviderBedrock:
		return NewBedrockEmbedder(ctx, cfg.AWSRegion, cfg.EmbedModel, cfg.EmbedDimension)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.EmbedProvider)
	}
}

// langchainEmbedder wraps langchaingo embeddings with dimension validation.
type langchainEmbedder struct {
	model     embeddings.Embedder
	dimension int
	modelName string
}

var _ Embedder = (*langchainEmbedder)(nil)

func newLangchainEmbedder(cfg *config.Config) (*langchainEmbedder, error) {
	var model embeddings.Embedder
	var err error

	switch cfg.EmbedProvider {
	case config.ProviderOllama:
		llm, ollamaErr := ollama.New(
			ollama.WithModel(cfg.EmbedModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if ollamaErr != nil {
			return nil, fmt.Errorf("create ollama client: %w", ollamaErr)
		}
		model, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create ollama embedder: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		llm, openaiErr := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithEmbeddingModel(cfg.EmbedModel),
		)
		if openaiErr != nil {
			return nil, fmt.Errorf("create openai client: %w", openaiErr)
		}
		model, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create openai embedder: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.EmbedProvider)
	}

	return &langchainEmbedder{
		model:     model,
		dimension: cfg.EmbedDimension,
		modelName: cfg.EmbedModel,
	}, nil
}

// Embed generates an embedding vector for text.
func (e *langchainEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vectors, err := e.model.EmbedDocuments(ctx, []string{text})
	duration := time.Since(start)

	if err != nil {
		slog.Warn("embedding failed", "model", e.modelName, "text_len", len(text), "duration_ms", duration.Milliseconds(), "error", err)
		return nil, fmt.Errorf("embed: %w", err)
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	embedding := vectors[0]
	if len(embedding) != e.dimension {
		return nil, fmt.Errorf("dimension mismatch: got %d, want %d (model: %s)", len(embedding), e.dimension, e.modelName)
	}

	return embedding, nil
}

// Model returns the embedding model name.
func (e *langchainEmbedder) Model() string {
	return e.modelName
}

// Dimension returns the expected embedding dimension.
func (e *langchainEmbedder) Dimension() int {
	return e.dimension
}
