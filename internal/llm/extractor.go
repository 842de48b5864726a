package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/raphaelgruber/engram-go/internal/config"
)

// Extractor turns conversational text into candidate fact JSON. Its raw
// output is untrusted and flows through the sanitizer before anything is
// persisted.
type Extractor interface {
	// ExtractFacts returns the model's raw output for the given user
	// messages: ideally a JSON array of {text, category, importance}
	// objects, but callers must tolerate anything.
	ExtractFacts(ctx context.Context, texts []string) (string, error)
}

// extractionSystemPrompt asks for exactly the candidate shape the sanitizer
// validates. Categories outside the listed set are coerced downstream.
const extractionSystemPrompt = `You extract durable long-term facts about the user from their messages.

Return a JSON array (and nothing else) of objects:
  {"text": "...", "category": "...", "importance": 0.0-1.0}

Rules:
- Only include facts worth remembering across conversations: stable preferences, decisions, entities in the user's life, biographical facts, notable events, lessons learned.
- category is one of: preference, decision, entity, fact, event, lesson.
- importance reflects how useful the fact is for future conversations (0.9+ for identity-level facts, around 0.5 for minor details).
- text is a single self-contained sentence about the user, 5-500 characters.
- If there is nothing worth remembering, return [].`

// Model wraps a langchaingo chat model as the extraction collaborator.
type Model struct {
	llm       llms.Model
	modelName string
}

var _ Extractor = (*Model)(nil)

// NewModel creates an extraction model based on configuration.
func NewModel(cfg *config.Config) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Model{
		llm:       model,
		modelName: cfg.LLMModel,
	}, nil
}

// ExtractFacts sends the user's messages to the model and returns its raw
// output.
func (m *Model) ExtractFacts(ctx context.Context, texts []string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, extractionSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, strings.Join(texts, "\n\n")),
	}

	response, err := m.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("extract facts: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return response.Choices[0].Content, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}
