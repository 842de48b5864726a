package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// DefaultBedrockModel produces 1536-dimensional vectors, matching the
// text-embedding-3-small index layout.
const DefaultBedrockModel = "amazon.titan-embed-text-v1"

// BedrockEmbedder implements Embedder using Amazon Bedrock Titan embeddings.
type BedrockEmbedder struct {
	client    *bedrockruntime.Client
	modelID   string
	dimension int
}

var _ Embedder = (*BedrockEmbedder)(nil)

// NewBedrockEmbedder creates a Bedrock-backed embedder. Credentials come
// from the default AWS credential chain.
func NewBedrockEmbedder(ctx context.Context, region, modelID string, dimension int) (*BedrockEmbedder, error) {
	if modelID == "" {
		modelID = DefaultBedrockModel
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &BedrockEmbedder{
		client:    bedrockruntime.NewFromConfig(awsCfg),
		modelID:   modelID,
		dimension: dimension,
	}, nil
}

type titanEmbedRequest struct {
	InputText string `json:"inputText"`
}

type titanEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed generates an embedding vector for text via InvokeModel.
func (e *BedrockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(titanEmbedRequest{InputText: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	out, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke bedrock model: %w", err)
	}

	var resp titanEmbedResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(resp.Embedding) != e.dimension {
		return nil, fmt.Errorf("dimension mismatch: got %d, want %d (model: %s)", len(resp.Embedding), e.dimension, e.modelID)
	}

	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Model returns the Bedrock model id.
func (e *BedrockEmbedder) Model() string {
	return e.modelID
}

// Dimension returns the expected embedding dimension.
func (e *BedrockEmbedder) Dimension() int {
	return e.dimension
}
