package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/engram-go/internal/memory"
)

// maxRecallLimit bounds how many memories a single recall may request.
const maxRecallLimit = 50

// RecallInput defines the input schema for the recall tool.
type RecallInput struct {
	Query string `json:"query" jsonschema:"required,Natural-language description of what to recall"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max memories to return, default 5"`
}

// RecallOutput is the structured payload returned alongside the text summary.
type RecallOutput struct {
	Query    string         `json:"query"`
	Count    int            `json:"count"`
	Memories []RecallMemory `json:"memories"`
}

// RecallMemory is one surfaced memory with its scores.
type RecallMemory struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Category    string  `json:"category"`
	Importance  float64 `json:"importance"`
	VectorScore float64 `json:"vector_score"`
	FinalScore  float64 `json:"final_score"`
}

// NewRecallHandler creates the recall tool handler.
func NewRecallHandler(deps *Dependencies) mcp.ToolHandlerFor[RecallInput, RecallOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecallInput) (
		*mcp.CallToolResult, RecallOutput, error,
	) {
		if strings.TrimSpace(input.Query) == "" {
			return ErrorResult("Query cannot be empty", "Describe what you want to recall"), RecallOutput{}, nil
		}
		if input.Limit > maxRecallLimit {
			return ErrorResult(fmt.Sprintf("Limit must be 1-%d", maxRecallLimit), "Reduce the limit"), RecallOutput{}, nil
		}

		res, err := deps.Memory.Recall(ctx, input.Query, input.Limit)
		if err != nil {
			deps.Logger.Error("recall failed", "error", err)
			return ErrorResult("Recall failed", "Store or embedding backend may be unavailable"), RecallOutput{}, nil
		}

		output := RecallOutput{
			Query:    res.Query,
			Count:    len(res.Memories),
			Memories: toRecallMemories(res.Memories),
		}

		if len(res.Memories) == 0 {
			return TextResult("No relevant memories found."), output, nil
		}
		return TextResult(res.Injection), output, nil
	}
}

func toRecallMemories(scored []memory.ScoredMemory) []RecallMemory {
	out := make([]RecallMemory, len(scored))
	for i, m := range scored {
		out[i] = RecallMemory{
			ID:          m.Fact.ID,
			Text:        m.Fact.Text,
			Category:    string(m.Fact.Category),
			Importance:  m.Fact.Importance,
			VectorScore: m.VectorScore,
			FinalScore:  m.FinalScore,
		}
	}
	return out
}
