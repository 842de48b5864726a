package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ForgetInput defines the input schema for the forget tool. Exactly one of
// id or query must be set.
type ForgetInput struct {
	ID    string `json:"id,omitempty" jsonschema:"Fact id to delete"`
	Query string `json:"query,omitempty" jsonschema:"Natural-language description of the fact to delete"`
}

// ForgetOutput is the structured payload returned alongside the text summary.
type ForgetOutput struct {
	Deleted    bool              `json:"deleted"`
	ID         string            `json:"id,omitempty"`
	Text       string            `json:"text,omitempty"`
	Candidates []ForgetCandidate `json:"candidates,omitempty"`
}

// ForgetCandidate is a near match offered for disambiguation.
type ForgetCandidate struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Category    string  `json:"category"`
	VectorScore float64 `json:"vector_score"`
}

// NewForgetHandler creates the forget tool handler. Deleting by id is
// idempotent; deleting by query only happens when the match is unambiguous,
// otherwise candidates are returned so the caller can retry by id.
func NewForgetHandler(deps *Dependencies) mcp.ToolHandlerFor[ForgetInput, ForgetOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ForgetInput) (
		*mcp.CallToolResult, ForgetOutput, error,
	) {
		id := strings.TrimSpace(input.ID)
		query := strings.TrimSpace(input.Query)

		switch {
		case id == "" && query == "":
			return ErrorResult("Either id or query is required", "Provide the fact id, or describe the fact to delete"), ForgetOutput{}, nil
		case id != "" && query != "":
			return ErrorResult("Provide either id or query, not both", "Use id when you know it"), ForgetOutput{}, nil
		}

		if id != "" {
			if err := deps.Memory.ForgetByID(ctx, id); err != nil {
				deps.Logger.Error("forget by id failed", "id", id, "error", err)
				return ErrorResult("Failed to delete fact", "Store may be unavailable"), ForgetOutput{}, nil
			}
			return TextResult("Deleted fact " + id), ForgetOutput{Deleted: true, ID: id}, nil
		}

		res, err := deps.Memory.ForgetByQuery(ctx, query)
		if err != nil {
			deps.Logger.Error("forget by query failed", "error", err)
			return ErrorResult("Failed to delete fact", "Store or embedding backend may be unavailable"), ForgetOutput{}, nil
		}

		if res.Deleted != nil {
			output := ForgetOutput{Deleted: true, ID: res.Deleted.ID, Text: res.Deleted.Text}
			return TextResult(fmt.Sprintf("Deleted %q (id %s)", res.Deleted.Text, res.Deleted.ID)), output, nil
		}

		if len(res.Candidates) == 0 {
			return TextResult("No matching memories found; nothing deleted."), ForgetOutput{}, nil
		}

		output := ForgetOutput{Candidates: make([]ForgetCandidate, len(res.Candidates))}
		var b strings.Builder
		b.WriteString("Multiple or uncertain matches; nothing deleted. Retry with an id:\n")
		for i, c := range res.Candidates {
			output.Candidates[i] = ForgetCandidate{
				ID:          c.Fact.ID,
				Text:        c.Fact.Text,
				Category:    string(c.Fact.Category),
				VectorScore: c.VectorScore,
			}
			fmt.Fprintf(&b, "%d. %q (id %s, similarity %.2f)\n", i+1, c.Fact.Text, c.Fact.ID, c.VectorScore)
		}
		return TextResult(strings.TrimRight(b.String(), "\n")), output, nil
	}
}
