package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/engram-go/internal/service"
)

// RememberInput defines the input schema for the remember tool.
type RememberInput struct {
	Text       string  `json:"text" jsonschema:"required,The fact to store, one self-contained sentence"`
	Category   string  `json:"category,omitempty" jsonschema:"One of preference decision entity fact event lesson"`
	Importance float64 `json:"importance,omitempty" jsonschema:"How useful this fact is later, 0-1, default 0.7"`
	SessionKey string  `json:"session_key,omitempty" jsonschema:"Conversation this fact came from"`
}

// RememberOutput is the structured payload returned alongside the text
// summary.
type RememberOutput struct {
	Outcome    string  `json:"outcome"`
	ID         string  `json:"id,omitempty"`
	ExistingID string  `json:"existing_id,omitempty"`
	Text       string  `json:"text,omitempty"`
	Category   string  `json:"category,omitempty"`
	Importance float64 `json:"importance,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// NewRememberHandler creates the remember tool handler.
func NewRememberHandler(deps *Dependencies) mcp.ToolHandlerFor[RememberInput, RememberOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RememberInput) (
		*mcp.CallToolResult, RememberOutput, error,
	) {
		if strings.TrimSpace(input.Text) == "" {
			return ErrorResult("Text cannot be empty", "Provide the fact to store"), RememberOutput{}, nil
		}

		res, err := deps.Memory.Remember(ctx, input.Text, input.Category, input.Importance, input.SessionKey, "")
		if err != nil {
			deps.Logger.Error("remember failed", "error", err)
			return ErrorResult("Failed to store fact", err.Error()), RememberOutput{}, nil
		}

		switch res.Outcome {
		case service.OutcomeStored:
			output := RememberOutput{
				Outcome:    string(res.Outcome),
				ID:         res.Fact.ID,
				Text:       res.Fact.Text,
				Category:   string(res.Fact.Category),
				Importance: res.Fact.Importance,
			}
			summary := fmt.Sprintf("Stored [%s] %q (importance %.2f, id %s)",
				res.Fact.Category, res.Fact.Text, res.Fact.Importance, res.Fact.ID)
			return TextResult(summary), output, nil

		case service.OutcomeDuplicate:
			output := RememberOutput{
				Outcome:    string(res.Outcome),
				ExistingID: res.Existing.ID,
				Text:       res.Existing.Text,
			}
			summary := fmt.Sprintf("Not stored: a near-identical fact already exists: %q (id %s)",
				res.Existing.Text, res.Existing.ID)
			return TextResult(summary), output, nil

		default:
			output := RememberOutput{Outcome: string(res.Outcome), Reason: res.Reason}
			return TextResult("Not stored: " + res.Reason), output, nil
		}
	}
}
