package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/engram-go/internal/memory"
)

// CaptureInput defines the input schema for the capture tool.
type CaptureInput struct {
	Messages   []CaptureMessage `json:"messages" jsonschema:"required,The turn's messages in order"`
	SessionKey string           `json:"session_key,omitempty" jsonschema:"Conversation identifier"`
	AgentID    string           `json:"agent_id,omitempty" jsonschema:"Identifier of the calling agent"`
}

// CaptureMessage is one conversation message. Only user-role messages are
// considered for extraction.
type CaptureMessage struct {
	Role    string `json:"role" jsonschema:"required,user or assistant"`
	Content string `json:"content" jsonschema:"required,Message text"`
}

// CaptureOutput is the structured payload returned alongside the text
// summary.
type CaptureOutput struct {
	Stored int            `json:"stored"`
	Facts  []RecallMemory `json:"facts,omitempty"`
}

// NewCaptureHandler creates the capture tool handler. Hosts call it at the
// end of a turn to extract and store durable facts; it never reports turn
// content problems as errors, only what it managed to store.
func NewCaptureHandler(deps *Dependencies) mcp.ToolHandlerFor[CaptureInput, CaptureOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CaptureInput) (
		*mcp.CallToolResult, CaptureOutput, error,
	) {
		if len(input.Messages) == 0 {
			return ErrorResult("Messages cannot be empty", "Provide the turn's messages"), CaptureOutput{}, nil
		}

		messages := make([]memory.Message, len(input.Messages))
		for i, m := range input.Messages {
			messages[i] = memory.Message{Role: m.Role, Content: m.Content}
		}

		stored := deps.Memory.Capture(ctx, messages, input.SessionKey, input.AgentID)

		output := CaptureOutput{Stored: len(stored), Facts: make([]RecallMemory, len(stored))}
		for i, f := range stored {
			output.Facts[i] = RecallMemory{
				ID:         f.ID,
				Text:       f.Text,
				Category:   string(f.Category),
				Importance: f.Importance,
			}
		}

		if len(stored) == 0 {
			return TextResult("No new facts captured."), output, nil
		}
		return TextResult(fmt.Sprintf("Captured %d facts.", len(stored))), output, nil
	}
}
