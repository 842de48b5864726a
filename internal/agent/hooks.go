package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/raphaelgruber/engram-go/internal/memory"
	"github.com/raphaelgruber/engram-go/internal/service"
)

// Memory is the slice of the service the turn hooks need. The concrete
// pipelines stay directly invocable; the hooks only automate them.
type Memory interface {
	Recall(ctx context.Context, query string, limit int) (*service.RecallResult, error)
	Capture(ctx context.Context, messages []memory.Message, sessionKey, agentID string) []memory.Fact
}

// Attach wires automatic memory onto a turn bus: recall against the user's
// input before each turn, capture of the turn's messages after it.
//
// A failed recall injects nothing and is logged; the turn itself is never
// affected. Capture handles its own failures.
func Attach(bus *Bus, mem Memory, logger *slog.Logger) {
	bus.OnTurnStart(func(ctx context.Context, turn TurnStart) string {
		if strings.TrimSpace(turn.UserInput) == "" {
			return ""
		}
		res, err := mem.Recall(ctx, turn.UserInput, 0)
		if err != nil {
			logger.Warn("pre-turn recall failed", "session_key", turn.SessionKey, "error", err)
			return ""
		}
		return res.Injection
	})

	bus.OnTurnEnd(func(ctx context.Context, turn TurnEnd) {
		mem.Capture(ctx, turn.Messages, turn.SessionKey, turn.AgentID)
	})
}
