// Package agent integrates the memory pipelines with a host agent's turn
// lifecycle. The host publishes turn boundaries on a Bus; the hooks attached
// here run recall before the turn and capture after it.
package agent

import (
	"context"
	"sync"

	"github.com/raphaelgruber/engram-go/internal/memory"
)

// TurnStart describes a turn that is about to run.
type TurnStart struct {
	SessionKey string
	AgentID    string
	UserInput  string
}

// TurnEnd carries a completed turn's messages.
type TurnEnd struct {
	SessionKey string
	AgentID    string
	Messages   []memory.Message
}

// TurnStartHandler may return context text to prepend to the turn's prompt.
// An empty string injects nothing. Handlers must not fail the turn; they
// handle their own errors and return "".
type TurnStartHandler func(ctx context.Context, turn TurnStart) string

// TurnEndHandler consumes a finished turn.
type TurnEndHandler func(ctx context.Context, turn TurnEnd)

// Bus is a minimal synchronous turn-boundary event bus. Registration is
// expected at startup; emission can come from any goroutine.
type Bus struct {
	mu    sync.RWMutex
	start []TurnStartHandler
	end   []TurnEndHandler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// OnTurnStart registers a pre-turn handler. Handlers run in registration
// order.
func (b *Bus) OnTurnStart(h TurnStartHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start = append(b.start, h)
}

// OnTurnEnd registers a post-turn handler.
func (b *Bus) OnTurnEnd(h TurnEndHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.end = append(b.end, h)
}

// EmitTurnStart runs the pre-turn handlers and returns their non-empty
// context injections in registration order.
func (b *Bus) EmitTurnStart(ctx context.Context, turn TurnStart) []string {
	b.mu.RLock()
	handlers := b.start
	b.mu.RUnlock()

	var injections []string
	for _, h := range handlers {
		if text := h(ctx, turn); text != "" {
			injections = append(injections, text)
		}
	}
	return injections
}

// EmitTurnEnd runs the post-turn handlers.
func (b *Bus) EmitTurnEnd(ctx context.Context, turn TurnEnd) {
	b.mu.RLock()
	handlers := b.end
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, turn)
	}
}
