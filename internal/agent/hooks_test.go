package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/engram-go/internal/memory"
	"github.com/raphaelgruber/engram-go/internal/service"
)

type fakeMemory struct {
	mu           sync.Mutex
	recallErr    error
	injection    string
	recallQuery  string
	capturedMsgs []memory.Message
	capturedKey  string
}

func (f *fakeMemory) Recall(_ context.Context, query string, _ int) (*service.RecallResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recallQuery = query
	if f.recallErr != nil {
		return nil, f.recallErr
	}
	return &service.RecallResult{Query: query, Injection: f.injection}, nil
}

func (f *fakeMemory) Capture(_ context.Context, messages []memory.Message, sessionKey, _ string) []memory.Fact {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.capturedMsgs = messages
	f.capturedKey = sessionKey
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAttachInjectsRecallOnTurnStart(t *testing.T) {
	bus := NewBus()
	mem := &fakeMemory{injection: "<relevant-memories>\nnote\n1. [preference] x (relevance: 80%)\n</relevant-memories>"}
	Attach(bus, mem, testLogger())

	injections := bus.EmitTurnStart(context.Background(), TurnStart{
		SessionKey: "sess-1",
		UserInput:  "what coffee do I like?",
	})

	require.Len(t, injections, 1)
	assert.Equal(t, mem.injection, injections[0])
	assert.Equal(t, "what coffee do I like?", mem.recallQuery)
}

func TestAttachSkipsEmptyInput(t *testing.T) {
	bus := NewBus()
	mem := &fakeMemory{injection: "should not appear"}
	Attach(bus, mem, testLogger())

	injections := bus.EmitTurnStart(context.Background(), TurnStart{UserInput: "   "})
	assert.Empty(t, injections)
	assert.Empty(t, mem.recallQuery)
}

func TestAttachRecallFailureInjectsNothing(t *testing.T) {
	bus := NewBus()
	mem := &fakeMemory{recallErr: fmt.Errorf("store unreachable")}
	Attach(bus, mem, testLogger())

	injections := bus.EmitTurnStart(context.Background(), TurnStart{UserInput: "anything"})
	assert.Empty(t, injections)
}

func TestAttachEmptyRecallInjectsNothing(t *testing.T) {
	bus := NewBus()
	mem := &fakeMemory{}
	Attach(bus, mem, testLogger())

	injections := bus.EmitTurnStart(context.Background(), TurnStart{UserInput: "anything"})
	assert.Empty(t, injections)
}

func TestAttachCapturesOnTurnEnd(t *testing.T) {
	bus := NewBus()
	mem := &fakeMemory{}
	Attach(bus, mem, testLogger())

	messages := []memory.Message{
		{Role: "user", Content: "I moved to Vienna last month"},
		{Role: "assistant", Content: "How do you like it?"},
	}
	bus.EmitTurnEnd(context.Background(), TurnEnd{SessionKey: "sess-2", Messages: messages})

	assert.Equal(t, messages, mem.capturedMsgs)
	assert.Equal(t, "sess-2", mem.capturedKey)
}

func TestBusRunsHandlersInOrder(t *testing.T) {
	bus := NewBus()
	bus.OnTurnStart(func(context.Context, TurnStart) string { return "first" })
	bus.OnTurnStart(func(context.Context, TurnStart) string { return "" })
	bus.OnTurnStart(func(context.Context, TurnStart) string { return "third" })

	injections := bus.EmitTurnStart(context.Background(), TurnStart{UserInput: "x"})
	assert.Equal(t, []string{"first", "third"}, injections)
}
