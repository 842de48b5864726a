package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/engram-go/internal/metrics"
)

// StatsInput defines the input schema for the stats tool. No parameters.
type StatsInput struct{}

// StatsOutput is the structured payload returned alongside the text summary.
type StatsOutput struct {
	Facts   int              `json:"facts"`
	Metrics metrics.Snapshot `json:"metrics"`
}

// NewStatsHandler creates the stats tool handler.
func NewStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[StatsInput, StatsOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (
		*mcp.CallToolResult, StatsOutput, error,
	) {
		count, err := deps.Memory.CountFacts(ctx)
		if err != nil {
			deps.Logger.Error("stats failed", "error", err)
			return ErrorResult("Failed to read stats", "Store may be unavailable"), StatsOutput{}, nil
		}

		snap := deps.Memory.Metrics().Snapshot()
		output := StatsOutput{Facts: count, Metrics: snap}

		return TextResult(formatStats(count, snap)), output, nil
	}
}

func formatStats(facts int, snap metrics.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Facts stored: %d\n", facts)
	fmt.Fprintf(&b, "Uptime: %.0fs\n", snap.UptimeSeconds)

	if len(snap.Counters) > 0 {
		b.WriteString("Counters:\n")
		for _, name := range sortedKeys(snap.Counters) {
			fmt.Fprintf(&b, "  %s: %d\n", name, snap.Counters[name])
		}
	}

	if len(snap.Operations) > 0 {
		b.WriteString("Operations:\n")
		for _, name := range sortedKeys(snap.Operations) {
			op := snap.Operations[name]
			fmt.Fprintf(&b, "  %s: %d calls, avg %.1fms, max %dms\n",
				name, op.Count, op.AvgTimeMs, op.MaxTimeMs)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
