package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show memory store statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := getService(ctx)
	if err != nil {
		return err
	}

	count, err := svc.CountFacts(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	fmt.Printf("Facts stored: %s\n", render(successStyle, fmt.Sprintf("%d", count)))
	fmt.Printf("Store: %s (%s/%s)\n", cfg.SurrealDBURL, cfg.SurrealDBNamespace, cfg.SurrealDBDatabase)
	fmt.Printf("Embedding: %s/%s (%d dimensions)\n", cfg.EmbedProvider, cfg.EmbedModel, cfg.EmbedDimension)
	if verbose {
		fmt.Printf("Recall limit: %d, relevance floor: %.2f, dedup threshold: %.2f\n",
			cfg.Memory.RecallLimit, cfg.Memory.RelevanceFloor, cfg.Memory.DedupThreshold)
		fmt.Printf("Weights: vector %.2f, importance %.2f, recency %.2f, access %.2f (decay %.0f days)\n",
			cfg.Memory.Weights.Vector, cfg.Memory.Weights.Importance,
			cfg.Memory.Weights.Recency, cfg.Memory.Weights.Access, cfg.Memory.DecayDays)
	}

	return nil
}
