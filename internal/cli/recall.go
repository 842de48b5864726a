package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/engram-go/internal/memory"
)

var (
	recallLimit     int
	recallInjection bool
)

var recallCmd = &cobra.Command{
	Use:   "recall <query>",
	Short: "Retrieve memories relevant to a query",
	Long: `Retrieve stored memories ranked by semantic similarity, importance,
recency and access history.

Examples:
  engram recall "coffee preferences"
  engram recall "where does the user work" -n 10
  engram recall "travel plans" --injection`,
	Args: cobra.ExactArgs(1),
	RunE: runRecall,
}

func init() {
	recallCmd.Flags().IntVarP(&recallLimit, "limit", "n", 0, "max results (default from config)")
	recallCmd.Flags().BoolVar(&recallInjection, "injection", false, "print the raw context-injection block")
}

func runRecall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := getService(ctx)
	if err != nil {
		return err
	}

	res, err := svc.Recall(ctx, args[0], recallLimit)
	if err != nil {
		return fmt.Errorf("recall: %w", err)
	}

	if len(res.Memories) == 0 {
		fmt.Println("No relevant memories found.")
		return nil
	}

	if recallInjection {
		fmt.Println(res.Injection)
		return nil
	}

	fmt.Printf("Found %d memories:\n\n", len(res.Memories))
	for i, m := range res.Memories {
		fmt.Printf("%d. %s %s\n", i+1, render(categoryStyle, "["+string(m.Fact.Category)+"]"), m.Fact.Text)
		fmt.Printf("   %s\n", render(scoreStyle, fmt.Sprintf("relevance %d%%  similarity %.2f  importance %.2f  accessed %dx",
			memory.RelevancePercent(m.FinalScore), m.VectorScore, m.Fact.Importance, m.Fact.AccessCount)))
		if verbose {
			fmt.Printf("   %s\n", render(idStyle, "id "+m.Fact.ID))
		}
		fmt.Println()
	}

	return nil
}
