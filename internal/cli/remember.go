package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/engram-go/internal/service"
)

var (
	rememberCategory   string
	rememberImportance float64
	rememberSession    string
)

var rememberCmd = &cobra.Command{
	Use:   "remember <text>",
	Short: "Store a fact in long-term memory",
	Long: `Store a durable fact about the user.

Near-duplicates of existing facts are not stored; the existing fact is shown
instead.

Examples:
  engram remember "User prefers dark roast coffee"
  engram remember "User decided to migrate the blog to Hugo" -c decision -i 0.8`,
	Args: cobra.ExactArgs(1),
	RunE: runRemember,
}

func init() {
	rememberCmd.Flags().StringVarP(&rememberCategory, "category", "c", "", "preference, decision, entity, fact, event or lesson")
	rememberCmd.Flags().Float64VarP(&rememberImportance, "importance", "i", 0, "importance 0-1 (default 0.7)")
	rememberCmd.Flags().StringVar(&rememberSession, "session", "", "session key to attribute the fact to")
}

func runRemember(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := getService(ctx)
	if err != nil {
		return err
	}

	res, err := svc.Remember(ctx, args[0], rememberCategory, rememberImportance, rememberSession, "")
	if err != nil {
		return fmt.Errorf("remember: %w", err)
	}

	switch res.Outcome {
	case service.OutcomeStored:
		fmt.Printf("%s %s %s\n", render(successStyle, "Stored"),
			render(categoryStyle, "["+string(res.Fact.Category)+"]"), res.Fact.Text)
		fmt.Printf("  %s\n", render(idStyle, "id "+res.Fact.ID))
	case service.OutcomeDuplicate:
		fmt.Printf("%s a near-identical fact already exists:\n", render(warnStyle, "Not stored:"))
		fmt.Printf("  %s\n", res.Existing.Text)
		fmt.Printf("  %s\n", render(idStyle, "id "+res.Existing.ID))
	default:
		fmt.Printf("%s %s\n", render(warnStyle, "Not stored:"), res.Reason)
	}

	return nil
}
