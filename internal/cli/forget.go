package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var forgetQuery string

var forgetCmd = &cobra.Command{
	Use:   "forget [id]",
	Short: "Delete a stored memory",
	Long: `Delete a memory by id, or describe it with --query.

A query only deletes when it matches exactly one fact with high confidence;
otherwise the near matches are listed so you can forget by id.

Examples:
  engram forget 7b1c6c1e-0f6b-4a6e-9c5d-2f2a6d9a3b41
  engram forget --query "the coffee preference"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForget,
}

func init() {
	forgetCmd.Flags().StringVarP(&forgetQuery, "query", "q", "", "describe the fact to delete")
}

func runForget(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	switch {
	case len(args) == 0 && forgetQuery == "":
		return fmt.Errorf("provide a fact id or --query")
	case len(args) == 1 && forgetQuery != "":
		return fmt.Errorf("provide either an id or --query, not both")
	}

	svc, err := getService(ctx)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := svc.ForgetByID(ctx, args[0]); err != nil {
			return fmt.Errorf("forget: %w", err)
		}
		fmt.Printf("%s %s\n", render(successStyle, "Deleted"), args[0])
		return nil
	}

	res, err := svc.ForgetByQuery(ctx, forgetQuery)
	if err != nil {
		return fmt.Errorf("forget: %w", err)
	}

	if res.Deleted != nil {
		fmt.Printf("%s %s\n", render(successStyle, "Deleted"), res.Deleted.Text)
		fmt.Printf("  %s\n", render(idStyle, "id "+res.Deleted.ID))
		return nil
	}

	if len(res.Candidates) == 0 {
		fmt.Println("No matching memories found; nothing deleted.")
		return nil
	}

	fmt.Printf("%s retry with an id:\n\n", render(warnStyle, "Multiple or uncertain matches, nothing deleted;"))
	for i, c := range res.Candidates {
		fmt.Printf("%d. %s %s\n", i+1, render(categoryStyle, "["+string(c.Fact.Category)+"]"), c.Fact.Text)
		fmt.Printf("   %s\n", render(scoreStyle, fmt.Sprintf("similarity %.2f", c.VectorScore)))
		fmt.Printf("   %s\n", render(idStyle, "id "+c.Fact.ID))
	}
	return nil
}
