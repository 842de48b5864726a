// Package cli provides the command-line interface for engram.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/engram-go/internal/config"
	"github.com/raphaelgruber/engram-go/internal/llm"
	"github.com/raphaelgruber/engram-go/internal/service"
	"github.com/raphaelgruber/engram-go/internal/store"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and store client
	cfg config.Config
	st  *store.Surreal

	// Lazy-initialized service
	memSvc *service.Service
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "engram",
	Short: "Long-term memory for conversational agents",
	Long: `Engram stores durable facts about a user and recalls them by meaning.

Facts are ranked by a blend of semantic similarity, importance, recency and
how often they have been recalled before. The same memory is exposed to
agents over MCP; this CLI inspects and manages it directly.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx := context.Background()
		st, err = store.NewSurreal(ctx, store.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, cliLogger())
		if err != nil {
			return fmt.Errorf("connect to store: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if st != nil {
			if err := st.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
			}
		}
	},
}

// cliLogger keeps SDK noise out of command output unless -v is set.
func cliLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// getService creates the memory service, initializing the embedder on first
// use. No extraction model: the CLI is a manual surface.
func getService(ctx context.Context) (*service.Service, error) {
	if memSvc != nil {
		return memSvc, nil
	}

	embedder, err := llm.NewEmbedder(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	memSvc = service.New(st, embedder, nil, &cfg, cliLogger(), nil)
	return memSvc, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(recallCmd)
	rootCmd.AddCommand(rememberCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(statsCmd)
}
