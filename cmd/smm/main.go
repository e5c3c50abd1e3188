package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/config"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "v1.0.0" // Overwritten at build time

	verbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smm",
		Short: "AI marketing-effectiveness analysis for Instagram content",
		Long: `smm scores a piece of Instagram content for a target audience on
interactivity, entertainment, relevance and informativeness, and estimates
how likely it is to influence a purchase.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newTUICmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("smm version %s\n", version)
		},
	}
}

// setup loads configuration and builds the requester shared by analyze and tui.
func setup(ctx context.Context) (analyzer.Requester, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.ValidateForAnalysis(); err != nil {
		return nil, nil, nil, err
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = logging.New("debug", "console")
		if err != nil {
			return nil, nil, nil, err
		}
	}

	requester, closeFn, err := analyzer.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	cleanup := func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close AI client", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return requester, logger, cleanup, nil
}
