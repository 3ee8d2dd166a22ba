package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wldnd519/BE/internal/app"
	"github.com/wldnd519/BE/internal/config"
	"github.com/wldnd519/BE/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "eldercarectl",
	Short: "Operator tool for the eldercare backend",
	Long: `eldercarectl runs maintenance tasks against the eldercare database:
applying migrations, running the daily jobs by hand and checking mail delivery.
Configuration comes from the same environment variables (and .env) as the server.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")
}

// loadApp reads config and connects; callers must Close the result.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return app.New(contextOf(cmd), cfg, logging.NewWithWriter(os.Stderr, cfg.Env, level))
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
