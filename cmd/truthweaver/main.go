// Package main provides the entry point for the truthweaver CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "truthweaver",
	Short: "Transcribe interviews and reconcile what candidates actually said",
	Long: `truthweaver turns interview recordings into transcripts and analyzes a set of
transcript sessions for one subject, producing a "revealed truth" profile
and any contradictions found between sessions.

Configuration is resolved in order: defaults, .env file, TRUTHWEAVER_* environment
variables, the --config JSON file, then command-line flags.`,
	SilenceErrors: true,
	// Argument errors print usage; failures after that point do not.
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cmd.SilenceUsage = true
	},
}

var (
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: .env in the working directory, if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries to stderr")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
