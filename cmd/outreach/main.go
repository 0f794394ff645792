// Package main provides the entry point for the HR outreach CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/hr-outreach/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "outreach",
	Short: "HR contact extraction and paced outreach mailer",
	Long: "Outreach extracts HR contacts from PDF or text listings and sends personalized " +
		"application emails under a daily quota, inside business hours, with a sent log " +
		"that guarantees nobody is contacted twice.",
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
}

var (
	configPath string
	verbose    bool
	logFile    string

	logger   = slog.Default()
	closeLog = func() error { return nil }
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "Path to the configuration file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "outreach.log", "Also write logs to this file (empty to disable)")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	l, closer, err := observability.NewLogger(observability.LogOptions{
		Verbose: verbose,
		File:    logFile,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger, closeLog = l, closer
	return nil
}

func closeLogging(_ *cobra.Command, _ []string) error {
	return closeLog()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_ = closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
