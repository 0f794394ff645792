package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-outreach/internal/contacts"
	"github.com/jonathan/hr-outreach/internal/observability"
	"github.com/jonathan/hr-outreach/internal/sentlog"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sent-log statistics",
	RunE:  runStatus,
}

var statusDays int

func init() {
	statusCmd.Flags().IntVar(&statusDays, "days", 7, "Number of recent days to list")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	store, err := sentlog.Open(ctx, cfg.SentEmailsLog)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Entries(ctx)
	if err != nil {
		return err
	}

	pending := 0
	list, err := contacts.Load(cfg.HRContactsFile)
	switch {
	case err == nil:
		pending = len(sentlog.FilterUnsent(list, entries))
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("status.contacts.missing", "path", cfg.HRContactsFile)
	default:
		return err
	}

	st := sentlog.Summarize(entries, time.Now(), statusDays)
	observability.NewPrinter(cmd.OutOrStdout()).PrintStats(st, cfg.DailyLimit, pending)
	return nil
}
