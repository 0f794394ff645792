package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-outreach/internal/campaign"
	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/contacts"
	"github.com/jonathan/hr-outreach/internal/mailer"
	"github.com/jonathan/hr-outreach/internal/observability"
	"github.com/jonathan/hr-outreach/internal/sentlog"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send personalized emails to unsent contacts",
	Long: "Send personalized emails to contacts not yet in the sent log. By default one batch is " +
		"sent; --continuous keeps going across days and --scheduled sends at the configured daily slots.",
	RunE: runSend,
}

var (
	sendBatchSize  int
	sendContinuous bool
	sendScheduled  bool
)

func init() {
	sendCmd.Flags().IntVarP(&sendBatchSize, "batch-size", "n", 50, "Maximum contacts to attempt in a single batch")
	sendCmd.Flags().BoolVar(&sendContinuous, "continuous", false, "Run until every contact is sent, waiting across days")
	sendCmd.Flags().BoolVar(&sendScheduled, "scheduled", false, "Send schedule_batch_size contacts at each configured slot")

	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	if sendContinuous && sendScheduled {
		return errors.New("cannot use --continuous with --scheduled")
	}
	if sendBatchSize <= 0 {
		return fmt.Errorf("--batch-size must be positive, got %d", sendBatchSize)
	}

	ctx := cmd.Context()
	cfg, err := loadSendConfig()
	if err != nil {
		return err
	}

	tpl, err := compose.LoadTemplate(cfg.EmailTemplateFile, cfg.Subject)
	if err != nil {
		return err
	}
	list, err := contacts.Load(cfg.HRContactsFile)
	if err != nil {
		return err
	}

	opts, err := senderOptions(cfg)
	if err != nil {
		return err
	}
	att, err := compose.LoadAttachment(cfg.ResumePath)
	if err != nil {
		logger.Warn("send.attachment.missing", "path", cfg.ResumePath, "error", err)
	}
	opts.Attachment = att

	store, err := sentlog.Open(ctx, cfg.SentEmailsLog)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sender, err := campaign.NewSender(ctx, opts, campaign.Deps{
		Transport: mailer.NewSMTP(mailerConfig(cfg)),
		Store:     store,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = sender.Close() }()

	unsent := sender.Unsent(list)
	logger.Info("send.start",
		"run_id", sender.RunID(),
		"contacts", len(list),
		"unsent", len(unsent),
		"sent_today", sender.SentToday(),
		"daily_limit", sender.DailyLimit(),
	)
	if len(unsent) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "All contacts have already been emailed.")
		return nil
	}

	var report campaign.BatchReport
	switch {
	case sendContinuous:
		report, err = sender.RunContinuous(ctx, list, tpl)
	case sendScheduled:
		slots, serr := cfg.ScheduleSlots()
		if serr != nil {
			return serr
		}
		report, err = sender.RunScheduled(ctx, list, tpl, slots, cfg.ScheduleBatchSize)
	default:
		report = sender.RunBatch(ctx, list, tpl, sendBatchSize)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBatchReport(report)
	if err == nil && report.NoOpenWindow {
		err = campaign.ErrNoOpenWindow
	}
	if err != nil && !report.Cancelled {
		return err
	}
	return nil
}
