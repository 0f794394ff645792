package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/config"
	"github.com/jonathan/hr-outreach/internal/contacts"
	"github.com/jonathan/hr-outreach/internal/mailer"
	"github.com/jonathan/hr-outreach/internal/observability"
	"github.com/jonathan/hr-outreach/internal/schemas"
	"github.com/jonathan/hr-outreach/internal/sentlog"
	"github.com/jonathan/hr-outreach/internal/util"
	schemadocs "github.com/jonathan/hr-outreach/schemas"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create and check the sender configuration",
}

var setupInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration and email template",
	RunE:  runSetupInit,
}

var setupCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report configuration problems before sending",
	RunE:  runSetupCheck,
}

var (
	setupForce    bool
	setupTestSMTP bool
)

const smtpProbeTimeout = 30 * time.Second

func init() {
	setupInitCmd.Flags().BoolVar(&setupForce, "force", false, "Overwrite existing files")
	setupCheckCmd.Flags().BoolVar(&setupTestSMTP, "test-smtp", false, "Connect and log in to the SMTP server")

	setupCmd.AddCommand(setupInitCmd, setupCheckCmd)
	rootCmd.AddCommand(setupCmd)
}

func runSetupInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cfg := config.DefaultConfig()
	if existing, err := os.Stat(configPath); err == nil && !existing.IsDir() && !setupForce {
		_, _ = fmt.Fprintf(out, "Config %s already exists (use --force to overwrite)\n", configPath)
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	} else {
		if err := config.Save(configPath, &cfg); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote %s\n", configPath)
	}

	tplPath := cfg.EmailTemplateFile
	if _, err := os.Stat(tplPath); err == nil && !setupForce {
		_, _ = fmt.Fprintf(out, "Template %s already exists\n", tplPath)
	} else {
		if err := os.WriteFile(tplPath, []byte(compose.DefaultTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write template: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Wrote %s\n", tplPath)
	}

	_, _ = fmt.Fprintf(out, "\nNext: edit %s (or set %s and %s in .env), then run 'outreach setup check'.\n",
		configPath, config.EnvEmail, config.EnvPassword)
	return nil
}

func runSetupCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	issues := checkConfig(cmd.Context(), cfg)
	observability.NewPrinter(cmd.OutOrStdout()).PrintSetupIssues(issues)
	if len(issues) > 0 {
		return fmt.Errorf("setup check found %d issues", len(issues))
	}
	return nil
}

// checkConfig collects every problem that would stop or degrade a send.
func checkConfig(ctx context.Context, cfg *config.Config) []string {
	issues := cfg.PlaceholderIssues()

	if err := cfg.Validate(); err != nil {
		issues = append(issues, err.Error())
	}
	if err := schemas.ValidateValue(schemadocs.Config, cfg); err != nil {
		issues = append(issues, err.Error())
	}

	if _, err := compose.LoadTemplate(cfg.EmailTemplateFile, cfg.Subject); err != nil {
		issues = append(issues, err.Error())
	}
	if list, err := contacts.Load(cfg.HRContactsFile); err != nil {
		issues = append(issues, err.Error())
	} else if len(list) == 0 {
		issues = append(issues, fmt.Sprintf("contact table %s has no rows", cfg.HRContactsFile))
	}
	if cfg.ResumePath != "" {
		if _, err := os.Stat(cfg.ResumePath); err != nil {
			issues = append(issues, fmt.Sprintf("resume %s not found (emails will be sent without attachment)", cfg.ResumePath))
		}
	}
	issues = append(issues, checkSentLog(cfg.SentEmailsLog)...)
	if store, err := sentlog.Open(ctx, cfg.SentEmailsLog); err != nil {
		issues = append(issues, util.RedactSecrets(err.Error()))
	} else {
		if _, err := store.Entries(ctx); err != nil {
			issues = append(issues, util.RedactSecrets(err.Error()))
		}
		_ = store.Close()
	}

	if setupTestSMTP {
		probeCtx, cancel := context.WithTimeout(ctx, smtpProbeTimeout)
		defer cancel()
		if err := mailer.Probe(probeCtx, mailerConfig(cfg)); err != nil {
			issues = append(issues, util.RedactSecrets(err.Error(), cfg.Password))
		} else {
			logger.Info("setup.smtp.ok", "server", cfg.SMTPServer, "port", cfg.SMTPPort)
		}
	}
	return issues
}

// checkSentLog validates a JSON sent-log file against its schema.
func checkSentLog(path string) []string {
	if filepath.Ext(path) != ".json" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := schemas.ValidateFileString(schemadocs.SentLog, path); err != nil {
		return []string{fmt.Sprintf("sent log %s: %v", path, err)}
	}
	return nil
}
