package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/hr-outreach/internal/campaign"
	"github.com/jonathan/hr-outreach/internal/config"
	"github.com/jonathan/hr-outreach/internal/mailer"
)

// loadConfig reads the config file and applies environment overrides. A
// missing file is created with defaults; strict callers treat that as an error.
func loadConfig(strict bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if errors.Is(err, config.ErrDefaultCreated) {
		logger.Warn("config.default_created", "path", configPath)
		if strict {
			return nil, fmt.Errorf("created default configuration at %s; fill in your details and run again", configPath)
		}
	} else if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSendConfig loads a configuration that must be ready for sending.
func loadSendConfig() (*config.Config, error) {
	cfg, err := loadConfig(true)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if issues := cfg.PlaceholderIssues(); len(issues) > 0 {
		return nil, fmt.Errorf("configuration is not ready: %s (run 'outreach setup check')", strings.Join(issues, "; "))
	}
	return cfg, nil
}

func mailerConfig(cfg *config.Config) mailer.Config {
	return mailer.Config{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.Email,
		Password: cfg.Password,
	}
}

// senderOptions maps the configuration onto campaign options.
func senderOptions(cfg *config.Config) (campaign.Options, error) {
	opts := campaign.Options{
		From:          cfg.Email,
		Profile:       cfg.Profile(),
		DailyLimit:    cfg.DailyLimit,
		BackoffJitter: 0.1,
	}

	switch cfg.DelayPolicy {
	case config.DelayAdaptive:
		opts.Delay = campaign.Adaptive{
			Floor:   time.Duration(cfg.AdaptiveFloor) * time.Second,
			Ceiling: time.Duration(cfg.AdaptiveCeiling) * time.Second,
		}
	default:
		opts.Delay = campaign.BoundedRandom{
			Min: time.Duration(cfg.MinDelay) * time.Second,
			Max: time.Duration(cfg.MaxDelay) * time.Second,
		}
	}

	if cfg.Gated {
		holidays, err := cfg.HolidayDates()
		if err != nil {
			return campaign.Options{}, err
		}
		opts.Window = &campaign.Window{
			StartHour:    cfg.BusinessHoursStart,
			EndHour:      cfg.BusinessHoursEnd,
			SkipWeekends: cfg.SkipWeekends,
			Holidays:     holidays,
		}
		if cfg.NationalHolidays {
			if c, ok := campaign.NationalCalendar(cfg.CountryCode); ok {
				opts.Window.Calendar = c
			} else {
				logger.Debug("config.holidays.no_calendar", "country_code", cfg.CountryCode,
					"holidays", len(holidays))
			}
		}
	}
	return opts, nil
}
