// Package config provides configuration loading and validation for the outreach CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/hr-outreach/internal/types"
)

// ErrDefaultCreated is returned by LoadConfig when the config file did not exist
// and a default one with placeholder credentials was written in its place.
var ErrDefaultCreated = errors.New("default configuration created")

// Delay policies.
const (
	DelayBounded  = "bounded"
	DelayAdaptive = "adaptive"
)

// Config is the sender configuration, loaded from JSON or YAML.
type Config struct {
	// Transport
	SMTPServer string `json:"smtp_server" yaml:"smtp_server" validate:"required,hostname_rfc1123"`
	SMTPPort   int    `json:"smtp_port" yaml:"smtp_port" validate:"required,min=1,max=65535"`
	Email      string `json:"email" yaml:"email" validate:"required,email"`
	Password   string `json:"password" yaml:"password" validate:"required"`

	// Pacing
	DailyLimit         int      `json:"daily_limit" yaml:"daily_limit" validate:"min=1"`
	MinDelay           int      `json:"min_delay" yaml:"min_delay" validate:"min=0"` // seconds
	MaxDelay           int      `json:"max_delay" yaml:"max_delay" validate:"min=0"` // seconds
	BusinessHoursStart int      `json:"business_hours_start" yaml:"business_hours_start" validate:"min=0,max=23"`
	BusinessHoursEnd   int      `json:"business_hours_end" yaml:"business_hours_end" validate:"min=1,max=24"`
	Gated              bool     `json:"gated" yaml:"gated"` // only send inside business hours
	SkipWeekends       bool     `json:"skip_weekends" yaml:"skip_weekends"`
	Holidays           []string `json:"holidays,omitempty" yaml:"holidays,omitempty"` // YYYY-MM-DD
	NationalHolidays   bool     `json:"national_holidays" yaml:"national_holidays"`   // add country_code's public holidays
	DelayPolicy        string   `json:"delay_policy" yaml:"delay_policy" validate:"omitempty,oneof=bounded adaptive"`
	AdaptiveFloor      int      `json:"adaptive_floor" yaml:"adaptive_floor" validate:"min=0"`
	AdaptiveCeiling    int      `json:"adaptive_ceiling" yaml:"adaptive_ceiling" validate:"min=0"`
	Schedule           []string `json:"schedule,omitempty" yaml:"schedule,omitempty"` // HH:MM send slots
	ScheduleBatchSize  int      `json:"schedule_batch_size" yaml:"schedule_batch_size" validate:"min=0"`

	// Files
	ResumePath        string `json:"resume_path" yaml:"resume_path"`
	HRContactsFile    string `json:"hr_contacts_file" yaml:"hr_contacts_file" validate:"required"`
	EmailTemplateFile string `json:"email_template_file" yaml:"email_template_file" validate:"required"`
	SentEmailsLog     string `json:"sent_emails_log" yaml:"sent_emails_log" validate:"required"`

	// Candidate
	CountryCode   string `json:"country_code" yaml:"country_code" validate:"omitempty,len=2"`
	CandidateName string `json:"candidate_name" yaml:"candidate_name"`
	PhoneNumber   string `json:"phone_number" yaml:"phone_number"`
	Subject       string `json:"subject" yaml:"subject"`
}

// DefaultConfig returns the configuration written for a first run.
func DefaultConfig() Config {
	return Config{
		SMTPServer:         "smtp.gmail.com",
		SMTPPort:           587,
		Email:              PlaceholderEmail,
		Password:           PlaceholderPassword,
		DailyLimit:         500,
		MinDelay:           30,
		MaxDelay:           120,
		BusinessHoursStart: 9,
		BusinessHoursEnd:   18,
		Gated:              true,
		NationalHolidays:   true,
		DelayPolicy:        DelayBounded,
		AdaptiveFloor:      30,
		AdaptiveCeiling:    300,
		Schedule:           []string{"09:00", "11:00", "14:00", "16:00"},
		ScheduleBatchSize:  20,
		ResumePath:         "resume.pdf",
		HRContactsFile:     "hr_contacts.csv",
		EmailTemplateFile:  "email_template.html",
		SentEmailsLog:      "sent_emails.json",
		CountryCode:        "IN",
		CandidateName:      "Your Name",
		PhoneNumber:        PlaceholderPhone,
		Subject:            "Application for Developer Role – {candidate_name}",
	}
}

// LoadConfig loads configuration from a JSON or YAML file.
// Keys absent from the file keep their default values. When the file does not
// exist, the default configuration is written to path and ErrDefaultCreated is returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		def := DefaultConfig()
		if err := Save(path, &def); err != nil {
			return nil, err
		}
		return &def, ErrDefaultCreated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	merged := cfg.MergeWithDefaults(DefaultConfig())
	return &merged, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks field formats and cross-field constraints.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.MinDelay > c.MaxDelay {
		return fmt.Errorf("config error: 'min_delay' must not exceed 'max_delay'")
	}
	if c.BusinessHoursStart >= c.BusinessHoursEnd {
		return fmt.Errorf("config error: 'business_hours_start' must be before 'business_hours_end'")
	}
	if c.AdaptiveCeiling > 0 && c.AdaptiveFloor > c.AdaptiveCeiling {
		return fmt.Errorf("config error: 'adaptive_floor' must not exceed 'adaptive_ceiling'")
	}
	if _, err := c.HolidayDates(); err != nil {
		return err
	}
	if _, err := c.ScheduleSlots(); err != nil {
		return err
	}
	return nil
}

// newValidator reports fields by their JSON key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// HolidayDates parses the holiday list.
func (c *Config) HolidayDates() ([]time.Time, error) {
	out := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(h), time.Local)
		if err != nil {
			return nil, fmt.Errorf("config error: holiday %q is not YYYY-MM-DD", h)
		}
		out = append(out, d)
	}
	return out, nil
}

// ScheduleSlots parses the HH:MM send slots into offsets from midnight.
func (c *Config) ScheduleSlots() ([]time.Duration, error) {
	out := make([]time.Duration, 0, len(c.Schedule))
	for _, s := range c.Schedule {
		t, err := time.Parse("15:04", strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("config error: schedule slot %q is not HH:MM", s)
		}
		out = append(out, time.Duration(t.Hour())*time.Hour+time.Duration(t.Minute())*time.Minute)
	}
	return out, nil
}

// Profile returns the candidate details used for personalization.
func (c *Config) Profile() types.Profile {
	return types.Profile{
		CandidateName: c.CandidateName,
		PhoneNumber:   c.PhoneNumber,
		EmailAddress:  c.Email,
	}
}

// MergeWithDefaults returns a new Config with empty string and zero numeric
// fields filled from defaults. Bool and list fields are left as they are.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fillString(&result.SMTPServer, defaults.SMTPServer)
	fillString(&result.DelayPolicy, defaults.DelayPolicy)
	fillString(&result.HRContactsFile, defaults.HRContactsFile)
	fillString(&result.EmailTemplateFile, defaults.EmailTemplateFile)
	fillString(&result.SentEmailsLog, defaults.SentEmailsLog)
	fillString(&result.CountryCode, defaults.CountryCode)
	fillString(&result.Subject, defaults.Subject)

	// Int fields: use default if zero
	fillInt(&result.SMTPPort, defaults.SMTPPort)
	fillInt(&result.DailyLimit, defaults.DailyLimit)
	fillInt(&result.MaxDelay, defaults.MaxDelay)
	fillInt(&result.BusinessHoursEnd, defaults.BusinessHoursEnd)
	fillInt(&result.AdaptiveCeiling, defaults.AdaptiveCeiling)
	fillInt(&result.ScheduleBatchSize, defaults.ScheduleBatchSize)

	return result
}

func fillString(dst *string, def string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = def
	}
}

func fillInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}
