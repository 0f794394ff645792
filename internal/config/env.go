package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file values.
const (
	EnvEmail      = "OUTREACH_EMAIL"
	EnvPassword   = "OUTREACH_PASSWORD"
	EnvSMTPServer = "OUTREACH_SMTP_SERVER"
	EnvSMTPPort   = "OUTREACH_SMTP_PORT"
)

// ApplyEnv overrides credentials and transport settings from the environment,
// so secrets can live in .env rather than the config file.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvEmail)); v != "" {
		c.Email = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSMTPServer)); v != "" {
		c.SMTPServer = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSMTPPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvSMTPPort, err)
		}
		c.SMTPPort = port
	}
	return nil
}
