package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate checks the configuration for startup-fatal mistakes.
// It is the only place in the program where a config problem is fatal;
// everything downstream consumes already-validated values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Monitoring.Service) == "" {
		return fmt.Errorf("monitoring.service is required")
	}
	if _, err := ParseSchedulable("monitoring.schedule", c.Monitoring.Schedule); err != nil {
		return err
	}
	for _, f := range []struct{ path, raw string }{
		{"monitoring.cooldown", c.Monitoring.Cooldown},
		{"monitoring.recovery_delay", c.Monitoring.RecoveryDelay},
		{"probe.timeout", c.Probe.Timeout},
		{"notify.retry_base", c.Notify.RetryBase},
		{"smtp.timeout", c.SMTP.Timeout},
		{"webhook.timeout", c.Webhook.Timeout},
		{"ledger.busy_timeout", c.Ledger.BusyTimeout},
	} {
		if _, err := ParseDurationField(f.path, f.raw); err != nil {
			return err
		}
	}
	if c.Monitoring.LogLines < 0 {
		return fmt.Errorf("monitoring.log_lines: must be >= 0")
	}
	if c.Notify.RetryMax < 0 {
		return fmt.Errorf("notify.retry_max: must be >= 0")
	}

	switch d := strings.ToLower(strings.TrimSpace(c.Probe.Driver)); d {
	case "", "systemctl", "dbus":
	default:
		return fmt.Errorf("probe.driver: unknown driver %q", c.Probe.Driver)
	}
	switch d := strings.ToLower(strings.TrimSpace(c.Ledger.Driver)); d {
	case "", "file", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("ledger.driver: unknown driver %q", c.Ledger.Driver)
	}

	transport := strings.ToLower(strings.TrimSpace(c.Notify.Transport))
	switch transport {
	case "", "smtp":
		if err := c.validateSMTP(); err != nil {
			return err
		}
	case "telegram":
		if strings.TrimSpace(c.Telegram.Token) == "" {
			return fmt.Errorf("telegram.token is required for the telegram transport")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required for the telegram transport")
		}
	case "none":
	default:
		return fmt.Errorf("notify.transport: unknown transport %q", c.Notify.Transport)
	}

	if c.Webhook.Enabled {
		u, err := url.Parse(strings.TrimSpace(c.Webhook.URL))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("webhook.url: invalid URL %q", c.Webhook.URL)
		}
	}
	return nil
}

func (c *Config) validateSMTP() error {
	if !emailPattern.MatchString(c.SMTP.From) {
		return fmt.Errorf("smtp.from: invalid address %q", c.SMTP.From)
	}
	if len(c.SMTP.To) == 0 {
		return fmt.Errorf("smtp.to: at least one recipient is required")
	}
	for _, addr := range c.SMTP.To {
		if !emailPattern.MatchString(strings.TrimSpace(addr)) {
			return fmt.Errorf("smtp.to: invalid address %q", addr)
		}
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port: %d out of range", c.SMTP.Port)
	}
	return nil
}
