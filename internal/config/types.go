package config

// Config is the on-disk configuration shape.
//
// All durations are Go duration strings (e.g. "500ms", "10s", "1h").
// Environment variables (legacy names, see env.go) are layered under the
// file: defaults < environment < file.
type Config struct {
	Monitoring MonitoringConfig `json:"monitoring"`
	Probe      ProbeConfig      `json:"probe,omitempty"`
	Ledger     LedgerConfig     `json:"ledger,omitempty"`
	Notify     NotifyConfig     `json:"notify,omitempty"`
	SMTP       SMTPConfig       `json:"smtp,omitempty"`
	Telegram   TelegramConfig   `json:"telegram,omitempty"`
	Webhook    WebhookConfig    `json:"webhook,omitempty"`
	Features   FeatureConfig    `json:"features,omitempty"`
	Logging    LoggingConfig    `json:"logging,omitempty"`
}

// MonitoringConfig controls the check loop.
//
// Schedule accepts either a Go duration ("5m") for a fixed interval or a
// standard 5-field cron expression ("*/5 * * * *").
type MonitoringConfig struct {
	Service       string `json:"service"`
	Schedule      string `json:"schedule,omitempty"`
	Cooldown      string `json:"cooldown,omitempty"`
	RecoveryDelay string `json:"recovery_delay,omitempty"`
	LogLines      int    `json:"log_lines,omitempty"`
}

// ProbeConfig selects how service health is determined.
//
// Driver values:
//   - "systemctl": shell out to `systemctl is-active` (default)
//   - "dbus":      query systemd over D-Bus (linux only)
type ProbeConfig struct {
	Driver  string `json:"driver,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

// LedgerConfig controls health-state persistence.
//
// Driver values:
//   - "file":   single JSON document (default)
//   - "sqlite": SQLite database file (build with -tags sqlite)
type LedgerConfig struct {
	Driver      string `json:"driver,omitempty"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // sqlite only
}

// NotifyConfig controls alert delivery.
//
// Transport values: "smtp" (default), "telegram", "none".
// RetryBase is the first inter-attempt delay; it doubles after each
// failed attempt with no upper bound.
type NotifyConfig struct {
	Transport  string `json:"transport,omitempty"`
	RetryMax   int    `json:"retry_max,omitempty"`
	RetryBase  string `json:"retry_base,omitempty"`
	RatePerSec int    `json:"rate_per_sec,omitempty"`
}

type SMTPConfig struct {
	Server   string   `json:"server,omitempty"`
	Port     int      `json:"port,omitempty"`
	UseTLS   bool     `json:"use_tls,omitempty"`
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`
	From     string   `json:"from,omitempty"`
	To       []string `json:"to,omitempty"`
	Timeout  string   `json:"timeout,omitempty"`
}

type TelegramConfig struct {
	Token  string `json:"token,omitempty"`
	ChatID int64  `json:"chat_id,omitempty"`
}

// WebhookConfig controls the secondary best-effort notification path.
// Webhook delivery never affects alert bookkeeping.
type WebhookConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	URL     string `json:"url,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

type FeatureConfig struct {
	DryRun bool `json:"dry_run,omitempty"`
}

type LoggingConfig struct {
	Level   string        `json:"level,omitempty"`
	Console *bool         `json:"console,omitempty"`
	Syslog  *bool         `json:"syslog,omitempty"`
	File    LogFileConfig `json:"file,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Default returns the built-in configuration, matching the documented
// defaults before env/file layering.
func Default() *Config {
	on := true
	return &Config{
		Monitoring: MonitoringConfig{
			Service:       "squid",
			Schedule:      "5m",
			Cooldown:      "1h",
			RecoveryDelay: "1m",
			LogLines:      50,
		},
		Probe: ProbeConfig{
			Driver:  "systemctl",
			Timeout: "10s",
		},
		Ledger: LedgerConfig{
			Driver: "file",
			Path:   "/var/lib/svcmon/state.json",
		},
		Notify: NotifyConfig{
			Transport:  "smtp",
			RetryMax:   3,
			RetryBase:  "5s",
			RatePerSec: 1,
		},
		SMTP: SMTPConfig{
			Server:  "smtp.example.com",
			Port:    25,
			From:    "svcmon-noreply@example.com",
			To:      []string{"admin@example.com"},
			Timeout: "30s",
		},
		Webhook: WebhookConfig{
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:   "INFO",
			Console: &on,
			Syslog:  &on,
			File: LogFileConfig{
				Enabled: true,
				Path:    "/var/log/svcmon/monitor.log",
			},
		},
	}
}
