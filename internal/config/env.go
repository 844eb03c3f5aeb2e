package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overlays environment variables onto cfg.
//
// The variable names predate the file format, so the interval-style values
// are plain integer seconds (CHECK_INTERVAL=300) rather than Go durations.
func applyEnv(cfg *Config) {
	envStr("SMTP_SERVER", &cfg.SMTP.Server)
	envInt("SMTP_PORT", &cfg.SMTP.Port)
	envBool("SMTP_USE_TLS", &cfg.SMTP.UseTLS)
	envStr("SMTP_USERNAME", &cfg.SMTP.Username)
	envStr("SMTP_PASSWORD", &cfg.SMTP.Password)
	envStr("SMTP_FROM", &cfg.SMTP.From)
	if v, ok := lookup("SMTP_TO"); ok {
		parts := strings.Split(v, ",")
		to := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				to = append(to, p)
			}
		}
		if len(to) > 0 {
			cfg.SMTP.To = to
		}
	}
	envSeconds("SMTP_TIMEOUT", &cfg.SMTP.Timeout)

	envStr("SERVICE_NAME", &cfg.Monitoring.Service)
	envSeconds("CHECK_INTERVAL", &cfg.Monitoring.Schedule)
	envSeconds("ALERT_COOLDOWN", &cfg.Monitoring.Cooldown)
	envStr("STATE_FILE", &cfg.Ledger.Path)
	envStr("LOG_FILE", &cfg.Logging.File.Path)
	envStr("LOG_LEVEL", &cfg.Logging.Level)

	envInt("RETRY_ATTEMPTS", &cfg.Notify.RetryMax)
	envSeconds("RETRY_DELAY", &cfg.Notify.RetryBase)

	envBool("DRY_RUN", &cfg.Features.DryRun)
	if v, ok := lookup("ENABLE_SYSLOG"); ok {
		b := parseBool(v)
		cfg.Logging.Syslog = &b
	}
	envBool("ENABLE_WEBHOOKS", &cfg.Webhook.Enabled)
	envStr("WEBHOOK_URL", &cfg.Webhook.URL)

	envStr("TELEGRAM_TOKEN", &cfg.Telegram.Token)
	if v, ok := lookup("TELEGRAM_CHAT_ID"); ok {
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func envStr(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func envInt(key string, dst *int) {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v, ok := lookup(key); ok {
		*dst = parseBool(v)
	}
}

func parseBool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// envSeconds reads an integer-seconds env var into a Go duration string field.
func envSeconds(key string, dst *string) {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			*dst = (time.Duration(n) * time.Second).String()
		}
	}
}
