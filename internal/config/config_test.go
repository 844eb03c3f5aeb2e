package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := NewManager("").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Monitoring.Service != "squid" {
		t.Fatalf("Service = %q, want squid", cfg.Monitoring.Service)
	}
	if cfg.Notify.RetryMax != 3 {
		t.Fatalf("RetryMax = %d, want 3", cfg.Notify.RetryMax)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
monitoring:
  service: nginx
  schedule: "30s"
  cooldown: "10m"
notify:
  transport: none
ledger:
  path: /tmp/svcmon-test/state.json
`)
	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Monitoring.Service != "nginx" {
		t.Fatalf("Service = %q, want nginx", cfg.Monitoring.Service)
	}
	if cfg.Monitoring.Schedule != "30s" {
		t.Fatalf("Schedule = %q, want 30s", cfg.Monitoring.Schedule)
	}
	// Untouched sections keep defaults.
	if cfg.Probe.Timeout != "10s" {
		t.Fatalf("Probe.Timeout = %q, want default 10s", cfg.Probe.Timeout)
	}
}

func TestEnvLayersUnderFile(t *testing.T) {
	t.Setenv("SERVICE_NAME", "redis")
	t.Setenv("CHECK_INTERVAL", "120")
	t.Setenv("ALERT_COOLDOWN", "3600")
	t.Setenv("SMTP_TO", "ops@example.com, oncall@example.com")
	t.Setenv("DRY_RUN", "true")

	// File wins over env for the service name; env fills the rest.
	path := writeConfig(t, "config.yaml", `
monitoring:
  service: nginx
notify:
  transport: none
`)
	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Monitoring.Service != "nginx" {
		t.Fatalf("Service = %q, file should win over env", cfg.Monitoring.Service)
	}
	if cfg.Monitoring.Schedule != "2m0s" {
		t.Fatalf("Schedule = %q, want 2m0s from CHECK_INTERVAL", cfg.Monitoring.Schedule)
	}
	if cfg.Monitoring.Cooldown != "1h0m0s" {
		t.Fatalf("Cooldown = %q, want 1h0m0s", cfg.Monitoring.Cooldown)
	}
	if len(cfg.SMTP.To) != 2 || cfg.SMTP.To[1] != "oncall@example.com" {
		t.Fatalf("SMTP.To = %v", cfg.SMTP.To)
	}
	if !cfg.Features.DryRun {
		t.Fatal("DryRun should be true from env")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
monitoring:
  service: nginx
  tyop: true
`)
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidateRejectsBadAddresses(t *testing.T) {
	cfg := Default()
	cfg.SMTP.From = "not-an-address"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid from address to fail validation")
	}

	cfg = Default()
	cfg.SMTP.To = []string{"ok@example.com", "broken@"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid to address to fail validation")
	}

	cfg = Default()
	cfg.SMTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected out-of-range port to fail validation")
	}
}

func TestValidateTransportRequirements(t *testing.T) {
	cfg := Default()
	cfg.Notify.Transport = "telegram"
	if err := cfg.Validate(); err == nil {
		t.Fatal("telegram without token must fail")
	}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.ChatID = -100123
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cfg = Default()
	cfg.Notify.Transport = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown transport must fail")
	}
}

func TestValidateWebhookURL(t *testing.T) {
	cfg := Default()
	cfg.Notify.Transport = "none"
	cfg.Webhook.Enabled = true
	cfg.Webhook.URL = "::not-a-url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid webhook URL must fail")
	}
	cfg.Webhook.URL = "https://hooks.example.com/notify"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseDurationField(t *testing.T) {
	t.Parallel()

	d, err := ParseDurationField("x", "90s")
	if err != nil || d != 90*time.Second {
		t.Fatalf("got %v, %v", d, err)
	}
	if _, err := ParseDurationField("x", "-5s"); err == nil {
		t.Fatal("negative duration must fail")
	}
	if d, err := ParseDurationField("x", ""); err != nil || d != 0 {
		t.Fatalf("empty should be zero, got %v, %v", d, err)
	}
}
