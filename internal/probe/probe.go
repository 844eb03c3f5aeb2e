// Package probe determines whether a systemd unit is healthy.
//
// Probers never return errors: any failure mode (timeout, exec error, dbus
// trouble) is downgraded to "down" with a descriptive status string, so a
// broken probe looks like an outage rather than crashing a check cycle.
package probe

import (
	"context"
	"errors"
	"strings"
	"time"

	logx "svcmon/pkg/logx"
)

// Prober reports (isUp, statusText) for a unit. statusText is the
// human-readable state ("active", "inactive", "failed", "timeout",
// "error: ...").
type Prober interface {
	Check(ctx context.Context, unit string) (bool, string)
}

// Config selects the probe driver.
//
// Driver values:
//   - "systemctl": shell out to `systemctl is-active` (default)
//   - "dbus":      ask systemd over D-Bus (linux only)
type Config struct {
	Driver  string
	Timeout time.Duration
}

func Open(cfg Config, log logx.Logger) (Prober, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch d := strings.ToLower(strings.TrimSpace(cfg.Driver)); d {
	case "", "systemctl":
		return &systemctlProber{timeout: cfg.Timeout}, nil
	case "dbus":
		return openDBus(cfg, log)
	default:
		return nil, errors.New("unknown probe driver: " + cfg.Driver)
	}
}

// unitName appends ".service" when the configured name carries no unit
// suffix, matching systemctl's own shorthand.
func unitName(unit string) string {
	if strings.Contains(unit, ".") {
		return unit
	}
	return unit + ".service"
}
