package ledger

import (
	"time"
)

// Status is the tri-state last-observed service health.
// The empty string means "never checked".
type Status string

const (
	StatusUnknown Status = ""
	StatusUp      Status = "up"
	StatusDown    Status = "down"
)

// Ledger is the durable health record. All timestamps are nullable; a nil
// pointer round-trips as an absent field.
type Ledger struct {
	LastCheck           *time.Time `json:"last_check,omitempty"`
	LastStatus          Status     `json:"last_status,omitempty"`
	LastAlert           *time.Time `json:"last_alert_time,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastSuccess         *time.Time `json:"last_success_time,omitempty"`
}

// RecordCheck folds one check outcome into the ledger.
//
// Invariants maintained:
//   - consecutive_failures is 0 whenever last_status is up
//   - last_alert_time is only advanced, never cleared or moved backwards
func (l *Ledger) RecordCheck(up bool, alertSent bool, now time.Time) {
	t := now
	l.LastCheck = &t
	if up {
		l.LastStatus = StatusUp
		l.ConsecutiveFailures = 0
		ts := now
		l.LastSuccess = &ts
	} else {
		l.LastStatus = StatusDown
		l.ConsecutiveFailures++
	}
	if alertSent && (l.LastAlert == nil || now.After(*l.LastAlert)) {
		ta := now
		l.LastAlert = &ta
	}
}

// Config configures the ledger backing store.
//
// Driver values:
//   - "file": single JSON document (default)
//   - "sqlite": SQLite database file (build with -tags sqlite)
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}
