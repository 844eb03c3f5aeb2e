package policy

import (
	"testing"
	"time"

	"svcmon/internal/ledger"
)

func ts(t time.Time) *time.Time { return &t }

func TestDecideTransitions(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cooldown := time.Hour

	tests := []struct {
		name string
		up   bool
		lg   ledger.Ledger
		want Decision
	}{
		{name: "fresh ledger, down", up: false, lg: ledger.Ledger{}, want: RaiseFailure},
		{name: "was up, now down", up: false, lg: ledger.Ledger{LastStatus: ledger.StatusUp}, want: RaiseFailure},
		{name: "was down, now up", up: true, lg: ledger.Ledger{LastStatus: ledger.StatusDown}, want: RaiseRecovery},
		{name: "was up, still up", up: true, lg: ledger.Ledger{LastStatus: ledger.StatusUp}, want: Suppressed},
		{name: "fresh ledger, up", up: true, lg: ledger.Ledger{}, want: Suppressed},
		{
			name: "ongoing outage inside cooldown",
			up:   false,
			lg: ledger.Ledger{
				LastStatus: ledger.StatusDown,
				LastAlert:  ts(now.Add(-100 * time.Second)),
			},
			want: Suppressed,
		},
		{
			name: "ongoing outage past cooldown",
			up:   false,
			lg: ledger.Ledger{
				LastStatus: ledger.StatusDown,
				LastAlert:  ts(now.Add(-3700 * time.Second)),
			},
			want: RaiseFailure,
		},
		{
			name: "ongoing outage, never alerted",
			up:   false,
			lg:   ledger.Ledger{LastStatus: ledger.StatusDown},
			want: RaiseFailure,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.up, tt.lg, cooldown, now)
			if got != tt.want {
				t.Fatalf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideCooldownBoundaryIsStrict(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cooldown := time.Hour
	lg := ledger.Ledger{
		LastStatus: ledger.StatusDown,
		LastAlert:  ts(now.Add(-cooldown)),
	}

	// Exactly on the boundary: suppressed for one more cycle.
	if got := Decide(false, lg, cooldown, now); got != Suppressed {
		t.Fatalf("at boundary: Decide() = %v, want Suppressed", got)
	}

	// One nanosecond past: raise.
	if got := Decide(false, lg, cooldown, now.Add(time.Nanosecond)); got != RaiseFailure {
		t.Fatalf("past boundary: Decide() = %v, want RaiseFailure", got)
	}
}

func TestDecideIgnoresFailureCount(t *testing.T) {
	t.Parallel()

	// Deduplication comes from last_status and last_alert_time only.
	now := time.Now()
	lg := ledger.Ledger{LastStatus: ledger.StatusUp, ConsecutiveFailures: 0}
	if got := Decide(false, lg, time.Hour, now); got != RaiseFailure {
		t.Fatalf("Decide() = %v, want RaiseFailure", got)
	}
}

func TestDecisionString(t *testing.T) {
	t.Parallel()
	if Suppressed.String() != "suppressed" || RaiseFailure.String() != "raise_failure" || RaiseRecovery.String() != "raise_recovery" {
		t.Fatalf("unexpected Decision string values: %v %v %v", Suppressed, RaiseFailure, RaiseRecovery)
	}
}
