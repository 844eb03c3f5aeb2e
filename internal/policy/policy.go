// Package policy decides whether a health observation warrants an alert.
//
// Decide is pure: no I/O, no clock reads. All deduplication state comes from
// the ledger, which is the only input the decision may consult.
package policy

import (
	"time"

	"svcmon/internal/ledger"
)

// Decision is the per-cycle alert verdict.
type Decision int

const (
	// Suppressed: nothing to announce (steady state or inside cooldown).
	Suppressed Decision = iota
	// RaiseFailure: the service is down and a human should hear about it.
	RaiseFailure
	// RaiseRecovery: the service came back after being down.
	RaiseRecovery
)

func (d Decision) String() string {
	switch d {
	case RaiseFailure:
		return "raise_failure"
	case RaiseRecovery:
		return "raise_recovery"
	default:
		return "suppressed"
	}
}

// Decide maps (current health, ledger) to an alert decision.
//
// Rules:
//   - up after down        => RaiseRecovery
//   - up otherwise         => Suppressed
//   - down after up/never  => RaiseFailure (fresh outage)
//   - down after down      => RaiseFailure only once the cooldown has
//     strictly elapsed since the last delivered alert; a missing
//     last-alert timestamp counts as "never alerted" and raises.
//
// The cooldown comparison is strict (>): an observation landing exactly on
// the boundary stays suppressed for one more cycle. Kept for compatibility
// with existing deployments.
func Decide(up bool, lg ledger.Ledger, cooldown time.Duration, now time.Time) Decision {
	if up {
		if lg.LastStatus == ledger.StatusDown {
			return RaiseRecovery
		}
		return Suppressed
	}

	if lg.LastStatus == ledger.StatusUnknown || lg.LastStatus == ledger.StatusUp {
		return RaiseFailure
	}

	// Ongoing outage: re-alert only past the cooldown window.
	if lg.LastAlert == nil {
		return RaiseFailure
	}
	if now.Sub(*lg.LastAlert) > cooldown {
		return RaiseFailure
	}
	return Suppressed
}
