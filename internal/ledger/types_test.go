package ledger

import (
	"testing"
	"time"
)

func TestRecordCheckUpResetsFailures(t *testing.T) {
	t.Parallel()

	now := time.Now()
	l := Ledger{LastStatus: StatusDown, ConsecutiveFailures: 4}
	l.RecordCheck(true, false, now)

	if l.LastStatus != StatusUp {
		t.Fatalf("LastStatus = %q, want up", l.LastStatus)
	}
	if l.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", l.ConsecutiveFailures)
	}
	if l.LastSuccess == nil || !l.LastSuccess.Equal(now) {
		t.Fatalf("LastSuccess = %v, want %v", l.LastSuccess, now)
	}
	if l.LastCheck == nil || !l.LastCheck.Equal(now) {
		t.Fatalf("LastCheck = %v, want %v", l.LastCheck, now)
	}
}

func TestRecordCheckDownIncrementsFailures(t *testing.T) {
	t.Parallel()

	now := time.Now()
	var l Ledger
	l.RecordCheck(false, false, now)
	l.RecordCheck(false, false, now.Add(time.Minute))

	if l.LastStatus != StatusDown {
		t.Fatalf("LastStatus = %q, want down", l.LastStatus)
	}
	if l.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", l.ConsecutiveFailures)
	}
	if l.LastSuccess != nil {
		t.Fatalf("LastSuccess = %v, want nil", l.LastSuccess)
	}
}

func TestRecordCheckAlertTimeMonotonic(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	var l Ledger
	l.RecordCheck(false, true, t0)
	if l.LastAlert == nil || !l.LastAlert.Equal(t0) {
		t.Fatalf("LastAlert = %v, want %v", l.LastAlert, t0)
	}

	// No alert sent: timestamp untouched.
	l.RecordCheck(false, false, t0.Add(time.Minute))
	if !l.LastAlert.Equal(t0) {
		t.Fatalf("LastAlert moved without a delivered alert: %v", l.LastAlert)
	}

	// An earlier clock reading must not move it backwards.
	l.RecordCheck(false, true, t0.Add(-time.Minute))
	if !l.LastAlert.Equal(t0) {
		t.Fatalf("LastAlert moved backwards: %v", l.LastAlert)
	}

	l.RecordCheck(false, true, t0.Add(time.Hour))
	if !l.LastAlert.Equal(t0.Add(time.Hour)) {
		t.Fatalf("LastAlert = %v, want %v", l.LastAlert, t0.Add(time.Hour))
	}
}
