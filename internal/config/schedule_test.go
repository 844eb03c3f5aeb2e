package config

import (
	"testing"
	"time"
)

func TestParseSchedulableVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		kind  ScheduleKind
		every time.Duration
	}{
		{name: "duration", raw: "5m", kind: ScheduleInterval, every: 5 * time.Minute},
		{name: "compound duration", raw: "2h30m", kind: ScheduleInterval, every: 2*time.Hour + 30*time.Minute},
		{name: "cron", raw: "*/5 * * * *", kind: ScheduleCron},
		{name: "cron macro", raw: "@hourly", kind: ScheduleCron},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSchedulable("monitoring.schedule", tt.raw)
			if err != nil {
				t.Fatalf("ParseSchedulable(%q) error: %v", tt.raw, err)
			}
			if got.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if tt.kind == ScheduleInterval && got.Every != tt.every {
				t.Fatalf("Every = %v, want %v", got.Every, tt.every)
			}
		})
	}
}

func TestParseSchedulableInvalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not-a-schedule", "0s", "-1m", "* * *"} {
		if _, err := ParseSchedulable("monitoring.schedule", raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestScheduleNext(t *testing.T) {
	t.Parallel()

	after := time.Date(2025, 6, 1, 12, 3, 0, 0, time.UTC)

	iv, err := ParseSchedulable("s", "5m")
	if err != nil {
		t.Fatal(err)
	}
	if got := iv.Next(after); !got.Equal(after.Add(5 * time.Minute)) {
		t.Fatalf("interval Next = %v", got)
	}

	cr, err := ParseSchedulable("s", "*/5 * * * *")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	if got := cr.Next(after); !got.Equal(want) {
		t.Fatalf("cron Next = %v, want %v", got, want)
	}
}
