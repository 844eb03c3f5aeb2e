package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduleKind describes the normalized kind of a schedule string.
//
// We intentionally keep this small: either a cron expression (robfig/cron)
// or a fixed interval.
type ScheduleKind int

const (
	ScheduleInterval ScheduleKind = iota
	ScheduleCron
)

// Schedule is a parsed, ready-to-use check schedule.
//
// Supported forms:
//   - Interval duration: "5m", "2h30m"
//   - Cron (crontab.guru-style): "*/5 * * * *", "@hourly", "@every 55m"
type Schedule struct {
	Kind  ScheduleKind
	Every time.Duration
	Cron  cron.Schedule
	Spec  string
}

// Next returns when the next check should run, strictly after `after`.
func (s Schedule) Next(after time.Time) time.Time {
	if s.Kind == ScheduleCron && s.Cron != nil {
		return s.Cron.Next(after)
	}
	return after.Add(s.Every)
}

func (s Schedule) String() string { return s.Spec }

// ParseSchedulable parses a schedule string into either a cron schedule or
// an interval duration.
//
// Heuristic: any whitespace or a leading '@' means cron; everything else is
// tried as a Go duration.
func ParseSchedulable(path, raw string) (Schedule, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Schedule{}, fmt.Errorf("%s: schedule required", path)
	}

	if strings.ContainsAny(s, " \t\n\r") || strings.HasPrefix(s, "@") {
		sched, err := cron.ParseStandard(s)
		if err != nil {
			return Schedule{}, fmt.Errorf("%s: invalid cron expression %q: %w", path, raw, err)
		}
		return Schedule{Kind: ScheduleCron, Cron: sched, Spec: s}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return Schedule{}, fmt.Errorf(
			"%s: invalid schedule %q (use cron like '*/5 * * * *' or a duration like '5m')",
			path, raw,
		)
	}
	if d <= 0 {
		return Schedule{}, fmt.Errorf("%s: interval must be > 0", path)
	}
	return Schedule{Kind: ScheduleInterval, Every: d, Spec: s}, nil
}
