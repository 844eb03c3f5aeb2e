// Package enrich gathers best-effort context for alert bodies: host
// resource statistics and a recent service log excerpt. Every value
// degrades independently; enrichment can never abort a check cycle.
package enrich

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	logx "svcmon/pkg/logx"
)

// NA is substituted for any statistic whose source cannot be read.
const NA = "N/A"

type Enricher struct {
	log logx.Logger
}

func New(log logx.Logger) *Enricher {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Enricher{log: log}
}

// Stats returns cpu_usage, memory_usage and disk_usage. CPU and memory are
// percentages with two decimals; disk is df's own percentage string.
func (e *Enricher) Stats(ctx context.Context) map[string]string {
	stats := map[string]string{
		"cpu_usage":    NA,
		"memory_usage": NA,
		"disk_usage":   NA,
	}

	if b, err := os.ReadFile("/proc/stat"); err != nil {
		e.log.Warn("failed to read cpu stats", logx.Err(err))
	} else if v, err := parseCPUUsage(b); err != nil {
		e.log.Warn("failed to parse cpu stats", logx.Err(err))
	} else {
		stats["cpu_usage"] = fmt.Sprintf("%.2f", v)
	}

	if b, err := os.ReadFile("/proc/meminfo"); err != nil {
		e.log.Warn("failed to read memory stats", logx.Err(err))
	} else if v, err := parseMemUsage(b); err != nil {
		e.log.Warn("failed to parse memory stats", logx.Err(err))
	} else {
		stats["memory_usage"] = fmt.Sprintf("%.2f", v)
	}

	if out, err := exec.CommandContext(ctx, "df", "-h", "/").Output(); err != nil {
		e.log.Warn("failed to read disk stats", logx.Err(err))
	} else if v, err := parseDiskUsage(out); err != nil {
		e.log.Warn("failed to parse disk stats", logx.Err(err))
	} else {
		stats["disk_usage"] = v
	}

	return stats
}

// parseCPUUsage derives a busy percentage from the aggregate cpu line of
// /proc/stat using the first four fields (user, nice, system, idle).
func parseCPUUsage(b []byte) (float64, error) {
	line, _, _ := strings.Cut(string(b), "\n")
	fields := strings.Fields(line)
	if len(fields) < 5 || fields[0] != "cpu" {
		return 0, fmt.Errorf("unexpected /proc/stat line %q", line)
	}

	var total, idle int64
	for i, f := range fields[1:5] {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad cpu field %q: %w", f, err)
		}
		total += n
		if i == 3 {
			idle = n
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("zero cpu time total")
	}
	return (1 - float64(idle)/float64(total)) * 100, nil
}

// parseMemUsage computes used-memory percentage from /proc/meminfo,
// preferring MemAvailable over MemFree.
func parseMemUsage(b []byte) (float64, error) {
	var total, free, available int64
	haveAvailable := false

	for _, line := range strings.Split(string(b), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch strings.TrimSuffix(fields[0], ":") {
		case "MemTotal":
			total = n
		case "MemFree":
			free = n
		case "MemAvailable":
			available = n
			haveAvailable = true
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("MemTotal missing from meminfo")
	}
	if !haveAvailable {
		available = free
	}
	return (1 - float64(available)/float64(total)) * 100, nil
}

// parseDiskUsage extracts the use% column for / from `df -h /` output.
func parseDiskUsage(b []byte) (string, error) {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) < 2 {
		return "", fmt.Errorf("unexpected df output")
	}
	parts := strings.Fields(lines[1])
	if len(parts) < 5 {
		return "", fmt.Errorf("unexpected df columns %q", lines[1])
	}
	return parts[4], nil
}
