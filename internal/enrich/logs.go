package enrich

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"time"
)

const journalTimeout = 10 * time.Second

// RecentLogs returns the last `lines` journal entries for the unit. It
// never fails: problems come back as an error-describing string inside the
// excerpt so the alert body still renders.
func (e *Enricher) RecentLogs(ctx context.Context, unit string, lines int) string {
	if lines <= 0 {
		lines = 50
	}

	cctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "journalctl", "-u", unit, "-n", strconv.Itoa(lines), "--no-pager")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "Failed to retrieve logs: " + stderr.String()
		}
		return "Error retrieving logs: " + err.Error()
	}
	return stdout.String()
}
