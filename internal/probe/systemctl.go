package probe

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// systemctlProber shells out to `systemctl is-active <unit>`.
//
// is-active exits non-zero for any inactive state while still printing the
// state on stdout, so a non-empty output is a valid status regardless of the
// exit code.
type systemctlProber struct {
	timeout time.Duration
}

func (p *systemctlProber) Check(ctx context.Context, unit string) (bool, string) {
	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "systemctl", "is-active", unit)
	out, err := cmd.Output()
	status := strings.TrimSpace(string(out))

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return false, "timeout"
	}
	if status == "" {
		if err != nil {
			return false, "error: " + err.Error()
		}
		return false, "unknown"
	}
	return status == "active", status
}
