package dispatch

import (
	"context"

	logx "svcmon/pkg/logx"
)

// DryRunTransport logs delivery intent and reports success without any I/O.
type DryRunTransport struct {
	log logx.Logger
}

func NewDryRun(log logx.Logger) *DryRunTransport {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &DryRunTransport{log: log}
}

func (t *DryRunTransport) Name() string { return "dry-run" }

func (t *DryRunTransport) Send(ctx context.Context, c Content) error {
	_ = ctx
	t.log.Info("DRY RUN: would send alert",
		logx.String("subject", c.Subject),
		logx.String("correlation_id", c.Correlation))
	return nil
}
