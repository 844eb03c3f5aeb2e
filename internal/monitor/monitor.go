// Package monitor drives the check cycle: probe health, decide, dispatch,
// persist. It is the single place that turns component failures into
// "log and continue" — nothing below it may take the process down.
package monitor

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"svcmon/internal/config"
	"svcmon/internal/dispatch"
	"svcmon/internal/ledger"
	"svcmon/internal/policy"
	"svcmon/internal/probe"
	logx "svcmon/pkg/logx"
)

// Dispatcher is the delivery capability the orchestrator needs: it reports
// whether the primary transport delivered, never an error.
type Dispatcher interface {
	Dispatch(ctx context.Context, c dispatch.Content) bool
}

// Enricher supplies best-effort context for alert bodies.
type Enricher interface {
	Stats(ctx context.Context) map[string]string
	RecentLogs(ctx context.Context, unit string, lines int) string
}

// Options are the resolved monitoring knobs. They may be swapped at runtime
// via Apply (config hot reload); a running cycle keeps its snapshot.
type Options struct {
	Service       string
	Schedule      config.Schedule
	Cooldown      time.Duration
	RecoveryDelay time.Duration
	LogLines      int
	Version       string
}

type Monitor struct {
	store      ledger.Store
	prober     probe.Prober
	dispatcher Dispatcher
	enricher   Enricher
	log        logx.Logger

	hostname string
	now      func() time.Time

	mu   sync.Mutex
	opts Options
}

func New(opts Options, store ledger.Store, prober probe.Prober, dispatcher Dispatcher, enricher Enricher, log logx.Logger) *Monitor {
	if opts.RecoveryDelay <= 0 {
		opts.RecoveryDelay = time.Minute
	}
	if opts.LogLines <= 0 {
		opts.LogLines = 50
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}

	return &Monitor{
		store:      store,
		prober:     prober,
		dispatcher: dispatcher,
		enricher:   enricher,
		log:        log,
		hostname:   hostname,
		now:        time.Now,
		opts:       opts,
	}
}

// Apply swaps the monitoring knobs between cycles.
func (m *Monitor) Apply(opts Options) {
	if opts.RecoveryDelay <= 0 {
		opts.RecoveryDelay = time.Minute
	}
	if opts.LogLines <= 0 {
		opts.LogLines = 50
	}
	m.mu.Lock()
	m.opts = opts
	m.mu.Unlock()
	m.log.Info("monitor options applied",
		logx.String("service", opts.Service),
		logx.String("schedule", opts.Schedule.String()),
		logx.Duration("cooldown", opts.Cooldown))
}

func (m *Monitor) options() Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts
}

// RunOnce executes exactly one check cycle.
func (m *Monitor) RunOnce(ctx context.Context) {
	m.runCycleSafe(ctx)
}

// Run executes check cycles until ctx is canceled. A cycle that panics is
// logged and followed by the recovery delay instead of the regular
// schedule; the loop itself never dies.
func (m *Monitor) Run(ctx context.Context) {
	for {
		start := m.now()
		ok := m.runCycleSafe(ctx)

		var wake time.Time
		opts := m.options()
		if ok {
			wake = opts.Schedule.Next(start)
		} else {
			wake = m.now().Add(opts.RecoveryDelay)
		}

		d := wake.Sub(m.now())
		if d < 0 {
			d = 0
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			m.log.Info("monitor stopped")
			return
		case <-t.C:
		}
	}
}

// runCycleSafe reports false only when the cycle blew up in a way the
// normal error handling did not absorb.
func (m *Monitor) runCycleSafe(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("unexpected error in check cycle",
				logx.Any("panic", r),
				logx.String("stack", string(debug.Stack())))
			ok = false
		}
	}()
	m.runCycle(ctx)
	return true
}

func (m *Monitor) runCycle(ctx context.Context) {
	opts := m.options()
	corr := uuid.NewString()
	log := m.log.With(
		logx.String("correlation_id", corr),
		logx.String("service", opts.Service),
	)

	log.Debug("starting service check")

	up, status := m.prober.Check(ctx, opts.Service)
	lg := m.store.Load(ctx)
	now := m.now()

	decision := policy.Decide(up, lg, opts.Cooldown, now)
	log.Debug("transition decision",
		logx.String("status", status),
		logx.String("decision", decision.String()),
		logx.String("last_status", string(lg.LastStatus)))

	alertSent := false
	if decision != policy.Suppressed {
		content := m.compose(ctx, opts, composeInput{
			Status:      status,
			Up:          up,
			Recovery:    decision == policy.RaiseRecovery,
			Correlation: corr,
			At:          now,
		})
		alertSent = m.dispatcher.Dispatch(ctx, content)
		if !alertSent {
			log.Error("failed to deliver alert after all retries")
		}
	}

	lg.RecordCheck(up, alertSent, now)
	if err := m.store.Save(ctx, lg); err != nil {
		// Non-fatal: a restart before the next successful save may
		// produce one duplicate alert. Monitoring availability wins.
		log.Error("ledger save failed, dedup state not durable for this cycle", logx.Err(err))
	}

	log.Info("check complete",
		logx.String("status", status),
		logx.Bool("up", up),
		logx.String("decision", decision.String()),
		logx.Bool("alert_sent", alertSent),
		logx.Int("consecutive_failures", lg.ConsecutiveFailures))
}

func versionLine(version string) string {
	return fmt.Sprintf("This is an automated alert from svcmon v%s", version)
}
