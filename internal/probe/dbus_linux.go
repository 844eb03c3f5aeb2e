//go:build linux

package probe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"

	logx "svcmon/pkg/logx"
)

// dbusProber asks systemd for a unit's ActiveState over D-Bus, avoiding a
// fork per check. The connection is re-established after a failed call.
type dbusProber struct {
	log     logx.Logger
	timeout time.Duration

	mu   sync.Mutex
	conn *dbus.Conn
}

func openDBus(cfg Config, log logx.Logger) (Prober, error) {
	p := &dbusProber{log: log, timeout: cfg.Timeout}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	conn, err := dbus.NewWithContext(ctx)
	if err != nil {
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func (p *dbusProber) Check(ctx context.Context, unit string) (bool, string) {
	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	state, err := p.activeState(cctx, unitName(unit))
	if err == nil {
		return state == "active", state
	}

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return false, "timeout"
	}

	// One reconnect attempt: systemd restarts drop the bus connection.
	p.reconnect(cctx)
	state, err2 := p.activeState(cctx, unitName(unit))
	if err2 == nil {
		return state == "active", state
	}
	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return false, "timeout"
	}
	return false, "error: " + err.Error()
}

func (p *dbusProber) activeState(ctx context.Context, unit string) (string, error) {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()
	if conn == nil {
		return "", errors.New("dbus connection closed")
	}

	prop, err := conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return "", err
	}
	state, ok := prop.Value.Value().(string)
	if !ok {
		return "", errors.New("unexpected ActiveState type")
	}
	return state, nil
}

func (p *dbusProber) reconnect(ctx context.Context) {
	conn, err := dbus.NewWithContext(ctx)
	if err != nil {
		p.log.Warn("dbus reconnect failed", logx.Err(err))
		return
	}
	p.mu.Lock()
	old := p.conn
	p.conn = conn
	p.mu.Unlock()
	if old != nil {
		old.Close()
	}
}
