package ledger

import (
	"context"
	"errors"
	"strings"

	logx "svcmon/pkg/logx"
)

// Store is the persistence API used by the orchestrator.
//
// Load never fails: corruption or absence yields the zero ledger. Save may
// fail (unwritable location, disk full); callers log and continue, trading a
// possible duplicate alert after restart for monitoring availability.
type Store interface {
	Load(ctx context.Context) Ledger
	Save(ctx context.Context, l Ledger) error
	Close() error
}

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if log.IsZero() {
		log = logx.Nop()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown ledger driver: " + cfg.Driver)
	}
}
