//go:build sqlite
// +build sqlite

package ledger

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	logx "svcmon/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("ledger.path is required for sqlite driver")
	}
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single writer: the orchestrator is the only client by design.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db, log: log}

	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) Load(ctx context.Context) Ledger {
	var (
		lastCheck, lastStatus, lastAlert, lastSuccess sql.NullString
		failures                                      int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT last_check, last_status, last_alert, consecutive_failures, last_success
		 FROM ledger WHERE id = 1`,
	).Scan(&lastCheck, &lastStatus, &lastAlert, &failures, &lastSuccess)
	if errors.Is(err, sql.ErrNoRows) {
		return Ledger{}
	}
	if err != nil {
		s.log.Warn("ledger unreadable, starting fresh", logx.Err(err))
		return Ledger{}
	}

	l := Ledger{ConsecutiveFailures: failures}
	if failures < 0 {
		l.ConsecutiveFailures = 0
	}
	l.LastCheck = parseNullTime(lastCheck)
	l.LastAlert = parseNullTime(lastAlert)
	l.LastSuccess = parseNullTime(lastSuccess)
	if lastStatus.Valid {
		switch Status(lastStatus.String) {
		case StatusUp, StatusDown:
			l.LastStatus = Status(lastStatus.String)
		}
	}
	return l
}

func (s *sqliteStore) Save(ctx context.Context, l Ledger) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger(id, last_check, last_status, last_alert, consecutive_failures, last_success)
		 VALUES(1,?,?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET
		   last_check = excluded.last_check,
		   last_status = excluded.last_status,
		   last_alert = excluded.last_alert,
		   consecutive_failures = excluded.consecutive_failures,
		   last_success = excluded.last_success`,
		fmtNullTime(l.LastCheck), nullStr(string(l.LastStatus)), fmtNullTime(l.LastAlert),
		l.ConsecutiveFailures, fmtNullTime(l.LastSuccess),
	)
	return err
}

func parseNullTime(v sql.NullString) *time.Time {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func fmtNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func nullStr(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
