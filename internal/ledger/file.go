package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	logx "svcmon/pkg/logx"
)

// fileStore is a dependency-free persistence backend: one JSON document,
// written atomically via tmp+rename so a crash mid-write never corrupts the
// previous record.
type fileStore struct {
	log  logx.Logger
	path string

	mu sync.Mutex
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("ledger.path is required for file driver")
	}
	return &fileStore{log: log, path: path}, nil
}

func (s *fileStore) Load(ctx context.Context) Ledger {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("ledger unreadable, starting fresh", logx.String("path", s.path), logx.Err(err))
		}
		return Ledger{}
	}

	var l Ledger
	if err := json.Unmarshal(b, &l); err != nil {
		s.log.Warn("ledger corrupt, starting fresh", logx.String("path", s.path), logx.Err(err))
		return Ledger{}
	}
	if l.ConsecutiveFailures < 0 {
		l.ConsecutiveFailures = 0
	}
	return l
}

func (s *fileStore) Save(ctx context.Context, l Ledger) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *fileStore) Close() error { return nil }
