package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	logx "svcmon/pkg/logx"
)

func openTestStore(t *testing.T, path string) Store {
	t.Helper()
	st, err := Open(Config{Driver: "file", Path: path}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	st := openTestStore(t, path)
	ctx := context.Background()

	check := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	alert := check.Add(-time.Hour)
	in := Ledger{
		LastCheck:           &check,
		LastStatus:          StatusDown,
		LastAlert:           &alert,
		ConsecutiveFailures: 3,
		// LastSuccess stays nil to exercise the null representation.
	}
	if err := st.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := st.Load(ctx)
	if out.LastCheck == nil || !out.LastCheck.Equal(check) {
		t.Fatalf("LastCheck = %v, want %v", out.LastCheck, check)
	}
	if out.LastStatus != StatusDown {
		t.Fatalf("LastStatus = %q, want down", out.LastStatus)
	}
	if out.LastAlert == nil || !out.LastAlert.Equal(alert) {
		t.Fatalf("LastAlert = %v, want %v", out.LastAlert, alert)
	}
	if out.ConsecutiveFailures != 3 {
		t.Fatalf("ConsecutiveFailures = %d, want 3", out.ConsecutiveFailures)
	}
	if out.LastSuccess != nil {
		t.Fatalf("LastSuccess = %v, want nil", out.LastSuccess)
	}
}

func TestFileStoreMissingFileIsFresh(t *testing.T) {
	t.Parallel()

	st := openTestStore(t, filepath.Join(t.TempDir(), "nope", "state.json"))
	out := st.Load(context.Background())
	if out != (Ledger{}) {
		t.Fatalf("expected zero ledger, got %+v", out)
	}
}

func TestFileStoreCorruptFileIsFresh(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	st := openTestStore(t, path)
	out := st.Load(context.Background())
	if out != (Ledger{}) {
		t.Fatalf("expected zero ledger, got %+v", out)
	}
}

func TestFileStoreSaveCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "state.json")
	st := openTestStore(t, path)
	ctx := context.Background()

	if err := st.Save(ctx, Ledger{LastStatus: StatusUp}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file not created: %v", err)
	}

	out := st.Load(ctx)
	if out.LastStatus != StatusUp {
		t.Fatalf("LastStatus = %q, want up", out.LastStatus)
	}
}

func TestFileStoreNegativeFailuresClamped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"consecutive_failures": -2}`), 0o600); err != nil {
		t.Fatal(err)
	}

	st := openTestStore(t, path)
	out := st.Load(context.Background())
	if out.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", out.ConsecutiveFailures)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := Open(Config{Driver: "etcd", Path: "x"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
