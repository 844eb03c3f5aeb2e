package enrich

import (
	"math"
	"testing"
)

func TestParseCPUUsage(t *testing.T) {
	t.Parallel()

	// user=100 nice=0 system=100 idle=800 => 20% busy
	b := []byte("cpu  100 0 100 800 0 0 0 0 0 0\ncpu0 50 0 50 400 0 0 0 0 0 0\n")
	got, err := parseCPUUsage(b)
	if err != nil {
		t.Fatalf("parseCPUUsage: %v", err)
	}
	if math.Abs(got-20) > 0.001 {
		t.Fatalf("cpu usage = %v, want 20", got)
	}

	if _, err := parseCPUUsage([]byte("intr 12345\n")); err == nil {
		t.Fatal("expected error for missing cpu line")
	}
	if _, err := parseCPUUsage([]byte("cpu 0 0 0 0\n")); err == nil {
		t.Fatal("expected error for zero total")
	}
}

func TestParseMemUsage(t *testing.T) {
	t.Parallel()

	b := []byte("MemTotal:       1000 kB\nMemFree:         100 kB\nMemAvailable:    250 kB\n")
	got, err := parseMemUsage(b)
	if err != nil {
		t.Fatalf("parseMemUsage: %v", err)
	}
	if math.Abs(got-75) > 0.001 {
		t.Fatalf("mem usage = %v, want 75", got)
	}

	// Falls back to MemFree when MemAvailable is absent (older kernels).
	b = []byte("MemTotal:       1000 kB\nMemFree:         400 kB\n")
	got, err = parseMemUsage(b)
	if err != nil {
		t.Fatalf("parseMemUsage: %v", err)
	}
	if math.Abs(got-60) > 0.001 {
		t.Fatalf("mem usage = %v, want 60", got)
	}

	if _, err := parseMemUsage([]byte("MemFree: 5 kB\n")); err == nil {
		t.Fatal("expected error for missing MemTotal")
	}
}

func TestParseDiskUsage(t *testing.T) {
	t.Parallel()

	b := []byte(`Filesystem      Size  Used Avail Use% Mounted on
/dev/sda1        40G   17G   21G  45% /
`)
	got, err := parseDiskUsage(b)
	if err != nil {
		t.Fatalf("parseDiskUsage: %v", err)
	}
	if got != "45%" {
		t.Fatalf("disk usage = %q, want 45%%", got)
	}

	if _, err := parseDiskUsage([]byte("Filesystem\n")); err == nil {
		t.Fatal("expected error for truncated output")
	}
}
