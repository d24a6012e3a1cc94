package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/rotation-engine/internal/config"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
)

func TestMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := migrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve override: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}

	if _, err := migrationsDir(dir + "/missing"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestReport(t *testing.T) {
	logger := logging.NewNop()
	if err := report(logger, migrate.ErrNoChange, "applied"); err != nil {
		t.Fatalf("no change should succeed, got %v", err)
	}
	boom := errors.New("boom")
	if err := report(logger, boom, "applied"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestRun_Usage(t *testing.T) {
	if err := run(config.Config{}, nil, nil, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run(config.Config{}, []string{"up"}, nil, logging.NewNop()); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}
