package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/rotation-engine/internal/config"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrationDirs are searched in order; MIGRATIONS_DIR wins when set.
var migrationDirs = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat).
		Named("migration").
		With("service", cfg.ServiceName, "env", cfg.AppEnv)

	err = run(cfg, os.Args[1:], os.Stdout, logger)
	_ = logger.Sync()
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	default:
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, args []string, out io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	if cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required")
	}

	dir, err := migrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		return err
	}
	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	cmd, rest := strings.ToLower(strings.TrimSpace(args[0])), args[1:]
	switch cmd {
	case "up":
		return report(logger, m.Up(), "migrations applied", "source", source)
	case "down":
		steps := 1
		if len(rest) > 0 {
			if steps, err = strconv.Atoi(strings.TrimSpace(rest[0])); err != nil || steps <= 0 {
				return fmt.Errorf("down steps must be a positive integer, got %q", rest[0])
			}
		}
		return report(logger, m.Steps(-steps), "migrations rolled back", "steps", steps)
	case "goto":
		if len(rest) == 0 {
			return errUsage
		}
		target, err := strconv.ParseUint(strings.TrimSpace(rest[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", rest[0], err)
		}
		return report(logger, m.Migrate(uint(target)), "migrated", "version", target)
	case "force":
		if len(rest) == 0 {
			return errUsage
		}
		version, err := strconv.Atoi(strings.TrimSpace(rest[0]))
		if err != nil || version < -1 {
			return fmt.Errorf("invalid force version %q", rest[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced version", "version", version)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	default:
		return errUsage
	}
}

// report treats migrate.ErrNoChange as success.
func report(logger *logging.Logger, err error, msg string, args ...any) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes")
		return nil
	case err != nil:
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func migrationsDir(override string) (string, error) {
	candidates := migrationDirs
	if override = strings.TrimSpace(override); override != "" {
		candidates = []string{override}
	}
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migrations directory not found in %s", strings.Join(candidates, ", "))
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down [steps]|goto <version>|force <version>|version>\n", name)
	fmt.Fprintln(w, "env: DB_URL (required), MIGRATIONS_DIR (default ./db/migrations)")
}
