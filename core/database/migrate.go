package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/m3rciful/festbot/core/logger"
)

// MigrationResult summarises one RunMigrations call.
type MigrationResult struct {
	FromVersion uint
	ToVersion   uint
	Applied     []string
}

// RunMigrations applies all up migrations found in migrations (a directory of
// NNNN_name.up.sql / .down.sql files, typically embedded). Calling it on an
// up-to-date database is a no-op.
func RunMigrations(cfg Config, migrations fs.FS) (MigrationResult, error) {
	var res MigrationResult
	if err := cfg.Normalize(); err != nil {
		return res, err
	}
	if migrations == nil {
		return res, fmt.Errorf("migrations source is required")
	}

	if cfg.Driver == DriverPostgres {
		if err := WaitForPostgres(cfg.DSN(), 30*time.Second); err != nil {
			logger.MIG.Error("db not ready",
				slog.String("event", "db.migrate"),
				slog.String("err", err.Error()),
			)
			return res, fmt.Errorf("database not ready: %w", err)
		}
	}

	files := listMigrationFiles(migrations)
	preview, truncated := logger.SummarizeStrings(files, 6)
	args := []any{
		slog.String("event", "resolve"),
		slog.String("driver", cfg.Driver),
		slog.Int("files_total", len(files)),
	}
	if preview != "" {
		args = append(args, slog.String("files_preview", preview))
	}
	if truncated {
		args = append(args, slog.Bool("files_truncated", true))
	}
	logger.MIG.Debug("migrations resolved", args...)

	src, err := iofs.New(migrations, ".")
	if err != nil {
		return res, fmt.Errorf("open migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrateURL())
	if err != nil {
		logger.MIG.Error("init failed",
			slog.String("event", "db.migrate"),
			slog.String("err", err.Error()),
		)
		return res, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.MIG.Warn("close failed",
				slog.String("event", "db.migrate"),
				slog.Any("src_err", srcErr),
				slog.Any("db_err", dbErr),
			)
		}
	}()

	fromVer, _, _ := m.Version()
	res.FromVersion = fromVer

	start := time.Now()
	upErr := m.Up()
	took := time.Since(start)

	switch {
	case upErr == nil:
	case errors.Is(upErr, migrate.ErrNoChange):
		res.ToVersion = fromVer
		logger.MIG.Info("migrations summary",
			slog.String("event", "summary"),
			slog.Uint64("from_ver", uint64(fromVer)),
			slog.Uint64("to_ver", uint64(fromVer)),
			slog.Int("files", 0),
			slog.Duration("duration", logger.RoundMS(took)),
		)
		return res, nil
	default:
		logger.MIG.Error("migration failed",
			slog.String("event", "apply"),
			slog.String("err", upErr.Error()),
			slog.Duration("duration", logger.RoundMS(took)),
		)
		return res, fmt.Errorf("migration execution failed: %w", upErr)
	}

	toVer, _, _ := m.Version()
	res.ToVersion = toVer
	res.Applied = selectApplied(files, uint64(fromVer), uint64(toVer))

	if len(res.Applied) > 0 {
		previewApplied, truncatedApplied := logger.SummarizeStrings(res.Applied, 6)
		args := []any{
			slog.String("event", "apply"),
			slog.Int("files_total", len(res.Applied)),
		}
		if previewApplied != "" {
			args = append(args, slog.String("files_preview", previewApplied))
		}
		if truncatedApplied {
			args = append(args, slog.Bool("files_truncated", true))
		}
		logger.MIG.Debug("applied files", args...)
	}

	logger.MIG.Info("migrations summary",
		slog.String("event", "summary"),
		slog.Uint64("from_ver", uint64(fromVer)),
		slog.Uint64("to_ver", uint64(toVer)),
		slog.Int("files", len(res.Applied)),
		slog.Duration("duration", logger.RoundMS(took)),
	)

	return res, nil
}

func listMigrationFiles(fsys fs.FS) []string {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); strings.HasSuffix(name, ".up.sql") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func parseVersion(name string) uint64 {
	parts := strings.SplitN(name, "_", 2)
	v, _ := strconv.ParseUint(parts[0], 10, 64)
	return v
}

func selectApplied(files []string, from, to uint64) []string {
	if to <= from {
		return nil
	}
	var out []string
	for _, f := range files {
		if v := parseVersion(f); v > from && v <= to {
			out = append(out, f)
		}
	}
	return out
}
