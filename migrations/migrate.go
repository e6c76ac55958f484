package migrations

import (
	"context"
	"embed"
	"log/slog"
	"slices"
	"strings"

	"cardshop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var files embed.FS

const advisoryLockID int64 = 420_017_001

// Apply runs the embedded migrations in filename order, skipping those
// already recorded in schema_migrations. Concurrent callers serialize on a
// Postgres advisory lock.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := files.ReadDir(".")
	if err != nil {
		return errs.Wrap(err, "read migrations")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return errs.Wrap(err, "acquire migration connection")
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockID); err != nil {
		return errs.Wrap(err, "acquire migration lock")
	}
	defer func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, advisoryLockID)
	}()

	if _, err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return errs.Wrap(err, "ensure schema_migrations")
	}

	for _, name := range names {
		var applied bool
		if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&applied); err != nil {
			return errs.Wrapf(err, "check migration %s", name)
		}
		if applied {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return errs.Wrapf(err, "read migration %s", name)
		}
		sql := strings.TrimSpace(string(body))
		if sql == "" {
			continue
		}
		if _, err := conn.Exec(ctx, sql); err != nil {
			return errs.Wrapf(err, "exec migration %s", name)
		}
		if _, err := conn.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			return errs.Wrapf(err, "record migration %s", name)
		}
		slog.Info("migration applied", "file", name)
	}
	return nil
}
