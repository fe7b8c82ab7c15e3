// Package migrate applies the embedded SQL schema files in filename order,
// tracking applied versions in a schema_migrations table.
package migrate

import (
	"context"
	"embed"
	"sort"
	"strings"

	"rinkbook/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var migrationFS embed.FS

func Up(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := migrationFS.ReadDir(".")
	if err != nil {
		return errs.Wrap(err, "failed to read embedded migrations")
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`,
	); err != nil {
		return errs.Wrap(err, "failed to create schema_migrations")
	}

	for _, f := range files {
		var applied bool
		if err := pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, f,
		).Scan(&applied); err != nil {
			return errs.Wrap(err, "failed to check migration version")
		}
		if applied {
			continue
		}

		sql, err := migrationFS.ReadFile(f)
		if err != nil {
			return errs.Wrap(err, "failed to read migration "+f)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return errs.Wrap(err, "failed to apply migration "+f)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, f,
		); err != nil {
			return errs.Wrap(err, "failed to record migration "+f)
		}
	}

	return nil
}
