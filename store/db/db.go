package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/soundbound/soundbound-server/version"
)

type DB struct {
	*sql.DB
}

// NewDB opens the sqlite database at the given DSN with foreign keys on.
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is required")
	}

	d, err := sql.Open("sqlite", dsn+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

// Migrate applies the latest schema to an empty database and records the
// applied version in migration_history.
func (d *DB) Migrate(ctx context.Context) error {
	applied, err := d.schemaApplied(ctx)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	buf, err := migrationFS.ReadFile("migration/LATEST_SCHEMA.sql")
	if err != nil {
		return errors.Wrap(err, "failed to read latest schema")
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO migration_history (version) VALUES (?)",
		version.GetCurrentVersion(),
	); err != nil {
		return errors.Wrap(err, "failed to upsert migration history")
	}

	return tx.Commit()
}

func (d *DB) schemaApplied(ctx context.Context) (bool, error) {
	var name string
	err := d.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'migration_history'",
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to check migration history")
	}
	return true, nil
}
