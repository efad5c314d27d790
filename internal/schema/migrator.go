package schema

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Migrator applies the versioned migration list against Postgres and
// records each applied version in schema_migrations, so re-running is a
// no-op for versions already present.
type Migrator struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMigrator(db *sql.DB, logger ...*zap.Logger) *Migrator {
	l := zap.L().Named("schema.migrator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schema.migrator")
	}
	return &Migrator{db: db, logger: l}
}

func (m *Migrator) Run(ctx context.Context) error {
	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	for _, mig := range Migrations {
		applied, err := m.isApplied(ctx, mig.Version)
		if err != nil {
			return err
		}
		if applied {
			m.logger.Debug("migration already applied", zap.Int("version", mig.Version))
			continue
		}

		if err := m.apply(ctx, mig); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", mig.Version, mig.Description, err)
		}

		m.logger.Info("migration applied",
			zap.Int("version", mig.Version),
			zap.String("description", mig.Description),
		)
	}

	return nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

func (m *Migrator) isApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = $1`, version,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// apply runs one migration in its own transaction. A failing statement
// rolls back the whole version, including its schema_migrations row, so a
// partially applied version is never recorded.
func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range mig.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
		mig.Version, mig.Description,
	); err != nil {
		return err
	}

	return tx.Commit()
}
