package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/davbarrer/reporting-pipeline-gb/internal/schema"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMigrator_Run(t *testing.T) {
	t.Run("applies pending migrations in order and records versions", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		for _, mig := range schema.Migrations {
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations`).
				WithArgs(mig.Version).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

			mock.ExpectBegin()
			for range mig.Statements {
				mock.ExpectExec(`CREATE`).WillReturnResult(sqlmock.NewResult(0, 0))
			}
			mock.ExpectExec(`INSERT INTO schema_migrations`).
				WithArgs(mig.Version, mig.Description).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()
		}

		m := schema.NewMigrator(db, zap.NewNop())
		assert.NoError(t, m.Run(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips versions already applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		for _, mig := range schema.Migrations {
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations`).
				WithArgs(mig.Version).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		}

		m := schema.NewMigrator(db, zap.NewNop())
		assert.NoError(t, m.Run(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("constraint failure aborts and rolls back the version", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations`).
			WithArgs(schema.Migrations[0].Version).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectBegin()
		mock.ExpectExec(`CREATE`).
			WillReturnError(errors.New("could not create unique constraint"))
		mock.ExpectRollback()

		m := schema.NewMigrator(db, zap.NewNop())
		err = m.Run(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "apply migration 1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrations_FirstVersionDefinesHiringSchema(t *testing.T) {
	first := schema.Migrations[0]

	joined := ""
	for _, s := range first.Statements {
		joined += s + "\n"
	}

	assert.Equal(t, 1, first.Version)
	assert.Contains(t, joined, "departments")
	assert.Contains(t, joined, "jobs")
	assert.Contains(t, joined, "hired_employees")
	assert.Contains(t, joined, "ON DELETE CASCADE")
	assert.Contains(t, joined, "TIMESTAMPTZ")
	assert.Contains(t, joined, "idx_hired_employees_department_id")
	assert.Contains(t, joined, "idx_hired_employees_job_id")
	assert.Contains(t, joined, "idx_hired_employees_hire_datetime")
}
