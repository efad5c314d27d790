package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

//go:generate mockgen -source=importer_repo.go -destination=mock/importer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	InsertBatch(ctx context.Context, table string, rows [][]any) error
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) q() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertBatch writes the rows as a single multi-row INSERT. Identifiers
// come straight from the CSV files; the sequence bootstrapper reconciles
// the sequences afterwards.
func (r *repository) InsertBatch(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	spec, ok := tableFiles[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	width := len(spec.Columns)

	values := make([]string, len(rows))
	args := make([]any, 0, len(rows)*width)
	for i, row := range rows {
		placeholders := make([]string, width)
		for j := range row {
			placeholders[j] = fmt.Sprintf("$%d", i*width+j+1)
		}
		values[i] = "(" + strings.Join(placeholders, ", ") + ")"
		args = append(args, row...)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		table,
		strings.Join(spec.Columns, ", "),
		strings.Join(values, ", "),
	)

	_, err := r.q().ExecContext(ctx, query, args...)
	return err
}
