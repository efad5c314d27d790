package backup

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

var tableColumns = map[string][]string{
	"departments":     {"id", "department"},
	"jobs":            {"id", "job"},
	"hired_employees": {"id", "name", "hire_datetime", "department_id", "job_id"},
}

// ValidTable reports whether table is one of the hiring tables covered
// by backup and restore.
func ValidTable(table string) bool {
	_, ok := tableColumns[table]
	return ok
}

//go:generate mockgen -source=backup_repo.go -destination=mock/backup_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FetchRows(ctx context.Context, table string) ([]map[string]any, error)
	UpsertRow(ctx context.Context, table string, row map[string]any) error
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
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *repository) q() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// FetchRows returns every row of the table in Avro-native form: int64 for
// identifiers, RFC 3339 strings for timestamps.
func (r *repository) FetchRows(ctx context.Context, table string) ([]map[string]any, error) {
	columns, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC",
		strings.Join(columns, ", "), table)

	sqlRows, err := r.q().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer sqlRows.Close()

	var rows []map[string]any
	for sqlRows.Next() {
		holders := make([]any, len(columns))
		for i, col := range columns {
			holders[i] = newHolder(col)
		}
		if err := sqlRows.Scan(holders...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = holderValue(col, holders[i])
		}
		rows = append(rows, row)
	}
	return rows, sqlRows.Err()
}

// UpsertRow writes one restored row, replacing any existing row with the
// same id.
func (r *repository) UpsertRow(ctx context.Context, table string, row map[string]any) error {
	columns, ok := tableColumns[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	placeholders := make([]string, len(columns))
	updates := make([]string, 0, len(columns)-1)
	args := make([]any, len(columns))

	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != "id" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}

		arg, err := columnArg(col, row[col])
		if err != nil {
			return fmt.Errorf("row id=%v: %w", row["id"], err)
		}
		args[i] = arg
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err := r.q().ExecContext(ctx, query, args...)
	return err
}

func newHolder(col string) any {
	switch col {
	case "id", "department_id", "job_id":
		return new(int64)
	case "hire_datetime":
		return new(time.Time)
	default:
		return new(string)
	}
}

func holderValue(col string, holder any) any {
	switch v := holder.(type) {
	case *int64:
		return *v
	case *time.Time:
		return v.UTC().Format(time.RFC3339)
	case *string:
		return *v
	default:
		return nil
	}
}

func columnArg(col string, value any) (any, error) {
	if col != "hire_datetime" {
		return value, nil
	}

	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("column %s: expected string, got %T", col, value)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col, err)
	}
	return t, nil
}
