package ingest

import (
	"context"
	"database/sql"
	"time"
)

// Identifiers are never part of the batch payload: every insert relies on
// the bootstrapped sequence default and reports the assigned id back.
//
//go:generate mockgen -source=ingest_repo.go -destination=mock/ingest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	DepartmentExists(ctx context.Context, id int64) (bool, error)
	JobExists(ctx context.Context, id int64) (bool, error)
	InsertDepartment(ctx context.Context, name string) (int64, error)
	InsertJob(ctx context.Context, title string) (int64, error)
	InsertHiredEmployee(ctx context.Context, name string, hiredAt time.Time, departmentID, jobID int64) (int64, error)
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

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.q().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM departments WHERE id = $1`, id,
	).Scan(&count)
	return count > 0, err
}

func (r *repository) JobExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.q().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE id = $1`, id,
	).Scan(&count)
	return count > 0, err
}

func (r *repository) InsertDepartment(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.q().QueryRowContext(ctx,
		`INSERT INTO departments (department) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertJob(ctx context.Context, title string) (int64, error) {
	var id int64
	err := r.q().QueryRowContext(ctx,
		`INSERT INTO jobs (job) VALUES ($1) RETURNING id`, title,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertHiredEmployee(
	ctx context.Context,
	name string,
	hiredAt time.Time,
	departmentID, jobID int64,
) (int64, error) {
	var id int64
	err := r.q().QueryRowContext(ctx, `
		INSERT INTO hired_employees (name, hire_datetime, department_id, job_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		name, hiredAt, departmentID, jobID,
	).Scan(&id)
	return id, err
}
