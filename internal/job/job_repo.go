package job

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=job_repo.go -destination=mock/job_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, j *Job) error
	FindAll(ctx context.Context) ([]Job, error)
	FindByID(ctx context.Context, id int64) (*Job, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, j *Job) error {
	if j.ID != 0 {
		const q = `INSERT INTO jobs (id, job) VALUES ($1, $2)`
		if r.tx != nil {
			_, err := r.tx.ExecContext(ctx, q, j.ID, j.Title)
			return err
		}
		return r.db.WithContext(ctx).Exec(q, j.ID, j.Title).Error
	}

	// id omitted: the bootstrapped sequence assigns the next value
	const q = `INSERT INTO jobs (job) VALUES ($1) RETURNING id`
	if r.tx != nil {
		return r.tx.QueryRowContext(ctx, q, j.Title).Scan(&j.ID)
	}
	return r.db.WithContext(ctx).Raw(q, j.Title).Row().Scan(&j.ID)
}

func (r *repository) FindAll(ctx context.Context) ([]Job, error) {
	var jobs []Job
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Job, error) {
	var j Job
	err := r.db.WithContext(ctx).
		First(&j, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Job{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
