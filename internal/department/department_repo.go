package department

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
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

// Create inserts with the explicit identifier when one is given; when the
// ID is zero the column is omitted so the bootstrapped sequence assigns
// the next value.
func (r *repository) Create(ctx context.Context, dept *Department) error {
	if dept.ID != 0 {
		const q = `INSERT INTO departments (id, department) VALUES ($1, $2)`
		if r.tx != nil {
			_, err := r.tx.ExecContext(ctx, q, dept.ID, dept.Name)
			return err
		}
		return r.db.WithContext(ctx).Exec(q, dept.ID, dept.Name).Error
	}

	const q = `INSERT INTO departments (department) VALUES ($1) RETURNING id`
	if r.tx != nil {
		return r.tx.QueryRowContext(ctx, q, dept.Name).Scan(&dept.ID)
	}
	return r.db.WithContext(ctx).Raw(q, dept.Name).Row().Scan(&dept.ID)
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// Delete returns the number of department rows removed. Dependent
// hired_employees rows are removed by the schema's ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
