package hiredemployee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=hired_employee_repo.go -destination=mock/hired_employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *HiredEmployee) error
	FindAll(ctx context.Context, filter ListFilter) ([]HiredEmployee, error)
	FindByID(ctx context.Context, id int64) (*HiredEmployee, error)
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

func (r *repository) Create(ctx context.Context, emp *HiredEmployee) error {
	if emp.ID != 0 {
		const q = `
			INSERT INTO hired_employees (id, name, hire_datetime, department_id, job_id)
			VALUES ($1, $2, $3, $4, $5)`
		if r.tx != nil {
			_, err := r.tx.ExecContext(ctx, q,
				emp.ID, emp.Name, emp.HireDatetime, emp.DepartmentID, emp.JobID)
			return err
		}
		return r.db.WithContext(ctx).Exec(q,
			emp.ID, emp.Name, emp.HireDatetime, emp.DepartmentID, emp.JobID).Error
	}

	const q = `
		INSERT INTO hired_employees (name, hire_datetime, department_id, job_id)
		VALUES ($1, $2, $3, $4) RETURNING id`
	if r.tx != nil {
		return r.tx.QueryRowContext(ctx, q,
			emp.Name, emp.HireDatetime, emp.DepartmentID, emp.JobID).Scan(&emp.ID)
	}
	return r.db.WithContext(ctx).Raw(q,
		emp.Name, emp.HireDatetime, emp.DepartmentID, emp.JobID).Row().Scan(&emp.ID)
}

// FindAll applies the optional filters; each maps to one of the secondary
// indexes so none of these paths degrade to a full-table scan.
func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]HiredEmployee, error) {
	q := r.db.WithContext(ctx).Model(&HiredEmployee{})

	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.JobID != nil {
		q = q.Where("job_id = ?", *filter.JobID)
	}
	if filter.HiredFrom != nil {
		q = q.Where("hire_datetime >= ?", *filter.HiredFrom)
	}
	if filter.HiredTo != nil {
		q = q.Where("hire_datetime < ?", *filter.HiredTo)
	}

	var emps []HiredEmployee
	err := q.Order("id ASC").Find(&emps).Error
	return emps, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*HiredEmployee, error) {
	var emp HiredEmployee
	err := r.db.WithContext(ctx).
		First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
