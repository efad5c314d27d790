package metrics

import (
	"context"
	"database/sql"
)

const reportYear = 2021

// The report queries aggregate across all three hiring tables, so they
// live here as raw SQL instead of going through the per-table repositories.
const quarterlyHiresQuery = `
SELECT
	d.department AS department,
	j.job AS job,
	COUNT(CASE WHEN EXTRACT(QUARTER FROM he.hire_datetime) = 1 THEN 1 END) AS q1,
	COUNT(CASE WHEN EXTRACT(QUARTER FROM he.hire_datetime) = 2 THEN 1 END) AS q2,
	COUNT(CASE WHEN EXTRACT(QUARTER FROM he.hire_datetime) = 3 THEN 1 END) AS q3,
	COUNT(CASE WHEN EXTRACT(QUARTER FROM he.hire_datetime) = 4 THEN 1 END) AS q4
FROM hired_employees he
JOIN departments d ON he.department_id = d.id
JOIN jobs j ON he.job_id = j.id
WHERE EXTRACT(YEAR FROM he.hire_datetime) = $1
GROUP BY d.department, j.job
ORDER BY d.department ASC, j.job ASC
`

const aboveAverageQuery = `
WITH department_hiring AS (
	SELECT
		he.department_id AS id,
		d.department,
		COUNT(he.id) AS hired
	FROM hired_employees he
	JOIN departments d ON he.department_id = d.id
	WHERE EXTRACT(YEAR FROM he.hire_datetime) = $1
	GROUP BY he.department_id, d.department
),
average_hiring AS (
	SELECT AVG(hired) AS avg_hires FROM department_hiring
)
SELECT
	dh.id,
	dh.department,
	dh.hired
FROM department_hiring dh
JOIN average_hiring ah ON dh.hired > ah.avg_hires
ORDER BY dh.hired DESC
`

//go:generate mockgen -source=metrics_repo.go -destination=mock/metrics_repo_mock.go -package=mock
type Repository interface {
	QuarterlyHires(ctx context.Context, year int) ([]QuarterlyHiresRow, error)
	DepartmentsAboveAverage(ctx context.Context, year int) ([]AboveAverageRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) QuarterlyHires(ctx context.Context, year int) ([]QuarterlyHiresRow, error) {
	rows, err := r.db.QueryContext(ctx, quarterlyHiresQuery, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []QuarterlyHiresRow
	for rows.Next() {
		var row QuarterlyHiresRow
		if err := rows.Scan(&row.Department, &row.Job, &row.Q1, &row.Q2, &row.Q3, &row.Q4); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *repository) DepartmentsAboveAverage(ctx context.Context, year int) ([]AboveAverageRow, error) {
	rows, err := r.db.QueryContext(ctx, aboveAverageQuery, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []AboveAverageRow
	for rows.Next() {
		var row AboveAverageRow
		if err := rows.Scan(&row.ID, &row.Department, &row.Hired); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
