package hiredemployee

import "time"

type CreateHiredEmployeeRequest struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" binding:"required"`
	HireDatetime time.Time `json:"hire_datetime" binding:"required"`
	DepartmentID int64     `json:"department_id" binding:"required"`
	JobID        int64     `json:"job_id" binding:"required"`
}

type HiredEmployeeResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	HireDatetime string `json:"hire_datetime"`
	DepartmentID int64  `json:"department_id"`
	JobID        int64  `json:"job_id"`
}

// ListFilter narrows GetAll using the schema's lookup indexes.
type ListFilter struct {
	DepartmentID *int64
	JobID        *int64
	HiredFrom    *time.Time
	HiredTo      *time.Time
}
