package hiredemployee

import (
	"time"
)

// HiredEmployee maps the hired_employees table. Rows are immutable once
// inserted; they disappear only through a cascading department/job delete.
type HiredEmployee struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	HireDatetime time.Time `gorm:"column:hire_datetime;not null"`
	DepartmentID int64     `gorm:"index"`
	JobID        int64     `gorm:"index"`
}

func (HiredEmployee) TableName() string {
	return "hired_employees"
}
