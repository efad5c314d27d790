package job

// Job maps the jobs table.
type Job struct {
	ID    int64  `gorm:"primaryKey"`
	Title string `gorm:"column:job;not null;unique"`
}

func (Job) TableName() string {
	return "jobs"
}
