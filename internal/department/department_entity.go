package department

// Department maps the departments table. The identifier is caller-supplied
// (migration data) or assigned by the bootstrapped sequence when omitted.
type Department struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:department;not null;unique"`
}

func (Department) TableName() string {
	return "departments"
}
