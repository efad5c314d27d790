package department

type CreateDepartmentRequest struct {
	// ID is optional: migrated data carries explicit identifiers, new
	// rows rely on the sequence default.
	ID         int64  `json:"id"`
	Department string `json:"department" binding:"required"`
}

type DepartmentResponse struct {
	ID         int64  `json:"id"`
	Department string `json:"department"`
}
