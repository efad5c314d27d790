package department

import (
	"errors"
	"strings"

	departmenterrors "github.com/davbarrer/reporting-pipeline-gb/internal/department/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			if pgErr.ConstraintName == "departments_pkey" {
				return departmenterrors.ErrDepartmentIDInUse
			}
			return departmenterrors.ErrDepartmentAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "departments_pkey") {
			return departmenterrors.ErrDepartmentIDInUse
		}
		return departmenterrors.ErrDepartmentAlreadyExists
	}

	return err
}
