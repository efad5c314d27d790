package hiredemployee

import (
	"errors"
	"strings"

	hiredemployeeerrors "github.com/davbarrer/reporting-pipeline-gb/internal/hiredemployee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError surfaces constraint violations to the caller as
// domain errors; nothing is retried here since an invalid write cannot
// succeed without caller correction.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hiredemployeeerrors.ErrHiredEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return hiredemployeeerrors.ErrHiredEmployeeIDInUse
		case "23503":
			if strings.Contains(pgErr.ConstraintName, "department") {
				return hiredemployeeerrors.ErrUnknownDepartment
			}
			return hiredemployeeerrors.ErrUnknownJob
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return hiredemployeeerrors.ErrHiredEmployeeIDInUse
	}
	if strings.Contains(errMsg, "violates foreign key constraint") {
		if strings.Contains(errMsg, "department") {
			return hiredemployeeerrors.ErrUnknownDepartment
		}
		return hiredemployeeerrors.ErrUnknownJob
	}

	return err
}
