package job

import (
	"errors"
	"strings"

	joberrors "github.com/davbarrer/reporting-pipeline-gb/internal/job/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return joberrors.ErrJobNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			if pgErr.ConstraintName == "jobs_pkey" {
				return joberrors.ErrJobIDInUse
			}
			return joberrors.ErrJobAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "jobs_pkey") {
			return joberrors.ErrJobIDInUse
		}
		return joberrors.ErrJobAlreadyExists
	}

	return err
}
