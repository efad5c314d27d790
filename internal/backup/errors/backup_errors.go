package backuperrors

import (
	"net/http"

	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/apperror"
)

var (
	ErrUnknownTable = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown table; expected departments, jobs or hired_employees",
		http.StatusBadRequest,
	)
	ErrBackupNotFound = apperror.New(
		apperror.CodeNotFound,
		"No backup found for this table",
		http.StatusNotFound,
	)
)
