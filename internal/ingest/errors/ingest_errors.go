package ingesterrors

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
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"Batch must contain at least one record",
		http.StatusBadRequest,
	)
	ErrBatchTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Batch cannot exceed 1000 records",
		http.StatusBadRequest,
	)
)
