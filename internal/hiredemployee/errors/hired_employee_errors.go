package hiredemployeeerrors

import (
	"net/http"

	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/apperror"
)

var (
	ErrHiredEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Hired employee not found",
		http.StatusNotFound,
	)
	ErrHiredEmployeeIDInUse = apperror.New(
		apperror.CodeConflict,
		"Hired employee identifier is already in use",
		http.StatusConflict,
	)
	ErrUnknownDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced department does not exist",
		http.StatusBadRequest,
	)
	ErrUnknownJob = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced job does not exist",
		http.StatusBadRequest,
	)
)
