package departmenterrors

import (
	"net/http"

	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Department with the same name already exists",
		http.StatusConflict,
	)
	ErrDepartmentIDInUse = apperror.New(
		apperror.CodeConflict,
		"Department identifier is already in use",
		http.StatusConflict,
	)
	ErrDeleteNotConfirmed = apperror.New(
		apperror.CodeInvalidState,
		"Deleting a department cascades to its hired employees; pass confirm=true to proceed",
		http.StatusBadRequest,
	)
)
