package joberrors

import (
	"net/http"

	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/apperror"
)

var (
	ErrJobNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job not found",
		http.StatusNotFound,
	)
	ErrJobAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Job with the same title already exists",
		http.StatusConflict,
	)
	ErrJobIDInUse = apperror.New(
		apperror.CodeConflict,
		"Job identifier is already in use",
		http.StatusConflict,
	)
	ErrDeleteNotConfirmed = apperror.New(
		apperror.CodeInvalidState,
		"Deleting a job cascades to its hired employees; pass confirm=true to proceed",
		http.StatusBadRequest,
	)
)
