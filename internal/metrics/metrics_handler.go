package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/apperror"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("metrics.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("metrics.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("metrics request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) QuarterlyHires(c *gin.Context) {
	report, err := h.service.QuarterlyHires(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if report == nil {
		report = []QuarterlyHiresRow{}
	}
	response.Success(c, http.StatusOK, report, nil)
}

func (h *Handler) DepartmentsAboveAverage(c *gin.Context) {
	report, err := h.service.DepartmentsAboveAverage(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if report == nil {
		report = []AboveAverageRow{}
	}
	response.Success(c, http.StatusOK, report, nil)
}
