package metrics

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/metrics")

	{
		reports.GET("/hired-employees-by-quarter", h.QuarterlyHires)
		reports.GET("/departments-above-average-hiring", h.DepartmentsAboveAverage)
	}
}
