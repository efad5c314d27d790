package job

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	jobs := r.Group("/jobs")

	{
		jobs.GET("", h.GetAll)
		jobs.POST("", h.Create)
		jobs.GET("/:id", h.GetById)
		jobs.DELETE("/:id", h.Delete)
	}
}
