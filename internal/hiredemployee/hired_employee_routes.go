package hiredemployee

import (
	"github.com/gin-gonic/gin"
)

// No update or delete routes: rows are immutable and disappear only via a
// cascading department/job delete.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/hired-employees")

	{
		employees.GET("", h.GetAll)
		employees.POST("", h.Create)
		employees.GET("/:id", h.GetById)
	}
}
