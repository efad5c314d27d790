package ingest

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/davbarrer/reporting-pipeline-gb/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	if redisClient != nil {
		r.POST("/insert", middleware.Idempotency(redisClient), handler.Insert)
		return
	}
	r.POST("/insert", handler.Insert)
}
