package app

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/davbarrer/reporting-pipeline-gb/internal/department"
	"github.com/davbarrer/reporting-pipeline-gb/internal/hiredemployee"
	"github.com/davbarrer/reporting-pipeline-gb/internal/ingest"
	"github.com/davbarrer/reporting-pipeline-gb/internal/job"
	"github.com/davbarrer/reporting-pipeline-gb/internal/messaging/kafka"
	"github.com/davbarrer/reporting-pipeline-gb/internal/metrics"
	"github.com/davbarrer/reporting-pipeline-gb/internal/middleware"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	jobRepo := job.NewRepository(gormDB)
	hiredEmployeeRepo := hiredemployee.NewRepository(gormDB)
	ingestRepo := ingest.NewRepository(db)
	metricsRepo := metrics.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo)
	jobService := job.NewService(db, jobRepo)
	hiredEmployeeService := hiredemployee.NewService(db, hiredEmployeeRepo)
	ingestService := ingest.NewService(db, ingestRepo, outboxRepo)
	metricsService := metrics.NewService(metricsRepo, rdb)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	jobHandler := job.NewHandler(jobService)
	hiredEmployeeHandler := hiredemployee.NewHandler(hiredEmployeeService)
	ingestHandler := ingest.NewHandler(ingestService)
	if rdb != nil {
		ingestHandler = ingest.NewHandlerWithRedis(ingestService, rdb)
	}
	metricsHandler := metrics.NewHandler(metricsService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler)
		job.RegisterRoutes(api, jobHandler)
		hiredemployee.RegisterRoutes(api, hiredEmployeeHandler)
		ingest.RegisterRoutes(api, ingestHandler, rdb)
		metrics.RegisterRoutes(api, metricsHandler)
	}

	router.GET("/", home)

	return nil
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Reporting API",
		"status":  "running",
		"endpoints": []string{
			"/api/v1/insert",
			"/api/v1/departments",
			"/api/v1/jobs",
			"/api/v1/hired-employees",
			"/api/v1/metrics/hired-employees-by-quarter",
			"/api/v1/metrics/departments-above-average-hiring",
		},
	})
}
