package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/davbarrer/reporting-pipeline-gb/internal/importer"
	"github.com/davbarrer/reporting-pipeline-gb/internal/schema"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/connection"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/objectstore"
)

const defaultBucket = "data-pipeline-migration-gb"

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	db, err := gormDB.DB()
	if err != nil {
		logger.Fatal("unwrap sql.DB failed", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	bucket := os.Getenv("S3_MIGRATION_BUCKET")
	if bucket == "" {
		bucket = defaultBucket
	}
	store, err := objectstore.NewS3Store(
		ctx,
		os.Getenv("AWS_REGION"),
		bucket,
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
	)
	if err != nil {
		logger.Fatal("object store setup failed", zap.Error(err))
	}

	svc := importer.NewService(
		db,
		importer.NewRepository(db),
		store,
		schema.NewSequenceBootstrapper(db, logger),
		logger,
	)

	summaries, err := svc.Run(ctx)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	for _, s := range summaries {
		logger.Info("table migrated",
			zap.String("table", s.Table),
			zap.Int("inserted", s.Inserted),
			zap.Int("rejected", s.Rejected),
		)
	}
}
