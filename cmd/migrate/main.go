package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/davbarrer/reporting-pipeline-gb/internal/schema"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/connection"
)

func main() {
	bootstrapSequences := flag.Bool(
		"bootstrap-sequences", false,
		"attach and reposition the id sequences after the migrations ran",
	)
	flag.Parse()

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

	if err := schema.NewMigrator(db, logger).Run(ctx); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	if *bootstrapSequences {
		if err := schema.NewSequenceBootstrapper(db, logger).Run(ctx); err != nil {
			logger.Fatal("sequence bootstrap failed", zap.Error(err))
		}
	}

	logger.Info("schema up to date")
}
