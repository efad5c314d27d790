package importer

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/davbarrer/reporting-pipeline-gb/internal/schema"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/objectstore"
)

const (
	batchSize    = 500
	failedLogKey = "logs/failed_records.log"
)

// importOrder loads parents before hired_employees so the foreign keys
// resolve during the load.
var importOrder = []string{"departments", "jobs", "hired_employees"}

// TableSummary reports one table of a migration run.
type TableSummary struct {
	Table    string
	Inserted int
	Rejected int
}

type Service struct {
	db           *sql.DB
	repo         Repository
	store        objectstore.Store
	bootstrapper *schema.SequenceBootstrapper
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	store objectstore.Store,
	bootstrapper *schema.SequenceBootstrapper,
	logger ...*zap.Logger,
) *Service {
	l := zap.L().Named("importer_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer_service")
	}
	return &Service{db: db, repo: repo, store: store, bootstrapper: bootstrapper, logger: l}
}

// Run migrates the three CSV files from object storage into Postgres:
// parse and validate each file, insert all valid rows in one transaction
// in batches, reconcile the id sequences, and upload the rejected lines
// as a log object.
func (s *Service) Run(ctx context.Context) ([]TableSummary, error) {
	parsed := make(map[string][][]any, len(importOrder))
	var allFailed []FailedLine

	for _, table := range importOrder {
		rows, failed, err := s.loadTable(ctx, table)
		if err != nil {
			return nil, err
		}
		parsed[table] = rows
		allFailed = append(allFailed, failed...)
	}

	summaries, err := s.insertAll(ctx, parsed)
	if err != nil {
		return nil, err
	}

	if err := s.bootstrapper.Run(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap sequences after import: %w", err)
	}

	for i, summary := range summaries {
		for _, f := range allFailed {
			if f.Table == summary.Table {
				summaries[i].Rejected++
			}
		}
	}

	if err := s.uploadFailedLog(ctx, allFailed); err != nil {
		// The data made it in; a lost rejection log should not fail the run.
		s.logger.Error("failed to upload rejection log", zap.Error(err))
	}

	return summaries, nil
}

func (s *Service) loadTable(ctx context.Context, table string) ([][]any, []FailedLine, error) {
	spec := tableFiles[table]

	s.logger.Info("downloading csv", zap.String("table", table), zap.String("key", spec.Key))

	body, err := s.store.Download(ctx, spec.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("download %s: %w", spec.Key, err)
	}
	defer body.Close()

	rows, failed, err := ParseTable(table, body)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", spec.Key, err)
	}

	s.logger.Info("csv parsed",
		zap.String("table", table),
		zap.Int("valid", len(rows)),
		zap.Int("rejected", len(failed)),
	)

	return rows, failed, nil
}

func (s *Service) insertAll(ctx context.Context, parsed map[string][][]any) ([]TableSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	summaries := make([]TableSummary, 0, len(importOrder))

	for _, table := range importOrder {
		rows := parsed[table]
		for start := 0; start < len(rows); start += batchSize {
			end := start + batchSize
			if end > len(rows) {
				end = len(rows)
			}
			if err := qtx.InsertBatch(ctx, table, rows[start:end]); err != nil {
				return nil, fmt.Errorf("insert batch into %s: %w", table, err)
			}
			s.logger.Info("batch inserted",
				zap.String("table", table),
				zap.Int("rows", end-start),
			)
		}
		summaries = append(summaries, TableSummary{Table: table, Inserted: len(rows)})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (s *Service) uploadFailedLog(ctx context.Context, failed []FailedLine) error {
	if len(failed) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, line := range failed {
		buf.WriteString(line.String())
		buf.WriteByte('\n')
	}

	return s.store.Upload(ctx, failedLogKey, &buf)
}
