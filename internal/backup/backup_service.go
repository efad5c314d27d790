package backup

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	backuperrors "github.com/davbarrer/reporting-pipeline-gb/internal/backup/errors"
	"github.com/davbarrer/reporting-pipeline-gb/internal/events"
	"github.com/davbarrer/reporting-pipeline-gb/internal/messaging/kafka"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/contextutil"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/objectstore"
)

// Tables lists the hiring tables in dependency order: parents before
// hired_employees, so a full restore never trips the foreign keys.
var Tables = []string{"departments", "jobs", "hired_employees"}

// TableResult summarizes one table of a backup run.
type TableResult struct {
	Table     string `json:"table"`
	Rows      int    `json:"rows"`
	ObjectKey string `json:"object_key,omitempty"`
	Skipped   bool   `json:"skipped"`
}

//go:generate mockgen -source=backup_service.go -destination=mock/backup_service_mock.go -package=mock
type Service interface {
	BackupAll(ctx context.Context) ([]TableResult, error)
	Restore(ctx context.Context, table string) (int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	store  objectstore.Store
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	store objectstore.Store,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("backup_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backup_service")
	}
	return &service{db: db, repo: repo, store: store, outbox: outbox, logger: l}
}

// BackupAll dumps every hiring table to object storage as Avro. Empty
// tables are skipped rather than overwriting a previous dump with an
// empty file.
func (s *service) BackupAll(ctx context.Context) ([]TableResult, error) {
	results := make([]TableResult, 0, len(Tables))

	for _, table := range Tables {
		result, err := s.backupTable(ctx, table)
		if err != nil {
			return results, fmt.Errorf("backup %s: %w", table, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *service) backupTable(ctx context.Context, table string) (TableResult, error) {
	rows, err := s.repo.FetchRows(ctx, table)
	if err != nil {
		return TableResult{}, err
	}

	if len(rows) == 0 {
		s.logger.Warn("table is empty, skipping backup", zap.String("table", table))
		return TableResult{Table: table, Skipped: true}, nil
	}

	data, err := EncodeTable(table, rows)
	if err != nil {
		return TableResult{}, err
	}

	key := ObjectKey(table)
	if err := s.store.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		return TableResult{}, err
	}

	s.logger.Info("table backed up",
		zap.String("table", table),
		zap.Int("rows", len(rows)),
		zap.String("object_key", key),
	)

	if err := s.enqueueEvent(ctx, events.BackupCompletedEventType, table, len(rows), key); err != nil {
		return TableResult{}, err
	}

	return TableResult{Table: table, Rows: len(rows), ObjectKey: key}, nil
}

// Restore loads a table's Avro dump from object storage and upserts every
// row, replacing rows whose id already exists.
func (s *service) Restore(ctx context.Context, table string) (int, error) {
	if !ValidTable(table) {
		return 0, backuperrors.ErrUnknownTable
	}

	key := ObjectKey(table)
	body, err := s.store.Download(ctx, key)
	if err != nil {
		return 0, backuperrors.ErrBackupNotFound
	}
	defer body.Close()

	rows, err := DecodeTable(table, body)
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		s.logger.Warn("backup file is empty, skipping restore", zap.String("table", table))
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, row := range rows {
		if err := qtx.UpsertRow(ctx, table, row); err != nil {
			return 0, fmt.Errorf("restore %s: %w", table, err)
		}
	}

	if err := s.enqueueEventTx(ctx, tx, events.RestoreCompletedEventType, table, len(rows), key); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("table restored",
		zap.String("table", table),
		zap.Int("rows", len(rows)),
	)

	return len(rows), nil
}

// ObjectKey is the storage key of a table's dump.
func ObjectKey(table string) string {
	return table + "_backup.avro"
}

func (s *service) enqueueEvent(ctx context.Context, eventType, table string, rows int, key string) error {
	return s.createOutboxEvent(ctx, s.outbox, eventType, table, rows, key)
}

func (s *service) enqueueEventTx(ctx context.Context, tx *sql.Tx, eventType, table string, rows int, key string) error {
	return s.createOutboxEvent(ctx, s.outbox.WithTx(tx), eventType, table, rows, key)
}

func (s *service) createOutboxEvent(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	eventType, table string,
	rows int,
	key string,
) error {
	payload, err := json.Marshal(events.BackupCompletedEvent{
		EventType:  eventType,
		Table:      table,
		Rows:       rows,
		ObjectKey:  key,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "table_backup",
		AggregateID:   table,
		EventType:     eventType,
		Topic:         events.BackupTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
