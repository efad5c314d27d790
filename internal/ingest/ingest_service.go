package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davbarrer/reporting-pipeline-gb/internal/events"
	ingesterrors "github.com/davbarrer/reporting-pipeline-gb/internal/ingest/errors"
	"github.com/davbarrer/reporting-pipeline-gb/internal/messaging/kafka"
	"github.com/davbarrer/reporting-pipeline-gb/internal/shared/contextutil"
)

const maxBatchSize = 1000

// requiredFields lists the payload fields each table demands. Identifiers
// are excluded on purpose: ids come from the table sequences.
var requiredFields = map[string][]string{
	"departments":     {"department"},
	"jobs":            {"job"},
	"hired_employees": {"name", "hire_datetime", "department_id", "job_id"},
}

//go:generate mockgen -source=ingest_service.go -destination=mock/ingest_service_mock.go -package=mock
type Service interface {
	Insert(ctx context.Context, req InsertRequest) (InsertResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ingest_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ingest_service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

// Insert validates and persists a batch in a single transaction. Records
// that fail validation are reported back and skipped; they never abort
// the rest of the batch.
func (s *service) Insert(ctx context.Context, req InsertRequest) (InsertResponse, error) {
	fields, ok := requiredFields[req.Table]
	if !ok {
		return InsertResponse{}, ingesterrors.ErrUnknownTable
	}
	if len(req.Data) == 0 {
		return InsertResponse{}, ingesterrors.ErrEmptyBatch
	}
	if len(req.Data) > maxBatchSize {
		return InsertResponse{}, ingesterrors.ErrBatchTooLarge
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inserted := 0
	failed := make([]map[string]any, 0)

	for _, record := range req.Data {
		if reason := missingFields(record, fields); reason != "" {
			failed = append(failed, failedRecord(record, reason))
			continue
		}

		ok, err := s.insertRecord(ctx, qtx, req.Table, record, &failed)
		if err != nil {
			return InsertResponse{}, err
		}
		if ok {
			inserted++
		}
	}

	if inserted > 0 {
		if err := s.enqueueIngestedEvent(ctx, tx, req.Table, inserted, len(failed)); err != nil {
			return InsertResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return InsertResponse{}, err
	}

	s.logger.Info("batch ingested",
		zap.String("table", req.Table),
		zap.Int("inserted", inserted),
		zap.Int("failed", len(failed)),
	)

	return InsertResponse{
		Success:       len(failed) == 0,
		Message:       fmt.Sprintf("Inserted %d record(s) into %s", inserted, req.Table),
		FailedRecords: failed,
	}, nil
}

// insertRecord reports ok=false for records rejected by validation or a
// missing foreign key; those land in failed. A non-nil error means the
// storage layer itself failed and the whole batch must abort.
func (s *service) insertRecord(
	ctx context.Context,
	repo Repository,
	table string,
	record map[string]any,
	failed *[]map[string]any,
) (bool, error) {
	switch table {
	case "departments":
		name, err := stringField(record, "department")
		if err != nil {
			*failed = append(*failed, failedRecord(record, err.Error()))
			return false, nil
		}
		_, err = repo.InsertDepartment(ctx, name)
		return err == nil, err

	case "jobs":
		title, err := stringField(record, "job")
		if err != nil {
			*failed = append(*failed, failedRecord(record, err.Error()))
			return false, nil
		}
		_, err = repo.InsertJob(ctx, title)
		return err == nil, err

	default:
		return s.insertHiredEmployee(ctx, repo, record, failed)
	}
}

func (s *service) insertHiredEmployee(
	ctx context.Context,
	repo Repository,
	record map[string]any,
	failed *[]map[string]any,
) (bool, error) {
	name, err := stringField(record, "name")
	if err != nil {
		*failed = append(*failed, failedRecord(record, err.Error()))
		return false, nil
	}
	hiredAt, err := timeField(record, "hire_datetime")
	if err != nil {
		*failed = append(*failed, failedRecord(record, err.Error()))
		return false, nil
	}
	departmentID, err := int64Field(record, "department_id")
	if err != nil {
		*failed = append(*failed, failedRecord(record, err.Error()))
		return false, nil
	}
	jobID, err := int64Field(record, "job_id")
	if err != nil {
		*failed = append(*failed, failedRecord(record, err.Error()))
		return false, nil
	}

	exists, err := repo.DepartmentExists(ctx, departmentID)
	if err != nil {
		return false, err
	}
	if !exists {
		*failed = append(*failed, failedRecord(record,
			fmt.Sprintf("department %d does not exist", departmentID)))
		return false, nil
	}

	exists, err = repo.JobExists(ctx, jobID)
	if err != nil {
		return false, err
	}
	if !exists {
		*failed = append(*failed, failedRecord(record,
			fmt.Sprintf("job %d does not exist", jobID)))
		return false, nil
	}

	if _, err := repo.InsertHiredEmployee(ctx, name, hiredAt, departmentID, jobID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) enqueueIngestedEvent(
	ctx context.Context,
	tx *sql.Tx,
	table string,
	inserted, failedCount int,
) error {
	payload, err := json.Marshal(events.RecordsIngestedEvent{
		EventType:  events.RecordsIngestedEventType,
		Table:      table,
		Inserted:   inserted,
		Failed:     failedCount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "ingest_batch",
		AggregateID:   table,
		EventType:     events.RecordsIngestedEventType,
		Topic:         events.RecordsIngestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func missingFields(record map[string]any, fields []string) string {
	for _, f := range fields {
		v, ok := record[f]
		if !ok || v == nil {
			return fmt.Sprintf("missing required field %q", f)
		}
	}
	return ""
}

func failedRecord(record map[string]any, reason string) map[string]any {
	return map[string]any{"record": record, "reason": reason}
}

func stringField(record map[string]any, field string) (string, error) {
	s, ok := record[field].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("field %q must be a non-empty string", field)
	}
	return s, nil
}

// int64Field tolerates the numeric types a decoded JSON payload can carry.
func int64Field(record map[string]any, field string) (int64, error) {
	switch v := record[field].(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("field %q must be an integer", field)
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("field %q must be an integer", field)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("field %q must be an integer", field)
	}
}

func timeField(record map[string]any, field string) (time.Time, error) {
	s, ok := record[field].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q must be an RFC 3339 timestamp", field)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q must be an RFC 3339 timestamp", field)
	}
	return t, nil
}
