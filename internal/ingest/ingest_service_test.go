package ingest_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/davbarrer/reporting-pipeline-gb/internal/events"
	"github.com/davbarrer/reporting-pipeline-gb/internal/ingest"
	ingesterrors "github.com/davbarrer/reporting-pipeline-gb/internal/ingest/errors"
	ingestMock "github.com/davbarrer/reporting-pipeline-gb/internal/ingest/mock"
	"github.com/davbarrer/reporting-pipeline-gb/internal/messaging/kafka"
	kafkaMock "github.com/davbarrer/reporting-pipeline-gb/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service ingest.Service
	repo    *ingestMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := ingestMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := ingest.NewService(db, repo, outbox)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestIngestService_Insert_Departments(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("inserts full batch and enqueues event", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().InsertDepartment(ctx, "Engineering").Return(int64(1), nil)
		deps.repo.EXPECT().InsertDepartment(ctx, "Sales").Return(int64(2), nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.RecordsIngestedTopic, e.Topic)
				assert.Equal(t, kafka.OutboxStatusPending, e.Status)

				var payload events.RecordsIngestedEvent
				assert.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Equal(t, "departments", payload.Table)
				assert.Equal(t, 2, payload.Inserted)
				assert.Equal(t, 0, payload.Failed)
				return nil
			})

		resp, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "departments",
			Data: []map[string]any{
				{"department": "Engineering"},
				{"department": "Sales"},
			},
		})

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Empty(t, resp.FailedRecords)
	})

	t.Run("reports invalid records without aborting the batch", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().InsertDepartment(ctx, "Support").Return(int64(3), nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "departments",
			Data: []map[string]any{
				{"department": "Support"},
				{"dept": "typo, misses required field"},
			},
		})

		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Len(t, resp.FailedRecords, 1)
		assert.Contains(t, resp.FailedRecords[0]["reason"], "department")
	})
}

func TestIngestService_Insert_HiredEmployees(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	record := map[string]any{
		"name":          "Ada Lovelace",
		"hire_datetime": "2021-11-07T02:48:42Z",
		"department_id": float64(7),
		"job_id":        float64(3),
	}

	t.Run("parses payload and checks foreign keys", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().DepartmentExists(ctx, int64(7)).Return(true, nil)
		deps.repo.EXPECT().JobExists(ctx, int64(3)).Return(true, nil)
		deps.repo.EXPECT().
			InsertHiredEmployee(ctx, "Ada Lovelace", gomock.Any(), int64(7), int64(3)).
			DoAndReturn(func(ctx context.Context, name string, hiredAt time.Time, _, _ int64) (int64, error) {
				assert.Equal(t, 2021, hiredAt.Year())
				assert.Equal(t, time.November, hiredAt.Month())
				return 1, nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "hired_employees",
			Data:  []map[string]any{record},
		})

		assert.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("unknown department id fails the record only", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().DepartmentExists(ctx, int64(7)).Return(false, nil)

		// Nothing was inserted, so no event is enqueued.
		resp, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "hired_employees",
			Data:  []map[string]any{record},
		})

		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Len(t, resp.FailedRecords, 1)
		assert.Contains(t, resp.FailedRecords[0]["reason"], "department 7")
	})

	t.Run("malformed hire_datetime fails the record", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		bad := map[string]any{
			"name":          "Grace Hopper",
			"hire_datetime": "07/11/2021",
			"department_id": float64(1),
			"job_id":        float64(1),
		}

		resp, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "hired_employees",
			Data:  []map[string]any{bad},
		})

		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.FailedRecords[0]["reason"], "hire_datetime")
	})
}

func TestIngestService_Insert_BatchValidation(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("unknown table", func(t *testing.T) {
		_, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "salaries",
			Data:  []map[string]any{{"x": 1}},
		})
		assert.ErrorIs(t, err, ingesterrors.ErrUnknownTable)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "departments",
			Data:  []map[string]any{},
		})
		assert.ErrorIs(t, err, ingesterrors.ErrEmptyBatch)
	})

	t.Run("batch over limit", func(t *testing.T) {
		data := make([]map[string]any, 1001)
		for i := range data {
			data[i] = map[string]any{"department": "X"}
		}
		_, err := deps.service.Insert(ctx, ingest.InsertRequest{
			Table: "departments",
			Data:  data,
		})
		assert.ErrorIs(t, err, ingesterrors.ErrBatchTooLarge)
	})
}
