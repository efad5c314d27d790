package job_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/davbarrer/reporting-pipeline-gb/internal/job"
	joberrors "github.com/davbarrer/reporting-pipeline-gb/internal/job/errors"
	jobMock "github.com/davbarrer/reporting-pipeline-gb/internal/job/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type jobServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service job.Service
	repo    *jobMock.MockRepository
}

func setupJobServiceTest(t *testing.T) *jobServiceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := jobMock.NewMockRepository(ctrl)

	return &jobServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: job.NewService(db, repo),
		repo:    repo,
	}
}

func TestJobService_Create(t *testing.T) {
	deps := setupJobServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, j *job.Job) error {
				assert.Equal(t, "Analyst", j.Title)
				j.ID = 4
				return nil
			})

		resp, err := deps.service.Create(ctx, job.CreateJobRequest{Job: "Analyst"})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "Analyst", resp.Job)
	})

	t.Run("duplicate title maps to conflict", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "jobs_job_key"})

		_, err := deps.service.Create(ctx, job.CreateJobRequest{Job: "Analyst"})

		assert.ErrorIs(t, err, joberrors.ErrJobAlreadyExists)
	})
}

func TestJobService_GetByID(t *testing.T) {
	deps := setupJobServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, int64(9)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 9)

		assert.ErrorIs(t, err, joberrors.ErrJobNotFound)
	})
}

func TestJobService_Delete(t *testing.T) {
	deps := setupJobServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("zero rows affected means not found", func(t *testing.T) {
		deps.repo.EXPECT().
			Delete(ctx, int64(3)).
			Return(int64(0), nil)

		err := deps.service.Delete(ctx, 3)

		assert.ErrorIs(t, err, joberrors.ErrJobNotFound)
	})
}
