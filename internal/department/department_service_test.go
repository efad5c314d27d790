package department_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/davbarrer/reporting-pipeline-gb/internal/department"
	departmenterrors "github.com/davbarrer/reporting-pipeline-gb/internal/department/errors"
	departmentMock "github.com/davbarrer/reporting-pipeline-gb/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service department.Service
	repo    *departmentMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(db, repo)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
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

func TestDepartmentService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success with explicit id", func(t *testing.T) {
		req := department.CreateDepartmentRequest{ID: 1, Department: "Engineering"}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, int64(1), d.ID)
				assert.Equal(t, "Engineering", d.Name)
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Engineering", resp.Department)
	})

	t.Run("success with sequence-assigned id", func(t *testing.T) {
		req := department.CreateDepartmentRequest{Department: "Sales"}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Zero(t, d.ID)
				d.ID = 13 // sequence assigned
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(13), resp.ID)
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		req := department.CreateDepartmentRequest{Department: "Engineering"}

		expectTx(t, deps.sqlMock, false) // rollback

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "departments_department_key"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
	})

	t.Run("duplicate id maps to id-in-use conflict", func(t *testing.T) {
		req := department.CreateDepartmentRequest{ID: 1, Department: "Support"}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "departments_pkey"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentIDInUse)
	})
}

func TestDepartmentService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindAll(ctx).
			Return([]department.Department{
				{ID: 1, Name: "Engineering"},
				{ID: 2, Name: "Sales"},
			}, nil).
			Times(1)

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Engineering", resp[0].Department)
	})

	t.Run("database error", func(t *testing.T) {
		deps.repo.EXPECT().
			FindAll(ctx).
			Return(nil, errors.New("db connection error")).
			Times(1)

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&department.Department{ID: 7, Name: "Engineering"}, nil).
			Times(1)

		resp, err := deps.service.GetByID(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, int64(99)).
			Return(nil, gorm.ErrRecordNotFound).
			Times(1)

		_, err := deps.service.GetByID(ctx, 99)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			Delete(ctx, int64(1)).
			Return(int64(1), nil).
			Times(1)

		assert.NoError(t, deps.service.Delete(ctx, 1))
	})

	t.Run("missing department", func(t *testing.T) {
		deps.repo.EXPECT().
			Delete(ctx, int64(42)).
			Return(int64(0), nil).
			Times(1)

		err := deps.service.Delete(ctx, 42)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
