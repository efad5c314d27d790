package hiredemployee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/davbarrer/reporting-pipeline-gb/internal/hiredemployee"
	hiredemployeeerrors "github.com/davbarrer/reporting-pipeline-gb/internal/hiredemployee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEmpService struct {
	CreateFn  func(ctx context.Context, req hiredemployee.CreateHiredEmployeeRequest) (hiredemployee.HiredEmployeeResponse, error)
	GetAllFn  func(ctx context.Context, filter hiredemployee.ListFilter) ([]hiredemployee.HiredEmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id int64) (hiredemployee.HiredEmployeeResponse, error)
}

func (f *fakeEmpService) Create(ctx context.Context, req hiredemployee.CreateHiredEmployeeRequest) (hiredemployee.HiredEmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmpService) GetAll(ctx context.Context, filter hiredemployee.ListFilter) ([]hiredemployee.HiredEmployeeResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeEmpService) GetByID(ctx context.Context, id int64) (hiredemployee.HiredEmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHiredEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmpService{
			CreateFn: func(ctx context.Context, req hiredemployee.CreateHiredEmployeeRequest) (hiredemployee.HiredEmployeeResponse, error) {
				assert.Equal(t, "A. Smith", req.Name)
				assert.Equal(t, int64(1), req.DepartmentID)
				return hiredemployee.HiredEmployeeResponse{
					ID:           1,
					Name:         req.Name,
					HireDatetime: "2021-05-01T10:00:00+02:00",
					DepartmentID: req.DepartmentID,
					JobID:        req.JobID,
				}, nil
			},
		}

		h := hiredemployee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"id":1,"name":"A. Smith","hire_datetime":"2021-05-01T10:00:00+02:00","department_id":1,"job_id":1}`
		c.Request = httptest.NewRequest(http.MethodPost, "/hired-employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "2021-05-01T10:00:00+02:00")
	})

	t.Run("malformed datetime is rejected", func(t *testing.T) {
		h := hiredemployee.NewHandler(&fakeEmpService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"id":1,"name":"A. Smith","hire_datetime":"not-a-date","department_id":1,"job_id":1}`
		c.Request = httptest.NewRequest(http.MethodPost, "/hired-employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown department yields 400", func(t *testing.T) {
		svc := &fakeEmpService{
			CreateFn: func(ctx context.Context, req hiredemployee.CreateHiredEmployeeRequest) (hiredemployee.HiredEmployeeResponse, error) {
				return hiredemployee.HiredEmployeeResponse{}, hiredemployeeerrors.ErrUnknownDepartment
			},
		}

		h := hiredemployee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"id":1,"name":"A. Smith","hire_datetime":"2021-05-01T10:00:00Z","department_id":99,"job_id":1}`
		c.Request = httptest.NewRequest(http.MethodPost, "/hired-employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "department")
	})
}

func TestHiredEmployeeHandler_GetAll(t *testing.T) {
	t.Run("filters parsed from query", func(t *testing.T) {
		svc := &fakeEmpService{
			GetAllFn: func(ctx context.Context, filter hiredemployee.ListFilter) ([]hiredemployee.HiredEmployeeResponse, error) {
				assert.NotNil(t, filter.DepartmentID)
				assert.Equal(t, int64(2), *filter.DepartmentID)
				assert.NotNil(t, filter.HiredFrom)
				return nil, nil
			},
		}

		h := hiredemployee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet,
			"/hired-employees?department_id=2&hired_from=2021-01-01T00:00:00Z", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad filter yields 400", func(t *testing.T) {
		h := hiredemployee.NewHandler(&fakeEmpService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/hired-employees?department_id=abc", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
