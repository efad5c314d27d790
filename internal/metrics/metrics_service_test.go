package metrics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/davbarrer/reporting-pipeline-gb/internal/metrics"
	metricsMock "github.com/davbarrer/reporting-pipeline-gb/internal/metrics/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMetricsService_QuarterlyHires(t *testing.T) {
	ctx := context.Background()

	report := []metrics.QuarterlyHiresRow{
		{Department: "Accounting", Job: "Account Representative IV", Q1: 1, Q2: 0, Q3: 0, Q4: 0},
		{Department: "Staff", Job: "Recruiter", Q1: 3, Q2: 0, Q3: 0, Q4: 0},
	}

	t.Run("cache miss queries the database and stores the report", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := metricsMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		payload, _ := json.Marshal(report)
		rmock.ExpectGet(metrics.QuarterlyHiresKey).RedisNil()
		rmock.ExpectSet(metrics.QuarterlyHiresKey, payload, 30*time.Minute).SetVal("OK")

		repo.EXPECT().QuarterlyHires(ctx, 2021).Return(report, nil)

		svc := metrics.NewService(repo, rdb)
		got, err := svc.QuarterlyHires(ctx)

		assert.NoError(t, err)
		assert.Equal(t, report, got)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := metricsMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		payload, _ := json.Marshal(report)
		rmock.ExpectGet(metrics.QuarterlyHiresKey).SetVal(string(payload))

		svc := metrics.NewService(repo, rdb)
		got, err := svc.QuarterlyHires(ctx)

		assert.NoError(t, err)
		assert.Equal(t, report, got)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("works without redis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := metricsMock.NewMockRepository(ctrl)

		repo.EXPECT().QuarterlyHires(ctx, 2021).Return(report, nil)

		svc := metrics.NewService(repo, nil)
		got, err := svc.QuarterlyHires(ctx)

		assert.NoError(t, err)
		assert.Equal(t, report, got)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := metricsMock.NewMockRepository(ctrl)

		repo.EXPECT().QuarterlyHires(ctx, 2021).Return(nil, errors.New("db down"))

		svc := metrics.NewService(repo, nil)
		_, err := svc.QuarterlyHires(ctx)

		assert.Error(t, err)
	})
}

func TestMetricsService_DepartmentsAboveAverage(t *testing.T) {
	ctx := context.Background()

	report := []metrics.AboveAverageRow{
		{ID: 7, Department: "Engineering", Hired: 208},
		{ID: 4, Department: "Support", Hired: 184},
	}

	t.Run("cache miss queries the database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := metricsMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		payload, _ := json.Marshal(report)
		rmock.ExpectGet(metrics.AboveAverageKey).RedisNil()
		rmock.ExpectSet(metrics.AboveAverageKey, payload, 30*time.Minute).SetVal("OK")

		repo.EXPECT().DepartmentsAboveAverage(ctx, 2021).Return(report, nil)

		svc := metrics.NewService(repo, rdb)
		got, err := svc.DepartmentsAboveAverage(ctx)

		assert.NoError(t, err)
		assert.Equal(t, report, got)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("corrupt cache entry falls back to the database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := metricsMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		rmock.ExpectGet(metrics.AboveAverageKey).SetVal("{not json")
		payload, _ := json.Marshal(report)
		rmock.ExpectSet(metrics.AboveAverageKey, payload, 30*time.Minute).SetVal("OK")

		repo.EXPECT().DepartmentsAboveAverage(ctx, 2021).Return(report, nil)

		svc := metrics.NewService(repo, rdb)
		got, err := svc.DepartmentsAboveAverage(ctx)

		assert.NoError(t, err)
		assert.Equal(t, report, got)
	})
}
