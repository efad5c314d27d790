package metrics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	QuarterlyHiresKey = "metrics:quarterly_hires:2021"
	AboveAverageKey   = "metrics:above_average:2021"

	// Reports aggregate a slow-moving dataset; half an hour of staleness
	// is acceptable.
	cacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=metrics_service.go -destination=mock/metrics_service_mock.go -package=mock
type Service interface {
	QuarterlyHires(ctx context.Context) ([]QuarterlyHiresRow, error)
	DepartmentsAboveAverage(ctx context.Context) ([]AboveAverageRow, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("metrics_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("metrics_service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) QuarterlyHires(ctx context.Context) ([]QuarterlyHiresRow, error) {
	if cached, ok := lookupCache[[]QuarterlyHiresRow](ctx, s.rdb, QuarterlyHiresKey); ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(QuarterlyHiresKey, func() (interface{}, error) {
		report, err := s.repo.QuarterlyHires(ctx, reportYear)
		if err != nil {
			return nil, err
		}
		s.storeCache(ctx, QuarterlyHiresKey, report)
		return report, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]QuarterlyHiresRow), nil
}

func (s *service) DepartmentsAboveAverage(ctx context.Context) ([]AboveAverageRow, error) {
	if cached, ok := lookupCache[[]AboveAverageRow](ctx, s.rdb, AboveAverageKey); ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(AboveAverageKey, func() (interface{}, error) {
		report, err := s.repo.DepartmentsAboveAverage(ctx, reportYear)
		if err != nil {
			return nil, err
		}
		s.storeCache(ctx, AboveAverageKey, report)
		return report, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]AboveAverageRow), nil
}

func lookupCache[T any](ctx context.Context, rdb *redis.Client, key string) (T, bool) {
	var zero T
	if rdb == nil {
		return zero, false
	}

	cached, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return zero, false
	}

	var report T
	if err := json.Unmarshal([]byte(cached), &report); err != nil {
		return zero, false
	}
	return report, true
}

func (s *service) storeCache(ctx context.Context, key string, report any) {
	if s.rdb == nil {
		return
	}
	jsonData, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, jsonData, cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache report", zap.String("key", key), zap.Error(err))
	}
}
