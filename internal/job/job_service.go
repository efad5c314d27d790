package job

import (
	"context"
	"database/sql"

	joberrors "github.com/davbarrer/reporting-pipeline-gb/internal/job/errors"
)

//go:generate mockgen -source=job_service.go -destination=mock/job_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	GetAll(ctx context.Context) ([]JobResponse, error)
	GetByID(ctx context.Context, id int64) (JobResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateJobRequest) (JobResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j := &Job{
		ID:    req.ID,
		Title: req.Job,
	}

	if err := qtx.Create(ctx, j); err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*j), nil
}

func (s *service) GetAll(ctx context.Context) ([]JobResponse, error) {
	jobs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		res[i] = mapToResponse(j)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (JobResponse, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*j), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return joberrors.ErrJobNotFound
	}

	return nil
}

func mapToResponse(j Job) JobResponse {
	return JobResponse{
		ID:  j.ID,
		Job: j.Title,
	}
}
