package hiredemployee

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -source=hired_employee_service.go -destination=mock/hired_employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHiredEmployeeRequest) (HiredEmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]HiredEmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (HiredEmployeeResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateHiredEmployeeRequest,
) (HiredEmployeeResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HiredEmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &HiredEmployee{
		ID:           req.ID,
		Name:         req.Name,
		HireDatetime: req.HireDatetime,
		DepartmentID: req.DepartmentID,
		JobID:        req.JobID,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		return HiredEmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HiredEmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]HiredEmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]HiredEmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (HiredEmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HiredEmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func mapToResponse(emp HiredEmployee) HiredEmployeeResponse {
	return HiredEmployeeResponse{
		ID:   emp.ID,
		Name: emp.Name,
		// RFC3339 keeps the zone offset the row was stored with.
		HireDatetime: emp.HireDatetime.Format(time.RFC3339),
		DepartmentID: emp.DepartmentID,
		JobID:        emp.JobID,
	}
}
