package services

import (
	"context"

	dto "github.com/yohandiaz/worklog-app/internal/data_models"
	model "github.com/yohandiaz/worklog-app/internal/models"
	repository "github.com/yohandiaz/worklog-app/internal/repositories"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

type WorkLogService struct {
	repo *repository.WorkLogRepository
}

func NewWorkLogService(repo *repository.WorkLogRepository) *WorkLogService {
	return &WorkLogService{repo: repo}
}

// Create persists a validated payload. A missing date defaults to today at
// this point; id and inserted_at are assigned by the repository.
func (s *WorkLogService) Create(ctx context.Context, req *dto.WorkLogRequest) (*model.WorkLog, error) {
	return s.repo.Create(ctx, fromRequest(req))
}

func (s *WorkLogService) Get(ctx context.Context, id uint) (*model.WorkLog, error) {
	return s.repo.FindByID(ctx, id)
}

// List clamps skip to >= 0 and limit to 1..MaxListLimit, so any
// offset/limit combination yields a (possibly empty) sequence rather than
// an error.
func (s *WorkLogService) List(ctx context.Context, skip, limit int) ([]model.WorkLog, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.List(ctx, skip, limit)
}

// Update is a full replacement: every mutable field is overwritten with
// the payload's value, defaults included.
func (s *WorkLogService) Update(ctx context.Context, id uint, req *dto.WorkLogRequest) (*model.WorkLog, error) {
	return s.repo.Update(ctx, id, fromRequest(req))
}

func (s *WorkLogService) Delete(ctx context.Context, id uint) (*model.WorkLog, error) {
	return s.repo.Delete(ctx, id)
}

func fromRequest(req *dto.WorkLogRequest) *model.WorkLog {
	date := req.Date
	if date.IsZero() {
		date = model.Today()
	}

	return &model.WorkLog{
		Task:          req.Task,
		Description:   req.Description,
		Date:          date,
		IsHighlighted: req.IsHighlighted,
	}
}
