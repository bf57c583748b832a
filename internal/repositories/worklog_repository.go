package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/yohandiaz/worklog-app/internal/errors"
	model "github.com/yohandiaz/worklog-app/internal/models"
)

// WorkLogRepository executes the five CRUD operations against the backing
// store. Each operation is one round trip; "not found" surfaces as
// apperrors.ErrWorkLogNotFound, everything else propagates as-is.
type WorkLogRepository struct {
	db *gorm.DB
}

func NewWorkLogRepository(db *gorm.DB) *WorkLogRepository {
	return &WorkLogRepository{db: db}
}

func (r *WorkLogRepository) Create(ctx context.Context, worklog *model.WorkLog) (*model.WorkLog, error) {
	worklog.ID = 0
	worklog.InsertedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(worklog).Error; err != nil {
		return nil, err
	}

	return worklog, nil
}

func (r *WorkLogRepository) FindByID(ctx context.Context, id uint) (*model.WorkLog, error) {
	var worklog model.WorkLog
	err := r.db.WithContext(ctx).First(&worklog, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkLogNotFound
		}
		return nil, err
	}
	return &worklog, nil
}

// List returns up to limit records after skipping skip, ordered by id so
// offset pagination is stable.
func (r *WorkLogRepository) List(ctx context.Context, skip, limit int) ([]model.WorkLog, error) {
	worklogs := make([]model.WorkLog, 0, limit)
	err := r.db.WithContext(ctx).
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&worklogs).Error
	return worklogs, err
}

// Update overwrites every mutable field of the addressed record.
// ID and InsertedAt are never touched.
func (r *WorkLogRepository) Update(ctx context.Context, id uint, worklog *model.WorkLog) (*model.WorkLog, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&model.WorkLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"task":           worklog.Task,
			"description":    worklog.Description,
			"date":           worklog.Date,
			"is_highlighted": worklog.IsHighlighted,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	existing.Task = worklog.Task
	existing.Description = worklog.Description
	existing.Date = worklog.Date
	existing.IsHighlighted = worklog.IsHighlighted
	return existing, nil
}

// Delete removes the addressed record and returns it as it existed
// immediately before removal.
func (r *WorkLogRepository) Delete(ctx context.Context, id uint) (*model.WorkLog, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&model.WorkLog{}, id).Error; err != nil {
		return nil, err
	}

	return existing, nil
}
