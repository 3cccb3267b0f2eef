package repository

import (
	"context"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"gorm.io/gorm"
)

// CareLogFilter bounds a care history query. Zero times are open bounds.
// Bounds may carry any offset; they are compared in UTC.
type CareLogFilter struct {
	From time.Time
	To   time.Time
}

// CareLogRepository defines persistence operations for care logs.
type CareLogRepository interface {
	Create(ctx context.Context, log *models.CareLog) error
	ListByPlant(ctx context.Context, plantID uint, filter CareLogFilter) ([]*models.CareLog, error)
	ListByOwnerSince(ctx context.Context, userID uint, since time.Time) ([]*models.CareLog, error)
}

type careLogRepository struct {
	db *gorm.DB
}

// NewCareLogRepository returns a new CareLogRepository implementation.
func NewCareLogRepository(db *gorm.DB) CareLogRepository {
	return &careLogRepository{db: db}
}

func (r *careLogRepository) Create(ctx context.Context, log *models.CareLog) error {
	// SQLite compares timestamps as text, so every stored date shares one offset.
	if !log.Date.IsZero() {
		log.Date = log.Date.UTC()
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *careLogRepository) ListByPlant(ctx context.Context, plantID uint, filter CareLogFilter) ([]*models.CareLog, error) {
	var logs []*models.CareLog
	q := r.db.WithContext(ctx).Where("plant_id = ?", plantID)
	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		q = q.Where("date <= ?", filter.To.UTC())
	}
	if err := q.Order("date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

// ListByOwnerSince returns logs on any of the user's plants dated at or
// after since, oldest first.
func (r *careLogRepository) ListByOwnerSince(ctx context.Context, userID uint, since time.Time) ([]*models.CareLog, error) {
	var logs []*models.CareLog
	err := r.db.WithContext(ctx).
		Joins("JOIN plants ON plants.id = care_logs.plant_id").
		Where("plants.user_id = ? AND care_logs.date >= ?", userID, since.UTC()).
		Order("care_logs.date ASC, care_logs.id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}
