package repository

import (
	"context"
	"errors"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"gorm.io/gorm"
)

// PlantRepository defines persistence operations for plants.
type PlantRepository interface {
	Create(ctx context.Context, plant *models.Plant) error
	GetByID(ctx context.Context, id uint) (*models.Plant, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Plant, error)
}

type plantRepository struct {
	db *gorm.DB
}

// NewPlantRepository returns a new PlantRepository implementation.
func NewPlantRepository(db *gorm.DB) PlantRepository {
	return &plantRepository{db: db}
}

func (r *plantRepository) Create(ctx context.Context, plant *models.Plant) error {
	if err := r.db.WithContext(ctx).Create(plant).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *plantRepository) GetByID(ctx context.Context, id uint) (*models.Plant, error) {
	var plant models.Plant
	if err := r.db.WithContext(ctx).First(&plant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Plant", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &plant, nil
}

// ListByUser returns the user's plants in insertion order with their care
// logs preloaded newest first.
func (r *plantRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Plant, error) {
	var plants []*models.Plant
	err := r.db.WithContext(ctx).
		Preload("CareLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC, id DESC")
		}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&plants).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return plants, nil
}
