package service

import (
	"context"
	"strings"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/observability"
	"github.com/oykukmnGlad/ROOTEAM/internal/repository"
	"github.com/oykukmnGlad/ROOTEAM/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type PlantService struct {
	plantRepo repository.PlantRepository
}

func NewPlantService(plantRepo repository.PlantRepository) *PlantService {
	return &PlantService{plantRepo: plantRepo}
}

// AddPlant registers a plant owned by ownerID.
func (s *PlantService) AddPlant(ctx context.Context, ownerID uint, name, species string) (*models.Plant, error) {
	ctx, span := observability.StartSpan(ctx, "PlantService.AddPlant", attribute.Int64("user.id", int64(ownerID)))
	defer span.End()

	name = strings.TrimSpace(name)
	species = strings.TrimSpace(species)
	if err := validation.ValidatePlant(name, species); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	plant := &models.Plant{UserID: ownerID, Name: name, Species: species}
	if err := s.plantRepo.Create(ctx, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// ListPlants returns only the owner's plants, oldest first, with care logs.
func (s *PlantService) ListPlants(ctx context.Context, ownerID uint) ([]*models.Plant, error) {
	ctx, span := observability.StartSpan(ctx, "PlantService.ListPlants", attribute.Int64("user.id", int64(ownerID)))
	defer span.End()

	return s.plantRepo.ListByUser(ctx, ownerID)
}

// GetPlant returns one of the owner's plants. Plants of other users are
// reported as not found.
func (s *PlantService) GetPlant(ctx context.Context, ownerID, plantID uint) (*models.Plant, error) {
	plant, err := s.plantRepo.GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if !plant.OwnedBy(ownerID) {
		return nil, models.NewNotFoundError("Plant", plantID)
	}
	return plant, nil
}
