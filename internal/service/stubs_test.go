package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
	}
}

// plantRepoStub is a stub for repository.PlantRepository.
type plantRepoStub struct {
	createFn     func(context.Context, *models.Plant) error
	getByIDFn    func(context.Context, uint) (*models.Plant, error)
	listByUserFn func(context.Context, uint) ([]*models.Plant, error)
}

func (s *plantRepoStub) Create(ctx context.Context, plant *models.Plant) error {
	return s.createFn(ctx, plant)
}
func (s *plantRepoStub) GetByID(ctx context.Context, id uint) (*models.Plant, error) {
	return s.getByIDFn(ctx, id)
}
func (s *plantRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Plant, error) {
	return s.listByUserFn(ctx, userID)
}

func noopPlantRepo() *plantRepoStub {
	return &plantRepoStub{
		createFn:     func(_ context.Context, _ *models.Plant) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Plant, error) { return &models.Plant{ID: id}, nil },
		listByUserFn: func(_ context.Context, _ uint) ([]*models.Plant, error) { return nil, nil },
	}
}

// careLogRepoStub is a stub for repository.CareLogRepository.
type careLogRepoStub struct {
	createFn           func(context.Context, *models.CareLog) error
	listByPlantFn      func(context.Context, uint, repository.CareLogFilter) ([]*models.CareLog, error)
	listByOwnerSinceFn func(context.Context, uint, time.Time) ([]*models.CareLog, error)
}

func (s *careLogRepoStub) Create(ctx context.Context, log *models.CareLog) error {
	return s.createFn(ctx, log)
}
func (s *careLogRepoStub) ListByPlant(ctx context.Context, plantID uint, filter repository.CareLogFilter) ([]*models.CareLog, error) {
	return s.listByPlantFn(ctx, plantID, filter)
}
func (s *careLogRepoStub) ListByOwnerSince(ctx context.Context, userID uint, since time.Time) ([]*models.CareLog, error) {
	return s.listByOwnerSinceFn(ctx, userID, since)
}

func noopCareLogRepo() *careLogRepoStub {
	return &careLogRepoStub{
		createFn:      func(_ context.Context, _ *models.CareLog) error { return nil },
		listByPlantFn: func(_ context.Context, _ uint, _ repository.CareLogFilter) ([]*models.CareLog, error) { return nil, nil },
		listByOwnerSinceFn: func(_ context.Context, _ uint, _ time.Time) ([]*models.CareLog, error) {
			return nil, nil
		},
	}
}

// forumRepoStub is a stub for repository.ForumRepository.
type forumRepoStub struct {
	createFn     func(context.Context, *models.ForumPost) error
	listFn       func(context.Context, string) ([]*models.ForumPost, error)
	categoriesFn func(context.Context) ([]string, error)
}

func (s *forumRepoStub) Create(ctx context.Context, post *models.ForumPost) error {
	return s.createFn(ctx, post)
}
func (s *forumRepoStub) List(ctx context.Context, species string) ([]*models.ForumPost, error) {
	return s.listFn(ctx, species)
}
func (s *forumRepoStub) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

func noopForumRepo() *forumRepoStub {
	return &forumRepoStub{
		createFn:     func(_ context.Context, _ *models.ForumPost) error { return nil },
		listFn:       func(_ context.Context, _ string) ([]*models.ForumPost, error) { return nil, nil },
		categoriesFn: func(_ context.Context) ([]string, error) { return []string{}, nil },
	}
}

var errDB = errors.New("db down")

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
