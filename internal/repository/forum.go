package repository

import (
	"context"
	"log/slog"

	"github.com/oykukmnGlad/ROOTEAM/internal/cache"
	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/observability"

	"gorm.io/gorm"
)

// ForumRepository defines persistence operations for forum posts.
type ForumRepository interface {
	Create(ctx context.Context, post *models.ForumPost) error
	List(ctx context.Context, species string) ([]*models.ForumPost, error)
	Categories(ctx context.Context) ([]string, error)
}

type forumRepository struct {
	db    *gorm.DB
	cache *cache.Store
}

// NewForumRepository returns a ForumRepository. store may be nil or
// disabled, in which case categories are always read from the database.
func NewForumRepository(db *gorm.DB, store *cache.Store) ForumRepository {
	if store == nil {
		store = cache.NewStore(nil)
	}
	return &forumRepository{db: db, cache: store}
}

func (r *forumRepository) Create(ctx context.Context, post *models.ForumPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.cache.Invalidate(ctx, cache.ForumCategoriesKey)
	return nil
}

// List returns posts newest first, restricted to species when it is not empty.
func (r *forumRepository) List(ctx context.Context, species string) ([]*models.ForumPost, error) {
	var posts []*models.ForumPost
	q := r.db.WithContext(ctx).Preload("Author")
	if species != "" {
		q = q.Where("plant_species = ?", species)
	}
	if err := q.Order("date DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Categories returns each distinct plant_species once, sorted ascending.
func (r *forumRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	hit, err := r.cache.Aside(ctx, cache.ForumCategoriesKey, &categories, cache.ForumCategoriesTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.ForumPost{}).
			Distinct("plant_species").
			Order("plant_species ASC").
			Pluck("plant_species", &categories).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if r.cache.Enabled() {
		result := "miss"
		if hit {
			result = "hit"
		}
		observability.CategoryCacheLookups.WithLabelValues(result).Inc()
		middleware.Logger.DebugContext(ctx, "forum categories lookup", slog.String("cache", result))
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
