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

type ForumService struct {
	forumRepo repository.ForumRepository
}

func NewForumService(forumRepo repository.ForumRepository) *ForumService {
	return &ForumService{forumRepo: forumRepo}
}

// Post publishes a message under a species tag.
func (s *ForumService) Post(ctx context.Context, authorID uint, species, content string) (*models.ForumPost, error) {
	ctx, span := observability.StartSpan(ctx, "ForumService.Post", attribute.Int64("user.id", int64(authorID)))
	defer span.End()

	species = strings.TrimSpace(species)
	if err := validation.ValidatePost(species, content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.ForumPost{UserID: authorID, PlantSpecies: species, Content: content}
	if err := s.forumRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.ForumPostsCreated.Inc()
	return post, nil
}

// ListPosts returns posts newest first; an empty species lists them all.
func (s *ForumService) ListPosts(ctx context.Context, species string) ([]*models.ForumPost, error) {
	ctx, span := observability.StartSpan(ctx, "ForumService.ListPosts", attribute.String("forum.species", species))
	defer span.End()

	return s.forumRepo.List(ctx, strings.TrimSpace(species))
}

func (s *ForumService) ListCategories(ctx context.Context) ([]string, error) {
	return s.forumRepo.Categories(ctx)
}
