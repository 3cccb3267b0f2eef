package repository

import (
	"context"
	"testing"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/cache"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPosts(t *testing.T, db *gorm.DB, repo ForumRepository) *models.User {
	t.Helper()
	author := createUser(t, db, "ayse")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []struct {
		species string
		content string
		offset  int
	}{
		{"Orkide", "first orchid", 0},
		{"Kaktus", "cactus tip", 1},
		{"Orkide", "second orchid", 2},
	}
	for _, p := range posts {
		require.NoError(t, repo.Create(context.Background(), &models.ForumPost{
			UserID:       author.ID,
			PlantSpecies: p.species,
			Content:      p.content,
			Date:         base.AddDate(0, 0, p.offset),
		}))
	}
	return author
}

func TestForumRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewForumRepository(db, nil)
	ctx := context.Background()
	author := seedPosts(t, db, repo)

	orchids, err := repo.List(ctx, "Orkide")
	require.NoError(t, err)
	require.Len(t, orchids, 2)
	assert.Equal(t, "second orchid", orchids[0].Content)
	assert.Equal(t, "first orchid", orchids[1].Content)
	require.NotNil(t, orchids[0].Author)
	assert.Equal(t, author.Username, orchids[0].Author.Username)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "second orchid", all[0].Content)
	assert.Equal(t, "first orchid", all[2].Content)

	none, err := repo.List(ctx, "Lale")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestForumRepository_Categories(t *testing.T) {
	db := newTestDB(t)
	repo := NewForumRepository(db, nil)
	ctx := context.Background()

	empty, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	seedPosts(t, db, repo)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kaktus", "Orkide"}, categories)
}

func TestForumRepository_Categories_CachedAndInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	db := newTestDB(t)
	repo := NewForumRepository(db, cache.NewStore(client))
	ctx := context.Background()
	author := seedPosts(t, db, repo)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kaktus", "Orkide"}, categories)
	assert.True(t, mr.Exists(cache.ForumCategoriesKey))

	// A row written behind the repository's back is invisible until invalidation.
	require.NoError(t, db.Create(&models.ForumPost{UserID: author.ID, PlantSpecies: "Aloe", Content: "x"}).Error)
	cached, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kaktus", "Orkide"}, cached)

	require.NoError(t, repo.Create(ctx, &models.ForumPost{UserID: author.ID, PlantSpecies: "Lale", Content: "tulips"}))
	assert.False(t, mr.Exists(cache.ForumCategoriesKey))

	fresh, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aloe", "Kaktus", "Lale", "Orkide"}, fresh)
}
