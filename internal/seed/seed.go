// Package seed fills a database with demo users, plants, care logs and
// forum posts. It is meant for development and tests only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/cache"
	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/species"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "bitki123"

// Options controls how much data Run creates.
type Options struct {
	Users         int
	PlantsPerUser int
	LogsPerPlant  int
	Posts         int
	MaxDays       int
	Seed          int64
	ExtraSpecies  []string
}

// DefaultOptions is a small but browsable data set.
func DefaultOptions() Options {
	return Options{
		Users:         5,
		PlantsPerUser: 3,
		LogsPerPlant:  4,
		Posts:         20,
		MaxDays:       30,
	}
}

// Result counts the rows written by Run.
type Result struct {
	Users    int
	Plants   int
	CareLogs int
	Posts    int
}

// Factory builds domain entities and persists them.
type Factory struct {
	db      *gorm.DB
	faker   *gofakeit.Faker
	opts    Options
	species []string
	now     time.Time
}

// NewFactory binds a factory to db. A zero Seed picks a random one.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}

	names := append([]string{}, opts.ExtraSpecies...)
	if catalog, err := species.Default(); err == nil {
		for _, e := range catalog.List() {
			names = append(names, e.Names.TR)
		}
	}
	if len(names) == 0 {
		names = []string{"Orkide"}
	}

	return &Factory{
		db:      db,
		faker:   gofakeit.New(seed),
		opts:    opts,
		species: names,
		now:     time.Now().UTC(),
	}
}

// pastTime is a random moment within the last MaxDays days.
func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute
	return f.now.Add(-back)
}

func (f *Factory) pickSpecies() string {
	return f.species[f.faker.Number(0, len(f.species)-1)]
}

// CreateUser inserts a user with a unique fake username.
func (f *Factory) CreateUser(ctx context.Context, index int) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", f.faker.Username(), index),
		Password: DemoPassword,
	}
	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreatePlant inserts a plant owned by user with n care logs.
func (f *Factory) CreatePlant(ctx context.Context, user *models.User, n int) (*models.Plant, error) {
	plant := &models.Plant{
		UserID:  user.ID,
		Name:    f.faker.PetName(),
		Species: f.pickSpecies(),
	}
	for i := 0; i < n; i++ {
		plant.CareLogs = append(plant.CareLogs, models.CareLog{
			ActionType: models.CareActions[f.faker.Number(0, len(models.CareActions)-1)],
			Date:       f.pastTime(),
		})
	}
	if err := f.db.WithContext(ctx).Create(plant).Error; err != nil {
		return nil, fmt.Errorf("create plant: %w", err)
	}
	return plant, nil
}

// CreatePost inserts a forum post by author.
func (f *Factory) CreatePost(ctx context.Context, author *models.User) (*models.ForumPost, error) {
	post := &models.ForumPost{
		UserID:       author.ID,
		PlantSpecies: f.pickSpecies(),
		Content:      f.faker.Paragraph(1, 2, 12, " "),
		Date:         f.pastTime(),
	}
	if err := f.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Run seeds the database inside one transaction. store may be nil; when
// set, cached forum categories are dropped once the posts are committed.
func Run(ctx context.Context, db *gorm.DB, store *cache.Store, opts Options) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f := NewFactory(tx, opts)

		users := make([]*models.User, 0, opts.Users)
		for i := 0; i < opts.Users; i++ {
			u, err := f.CreateUser(ctx, i+1)
			if err != nil {
				return err
			}
			users = append(users, u)

			for j := 0; j < opts.PlantsPerUser; j++ {
				if _, err := f.CreatePlant(ctx, u, opts.LogsPerPlant); err != nil {
					return err
				}
				res.Plants++
				res.CareLogs += opts.LogsPerPlant
			}
		}
		res.Users = len(users)

		if len(users) == 0 {
			return nil
		}
		for i := 0; i < opts.Posts; i++ {
			author := users[f.faker.Number(0, len(users)-1)]
			if _, err := f.CreatePost(ctx, author); err != nil {
				return err
			}
			res.Posts++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	if res.Posts > 0 {
		store.Invalidate(ctx, cache.ForumCategoriesKey)
	}

	middleware.Logger.InfoContext(ctx, "Seed completed",
		slog.Int("users", res.Users),
		slog.Int("plants", res.Plants),
		slog.Int("care_logs", res.CareLogs),
		slog.Int("posts", res.Posts),
	)
	return res, nil
}
