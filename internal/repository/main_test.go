package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/oykukmnGlad/ROOTEAM/internal/database"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB returns a migrated private in-memory SQLite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock
}

func quote(sql string) string {
	return regexp.QuoteMeta(sql)
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "pw-" + username}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createPlant(t *testing.T, db *gorm.DB, owner *models.User, name, species string) *models.Plant {
	t.Helper()
	plant := &models.Plant{UserID: owner.ID, Name: name, Species: species}
	require.NoError(t, NewPlantRepository(db).Create(context.Background(), plant))
	return plant
}
