package database

import "github.com/oykukmnGlad/ROOTEAM/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Plant{},
		&models.CareLog{},
		&models.ForumPost{},
	}
}
