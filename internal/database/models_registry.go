package database

import "commons/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Group{},
		&models.GroupMembership{},
		&models.GroupMessage{},
		&models.GroupJoinRequest{},
	}
}
