package database

import (
	"testing"

	"commons/internal/config"
	"commons/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteMemory(t *testing.T) {
	cfg := &config.Config{Env: "test", DBDriver: "sqlite", DBPath: ":memory:"}

	db, err := Connect(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	for _, m := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(m), "%T should be migrated", m)
	}
}

func TestDialector_RejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestConfigurePool(t *testing.T) {
	db := OpenTestDB(t)
	cfg := &config.Config{
		DBDriver:                 "sqlite",
		DBPath:                   "commons.db",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestMigrate_MembershipKeyIsComposite(t *testing.T) {
	db := OpenTestDB(t)

	m := models.GroupMembership{GroupID: 1, UserID: 2, Role: models.GroupRoleMember}
	require.NoError(t, db.Create(&m).Error)
	dup := models.GroupMembership{GroupID: 1, UserID: 2, Role: models.GroupRoleAdmin}
	assert.Error(t, db.Create(&dup).Error)
}
