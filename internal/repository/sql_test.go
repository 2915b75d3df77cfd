package repository

import (
	"context"
	"regexp"
	"testing"

	"commons/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock with the postgres dialect.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestGetGroupForUpdate_LocksRowOnPostgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groups" WHERE "groups"."id" = $1 ORDER BY "groups"."id" LIMIT $2 FOR UPDATE`)).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "creator_id", "lifecycle"}).
			AddRow(7, "Harbour Clean-up", 1, "approved"))

	g, err := repo.GetGroupForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.GroupLifecycleApproved, g.Lifecycle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessagesAfter_UsesSeqCursor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "group_messages" WHERE group_id = $1 AND seq > $2 ORDER BY seq ASC LIMIT $3`)).
		WithArgs(3, 10, 25).
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "seq"}).AddRow("a", 3, 11))

	msgs, err := repo.ListMessagesAfter(context.Background(), 3, 10, 25)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, uint64(11), msgs[0].Seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}
