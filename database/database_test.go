package database

import (
	"context"
	"fmt"
	"testing"

	"cvbuilder_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	user := &models.User{Email: "an@example.com", PasswordHash: "x", Role: models.UserRoleUser}
	require.NoError(t, db.Create(user).Error)
	assert.NotEmpty(t, user.ID)
}
