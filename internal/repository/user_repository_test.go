package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Email: "alice@example.com", Name: "Alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Len(t, user.ID, 36)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "ALICE@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DuplicateEmailViolatesUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com", Name: "A", PasswordHash: "h"}))
	err := repo.Create(ctx, &models.User{Email: "dup@example.com", Name: "B", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := createUser(t, db, "gone@example.com")
	require.NoError(t, repo.SoftDelete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindByEmail(ctx, "gone@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.EmailExists(ctx, "gone@example.com")
	require.NoError(t, err)
	assert.True(t, exists, "deleted rows still hold their email")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	assert.ErrorIs(t, repo.SoftDelete(ctx, user.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository_PropagatesDriverErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnError(boom)

	repo := NewUserRepository(db)
	_, err = repo.FindByEmail(ctx, "alice@example.com")

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
