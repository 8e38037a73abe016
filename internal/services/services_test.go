package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/auth"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/logging"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testEnv struct {
	db          *gorm.DB
	issuer      *auth.TokenIssuer
	authService *AuthService
	userService *UserService
	taskService *TaskService
	userRepo    repository.UserRepository
}

func setupTestEnv(t *testing.T, drafter TaskDrafter) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps concurrent lookups on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	log := logging.Discard()
	require.NoError(t, database.Migrate(db, log))

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)

	return testEnv{
		db:          db,
		issuer:      issuer,
		authService: NewAuthService(userRepo, issuer, log),
		userService: NewUserService(userRepo, log),
		taskService: NewTaskService(taskRepo, userRepo, drafter, log),
		userRepo:    userRepo,
	}
}

func (env testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "User " + email, PasswordHash: "hashedpassword"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env testEnv) createTask(t *testing.T, title string, creatorID string) *models.Task {
	t.Helper()
	task, err := env.taskService.CreateTask(context.Background(), CreateTaskInput{
		Title:       title,
		CreatedByID: creatorID,
	})
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}
