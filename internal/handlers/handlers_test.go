package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/auth"
	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/dto"
	"github.com/yukikurage/taskboard-api/internal/logging"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	issuer      *auth.TokenIssuer
	authService *services.AuthService
	userRepo    repository.UserRepository
}

func setupHandlerTestEnv(t *testing.T, drafter services.TaskDrafter) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidations()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	log := logging.Discard()
	require.NoError(t, database.Migrate(db, log))

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	authService := services.NewAuthService(userRepo, issuer, log)
	userService := services.NewUserService(userRepo, log)
	taskService := services.NewTaskService(taskRepo, userRepo, drafter, log)

	authHandler := NewAuthHandler(authService, userService, log)
	taskHandler := NewTaskHandler(taskService, log)
	userHandler := NewUserHandler(userService, log)

	r := gin.New()
	requireAuth := middleware.RequireAuth(issuer)
	requireID := middleware.RequireUUIDParam("id")

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/me", requireAuth, authHandler.GetCurrentUser)

	r.GET("/tasks", requireAuth, taskHandler.ListTasks)
	r.POST("/tasks", requireAuth, taskHandler.CreateTask)
	r.POST("/tasks/generate", requireAuth, taskHandler.GenerateTasks)
	r.GET("/tasks/:id", requireAuth, requireID, taskHandler.GetTask)
	r.PATCH("/tasks/:id", requireAuth, requireID, taskHandler.UpdateTask)
	r.DELETE("/tasks/:id", requireAuth, requireID, taskHandler.DeleteTask)
	r.POST("/tasks/:id/assign", requireAuth, requireID, taskHandler.AssignTask)
	r.POST("/tasks/:id/unassign", requireAuth, requireID, taskHandler.UnassignTask)

	r.GET("/users", requireAuth, userHandler.ListUsers)
	r.GET("/users/:id", requireAuth, requireID, userHandler.GetUser)

	return handlerTestEnv{
		db:          db,
		router:      r,
		issuer:      issuer,
		authService: authService,
		userRepo:    userRepo,
	}
}

// do sends a request with an optional JSON body and bearer token.
func (env handlerTestEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(constants.AuthorizationHeader, constants.BearerScheme+" "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signUp registers a user through the service layer and returns a token.
func (env handlerTestEnv) signUp(t *testing.T, email string) (dto.UserDTO, string) {
	t.Helper()
	ctx := context.Background()

	user, err := env.authService.Register(ctx, services.RegisterInput{Email: email, Name: "User " + email, Password: "password123"})
	require.NoError(t, err)
	result, err := env.authService.Login(ctx, services.LoginInput{Email: email, Password: "password123"})
	require.NoError(t, err)

	return dto.ToUserDTO(*user), result.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
