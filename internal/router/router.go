package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/handlers"
	"github.com/yukikurage/taskboard-api/internal/middleware"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth *handlers.AuthHandler
	Task *handlers.TaskHandler
	User *handlers.UserHandler
}

// Register wires routes and middleware.
func Register(r *gin.Engine, verifier middleware.TokenVerifier, logger *slog.Logger, h Handlers) {
	handlers.RegisterValidations()

	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task API is running",
		})
	})

	requireAuth := middleware.RequireAuth(verifier)
	requireID := middleware.RequireUUIDParam("id")

	// Auth routes (public except /me)
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.GetCurrentUser)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", h.Task.ListTasks)
		tasks.POST("", h.Task.CreateTask)
		tasks.POST("/generate", h.Task.GenerateTasks)
		tasks.GET("/:id", requireID, h.Task.GetTask)
		tasks.PATCH("/:id", requireID, h.Task.UpdateTask)
		tasks.DELETE("/:id", requireID, h.Task.DeleteTask)
		tasks.POST("/:id/assign", requireID, h.Task.AssignTask)
		tasks.POST("/:id/unassign", requireID, h.Task.UnassignTask)
	}

	// User routes (protected)
	users := r.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("", h.User.ListUsers)
		users.GET("/:id", requireID, h.User.GetUser)
	}
}
