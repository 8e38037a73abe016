package repository

import (
	"context"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// Every read method excludes soft-deleted rows unless stated otherwise.
// Missing rows are reported as gorm.ErrRecordNotFound.

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update saves the task's mutable columns. It returns
	// gorm.ErrRecordNotFound when the task is missing or soft-deleted.
	Update(ctx context.Context, task *models.Task) error

	// SoftDelete marks a task as deleted
	SoftDelete(ctx context.Context, id string) error

	// CreateAssignment inserts the assignment unless the pair already exists.
	// It reports whether a row was inserted.
	CreateAssignment(ctx context.Context, taskID, userID string) (bool, error)

	// DeleteAssignment removes the assignment and reports whether a row was removed
	DeleteAssignment(ctx context.Context, taskID, userID string) (bool, error)
}

// TaskFilter holds filtering options for listing tasks.
// Nil fields place no constraint on that dimension.
type TaskFilter struct {
	Status      *models.TaskStatus
	CreatedByID *string
	AssigneeID  *string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// EmailExists reports whether any row, soft-deleted or not, uses the email
	EmailExists(ctx context.Context, email string) (bool, error)

	// List returns all users ordered by creation time
	List(ctx context.Context) ([]models.User, error)

	// SoftDelete marks a user as deleted
	SoftDelete(ctx context.Context, id string) error
}
