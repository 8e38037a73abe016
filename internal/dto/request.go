package dto

import (
	"bytes"
	"encoding/json"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title       string             `json:"title" binding:"required,max=255"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	DueDate     *string            `json:"dueDate" binding:"omitempty,datestring"`
}

// UpdateTaskRequest is the body of PATCH /tasks/:id. Each field records
// whether it was sent and whether it was null.
type UpdateTaskRequest struct {
	Title       Nullable[string]            `json:"title"`
	Description Nullable[string]            `json:"description"`
	Status      Nullable[models.TaskStatus] `json:"status"`
	DueDate     Nullable[string]            `json:"dueDate"`
}

// AssignUserRequest is the body of the assign and unassign endpoints
type AssignUserRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

// ListTasksQuery holds the optional filters of GET /tasks. An empty value
// places no constraint.
type ListTasksQuery struct {
	Status      models.TaskStatus `form:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	CreatedByID string            `form:"createdById" binding:"omitempty,uuid"`
	AssigneeID  string            `form:"assigneeId" binding:"omitempty,uuid"`
}

// GenerateTasksRequest is the body of POST /tasks/generate
type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required,max=10000"`
}

// Nullable distinguishes an absent JSON member from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked for members present in the document.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns the value when it is set and not null.
func (n Nullable[T]) Ptr() *T {
	if !n.Set || !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.Set && !n.Valid
}
