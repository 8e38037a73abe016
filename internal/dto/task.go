package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// UserDTO is the public projection of a user. It never carries credentials.
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate"`
	CreatedByID string            `json:"createdById"`
	CreatedBy   *UserDTO          `json:"createdBy"`
	Assignees   []UserDTO         `json:"assignees"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
}

// GeneratedTaskDTO is a task draft produced from free text
type GeneratedTaskDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// SuccessResponse acknowledges operations that return no resource
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// ToUserDTOs converts a slice of users, never returning nil
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatedByID: task.CreatedByID,
		Assignees:   make([]UserDTO, 0, len(task.Assignments)),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.CreatedBy.ID != "" {
		creator := ToUserDTO(task.CreatedBy)
		dto.CreatedBy = &creator
	}

	// Assignments whose user was soft-deleted preload an empty user
	for _, assignment := range task.Assignments {
		if assignment.User.ID == "" {
			continue
		}
		dto.Assignees = append(dto.Assignees, ToUserDTO(assignment.User))
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
