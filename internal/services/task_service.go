package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// taskRelations are preloaded whenever a task is returned to a caller.
var taskRelations = []string{"CreatedBy", "Assignments.User"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	drafter  TaskDrafter
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService. drafter may be nil when AI
// generation is not configured.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, drafter TaskDrafter, logger *slog.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		drafter:  drafter,
		logger:   logger,
	}
}

// ListTasksInput represents filters for listing tasks. Nil means unconstrained.
type ListTasksInput struct {
	Status      *models.TaskStatus
	CreatedByID *string
	AssigneeID  *string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	DueDate     *string
	CreatedByID string
}

// UpdateTaskInput represents a partial update. Nil pointers leave the stored
// value untouched; the Clear flags set nullable columns to NULL.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *models.TaskStatus
	DueDate          *string
	ClearDueDate     bool
}

// ListTasks returns tasks matching every provided filter, newest first
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		Status:      input.Status,
		CreatedByID: input.CreatedByID,
		AssigneeID:  input.AssigneeID,
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task with its creator and assignees
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, taskRelations...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WarnContext(ctx, "task not found", "task_id", taskID)
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a new task owned by input.CreatedByID
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.TaskStatusOpen
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	dueDate, err := parseOptionalDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     dueDate,
		CreatedByID: input.CreatedByID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.InfoContext(ctx, "created task", "task_id", task.ID, "created_by", input.CreatedByID)
	return s.GetTask(ctx, task.ID)
}

// UpdateTask applies a partial update and returns the reloaded task
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.ClearDescription {
		task.Description = nil
	} else if input.Description != nil {
		description := *input.Description
		task.Description = &description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		dueDate, err := parseOptionalDueDate(input.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		// deleted after it was loaded
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WarnContext(ctx, "task not found", "task_id", taskID)
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.InfoContext(ctx, "updated task", "task_id", taskID)
	return s.GetTask(ctx, taskID)
}

// DeleteTask soft deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.taskRepo.SoftDelete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WarnContext(ctx, "task not found", "task_id", taskID)
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted task", "task_id", taskID)
	return nil
}

// AssignUser makes userID an assignee of taskID. Assigning an existing
// assignee again succeeds without changes.
//
// The task and user lookups run concurrently and both always complete. When
// both are missing the task error is reported.
func (s *TaskService) AssignUser(ctx context.Context, taskID, userID string) error {
	var taskExists, userExists bool

	var g errgroup.Group
	g.Go(func() error {
		_, err := s.taskRepo.FindByID(ctx, taskID)
		taskExists, err = recordExists(err)
		if err != nil {
			return fmt.Errorf("failed to find task: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		_, err := s.userRepo.FindByID(ctx, userID)
		userExists, err = recordExists(err)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if !taskExists {
		s.logger.WarnContext(ctx, "assign failed: task not found", "task_id", taskID)
		return ErrTaskNotFound
	}
	if !userExists {
		s.logger.WarnContext(ctx, "assign failed: user not found", "user_id", userID)
		return ErrUserNotFound
	}

	created, err := s.taskRepo.CreateAssignment(ctx, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to assign user: %w", err)
	}

	if created {
		s.logger.InfoContext(ctx, "assigned user", "task_id", taskID, "user_id", userID)
	} else {
		s.logger.DebugContext(ctx, "user already assigned", "task_id", taskID, "user_id", userID)
	}
	return nil
}

// UnassignUser removes userID from the task's assignees. It fails when the
// user is not currently assigned.
func (s *TaskService) UnassignUser(ctx context.Context, taskID, userID string) error {
	removed, err := s.taskRepo.DeleteAssignment(ctx, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to unassign user: %w", err)
	}
	if !removed {
		s.logger.WarnContext(ctx, "unassign failed: user not assigned", "task_id", taskID, "user_id", userID)
		return ErrNotAssigned
	}

	s.logger.InfoContext(ctx, "unassigned user", "task_id", taskID, "user_id", userID)
	return nil
}

// GenerateTasks uses the configured drafter to extract task drafts from text.
// Drafts are not persisted.
func (s *TaskService) GenerateTasks(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.drafter.DraftTasks(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, ErrAITooManyTasks
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		if strings.TrimSpace(aiTask.Title) == "" {
			continue
		}

		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrTitleEmpty
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// recordExists turns a lookup error into an existence flag. Only errors other
// than gorm.ErrRecordNotFound are returned.
func recordExists(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}
