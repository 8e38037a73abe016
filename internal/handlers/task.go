package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	logger      *slog.Logger
}

func NewTaskHandler(taskService *services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns tasks matching the optional status, createdById and
// assigneeId filters, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Status:      optional(query.Status),
		CreatedByID: optional(query.CreatedByID),
		AssigneeID:  optional(query.AssigneeID),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the authenticated user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedByID: userID,
	}
	if req.Status != nil {
		input.Status = *req.Status
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Absent fields are kept; a null
// description or dueDate clears the stored value.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.Title.IsNull() {
		apierrors.BadRequest(c, "title cannot be null")
		return
	}
	if req.Status.IsNull() {
		apierrors.BadRequest(c, "status cannot be null")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), services.UpdateTaskInput{
		Title:            req.Title.Ptr(),
		Description:      req.Description.Ptr(),
		ClearDescription: req.Description.IsNull(),
		Status:           req.Status.Ptr(),
		DueDate:          req.DueDate.Ptr(),
		ClearDueDate:     req.DueDate.IsNull(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// AssignTask adds a user to the task's assignees. Repeating it is a no-op.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	var req dto.AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.taskService.AssignUser(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// UnassignTask removes a user from the task's assignees
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	var req dto.AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.taskService.UnassignUser(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// GenerateTasks drafts tasks from free text using AI. Nothing is persisted.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	var req dto.GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	generated, err := h.taskService.GenerateTasks(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	drafts := make([]dto.GeneratedTaskDTO, len(generated))
	for i, task := range generated {
		drafts[i] = dto.GeneratedTaskDTO{
			Title:       task.Title,
			Description: task.Description,
			DueDate:     task.DueDate,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": drafts,
	})
}

// optional maps an empty filter value to "unset"
func optional[T ~string](value T) *T {
	if value == "" {
		return nil
	}
	return &value
}
