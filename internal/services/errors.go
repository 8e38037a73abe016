package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/constants"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
)

var (
	ErrEmailTaken         = apierrors.New(apierrors.KindConflict, "Email already exists")
	ErrInvalidCredentials = apierrors.New(apierrors.KindAuth, "Invalid credentials")
	ErrUserNotFound       = apierrors.New(apierrors.KindNotFound, "User not found")
	ErrTaskNotFound       = apierrors.New(apierrors.KindNotFound, "Task not found")
	ErrNotAssigned        = apierrors.New(apierrors.KindInvalidOperation, "User is not assigned to this task")
	ErrTitleEmpty         = apierrors.Validation("title cannot be empty")
	ErrTitleTooLong       = apierrors.Validation(fmt.Sprintf("title must be at most %d characters", constants.MaxTitleLength))
	ErrPasswordTooShort   = apierrors.Validation(fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	ErrInvalidStatus      = apierrors.Validation("status must be one of OPEN, IN_PROGRESS, DONE")
	ErrInvalidDueDate     = apierrors.Validation("dueDate must be an ISO 8601 date string")

	ErrAIServiceNotConfigured = apierrors.New(apierrors.KindUnavailable, "AI service is not configured")
	ErrAINoTasksGenerated     = apierrors.New(apierrors.KindInvalidOperation, "AI did not generate any tasks")
	ErrAINoValidTasks         = apierrors.New(apierrors.KindInvalidOperation, "no valid tasks could be created from AI output")
	ErrAITooManyTasks         = apierrors.New(apierrors.KindInvalidOperation, "AI generated too many tasks")

	ErrFailedToHashPassword = errors.New("failed to hash password")
)
