// Package domain defines domain-level errors for the task feature.
package domain

import (
	"fmt"

	"task_backend/internal/platform/apperr"
	"task_backend/internal/shared/mutation"
)

var (
	// ErrTaskRequired is returned when a create request has no task body.
	ErrTaskRequired = apperr.Validation("TASK_REQUIRED", "Task data is null.")

	// ErrTaskIDMismatch is returned when an update body carries a different id than the path.
	ErrTaskIDMismatch = mutation.ErrIdentifierMismatch.WithMessage("Task ID mismatch.")

	// ErrTaskNotFound is returned when no task matches the given id.
	ErrTaskNotFound = apperr.NotFound("TASK_NOT_FOUND", "Task not found.")

	// ErrNoTasksForUser is returned when a user has no tasks.
	ErrNoTasksForUser = apperr.NotFound("NO_TASKS_FOR_USER", "No tasks found for user.")
)

// NoTasksForUser returns ErrNoTasksForUser naming username.
func NoTasksForUser(username string) error {
	return ErrNoTasksForUser.WithMessage(fmt.Sprintf("No tasks found for user: %s", username))
}
