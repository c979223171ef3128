// Package domain defines domain-level errors for the auth feature.
package domain

import (
	"task_backend/internal/platform/apperr"
	"task_backend/internal/shared/mutation"
)

// Domain errors for credential and user operations.
var (
	// ErrUsernameRequired is returned when a registration or user payload has no username.
	ErrUsernameRequired = apperr.Validation("USERNAME_REQUIRED", "Username is required.")

	// ErrDuplicateUsername is returned when the username is already taken, whether
	// detected by the pre-check or by the unique index.
	ErrDuplicateUsername = apperr.New(apperr.KindDuplicateUsername, "DUPLICATE_USERNAME", "Username already exists.")

	// ErrInvalidCredentials is returned for an unknown username and for a wrong password alike.
	ErrInvalidCredentials = apperr.New(apperr.KindInvalidCredentials, "INVALID_CREDENTIALS", "Invalid username or password")

	// ErrUserNotFound is returned when no user matches the given id or username.
	ErrUserNotFound = apperr.NotFound("USER_NOT_FOUND", "User not found.")

	// ErrUserIDMismatch is returned when an update body carries a different id than the path.
	ErrUserIDMismatch = mutation.ErrIdentifierMismatch.WithMessage("User ID mismatch.")
)
