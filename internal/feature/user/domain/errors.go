// Package domain defines domain-level errors for the user resource.
package domain

import (
	"fmt"

	authdomain "task_backend/internal/feature/auth/domain"
	"task_backend/internal/platform/apperr"
)

// ErrUserDataInvalid is returned when a create request has no usable user body.
var ErrUserDataInvalid = apperr.Validation("USER_DATA_INVALID", "User data is invalid.")

// UsernameNotFound returns the not-found error for a lookup by username.
// It matches authdomain.ErrUserNotFound.
func UsernameNotFound(username string) error {
	return authdomain.ErrUserNotFound.WithMessage(fmt.Sprintf("User with username '%s' not found.", username))
}
