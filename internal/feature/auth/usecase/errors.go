package usecase

import "task_backend/internal/feature/auth/domain"

// Errors returned by the credential service. They alias the domain errors so
// callers can match either.
var (
	ErrUsernameRequired   = domain.ErrUsernameRequired
	ErrDuplicateUsername  = domain.ErrDuplicateUsername
	ErrInvalidCredentials = domain.ErrInvalidCredentials
)
