// Package usecase implements the user resource on top of the shared mutation protocol.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	authdomain "task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/user/domain"
	"task_backend/internal/shared/mutation"
)

// UserRepository abstracts user persistence.
// The interface is defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	mutation.Store[*entity.User]

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
}

// PasswordHasher hashes a plaintext password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// userUsecase implements the user resource operations.
type userUsecase struct {
	repo     UserRepository
	hasher   PasswordHasher
	protocol *mutation.Protocol[*entity.User]
}

// NewUserUsecase creates a new userUsecase.
func NewUserUsecase(repo UserRepository, hasher PasswordHasher, opts ...mutation.Option[*entity.User]) *userUsecase {
	opts = append([]mutation.Option[*entity.User]{
		mutation.WithErrors[*entity.User](authdomain.ErrUserIDMismatch, authdomain.ErrUserNotFound),
	}, opts...)
	return &userUsecase{
		repo:     repo,
		hasher:   hasher,
		protocol: mutation.New[*entity.User](repo, "user", opts...),
	}
}

// Create stores a new user. A non-empty password is hashed; without one the
// user cannot log in until registered through the credential service.
func (u *userUsecase) Create(ctx context.Context, user *entity.User, password string) (*entity.User, error) {
	if user == nil {
		return nil, domain.ErrUserDataInvalid
	}
	if user.Username == "" {
		return nil, authdomain.ErrUsernameRequired
	}

	exists, err := u.repo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, authdomain.ErrDuplicateUsername
	}

	user.PasswordHash = ""
	if password != "" {
		hash, err := u.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	created, err := u.protocol.Create(ctx, user)
	if err != nil {
		if errors.Is(err, authdomain.ErrDuplicateUsername) {
			return nil, authdomain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.InfoContext(ctx, "user created", "user_id", created.ID, "username", created.Username)
	return created, nil
}

func (u *userUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.repo.FindAll(ctx)
}

func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.repo.FindByID(ctx, id)
}

// GetByUsername returns the user with username. The not-found error names the username.
func (u *userUsecase) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := u.repo.FindByUsername(ctx, username)
	if errors.Is(err, authdomain.ErrUserNotFound) {
		return nil, domain.UsernameNotFound(username)
	}
	return user, err
}

// Update replaces the profile of the user with id. The password is not changed.
func (u *userUsecase) Update(ctx context.Context, id uint, user *entity.User) error {
	if user == nil {
		return domain.ErrUserDataInvalid
	}
	// A mismatched id is reported by the protocol before anything else.
	if user.ID == id && user.Username == "" {
		return authdomain.ErrUsernameRequired
	}
	if err := u.protocol.Update(ctx, id, user); err != nil {
		return err
	}
	slog.InfoContext(ctx, "user updated", "user_id", id)
	return nil
}

func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.protocol.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}
