package dto

import (
	"time"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public representation of a user. It has no password field.
type UserRes struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedOn time.Time `json:"createdOn"`
	Version   uint      `json:"version"`
}

// NewUserRes converts an entity to its public representation.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedOn: u.CreatedOn,
		Version:   u.Version,
	}
}

// NewUserListRes converts a slice of entities.
func NewUserListRes(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for i := range users {
		out = append(out, NewUserRes(&users[i]))
	}
	return out
}
