// Package dto holds the request shapes of the user endpoints. Responses reuse
// the auth feature's UserRes so the password hash is never rendered.
package dto

import (
	"time"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserReq is the body of POST /user and PUT /user/{id}.
// Password is only honoured on create.
type UserReq struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username" binding:"required"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Password  string    `json:"password"`
	CreatedOn time.Time `json:"createdOn"`
	Version   uint      `json:"version"`
}

// ToEntity converts the request into a user without any password material.
func (r *UserReq) ToEntity() *entity.User {
	return &entity.User{
		ID:        r.ID,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		CreatedOn: r.CreatedOn,
		Version:   r.Version,
	}
}
