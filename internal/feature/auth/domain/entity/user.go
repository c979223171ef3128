// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It is case-sensitive and unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	FirstName string `gorm:"size:255"`
	LastName  string `gorm:"size:255"`

	// PasswordHash is the bcrypt hash of the password. Plaintext is never stored
	// and the hash is never rendered to callers.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedOn is set by the server at insertion.
	CreatedOn time.Time `gorm:"not null"`

	// Version is the optimistic-concurrency token. It starts at 1.
	Version uint `gorm:"not null;default:1"`
}

// Identifier returns the user id.
func (u *User) Identifier() uint {
	return u.ID
}

// PrepareCreate clears any client-supplied id and stamps the creation time.
func (u *User) PrepareCreate(now time.Time) {
	u.ID = 0
	u.CreatedOn = now.UTC()
	u.Version = 1
}
