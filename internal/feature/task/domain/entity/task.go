// Package entity defines the domain entities for the task feature.
package entity

import "time"

// Status is the lifecycle state of a task.
type Status int

const (
	StatusOpen Status = iota
	StatusInProgress
	StatusDone
)

// Task is a unit of work attributed to a user.
type Task struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`

	// CreatedBy is the creator's username. It is denormalized and not a foreign key.
	CreatedBy string `gorm:"size:255;index"`

	Status   Status `gorm:"not null;default:0"`
	Priority string `gorm:"size:32"`
	// Progress is a percentage. It is stored as given.
	Progress int
	DueDate  time.Time

	// CreatedAt is always assigned by the server on create.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`

	// Version is the optimistic-concurrency token. It starts at 1.
	Version uint `gorm:"not null;default:1"`
}

// Identifier returns the task id.
func (t *Task) Identifier() uint {
	return t.ID
}

// PrepareCreate clears any client-supplied id and stamps the creation time.
func (t *Task) PrepareCreate(now time.Time) {
	t.ID = 0
	t.CreatedAt = now.UTC()
	t.Version = 1
}
