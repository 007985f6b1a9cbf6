package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Todo struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Status      string    `gorm:"not null;default:'pending';check:status IN ('pending', 'completed')" json:"status"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index" json:"boardId"`
	OwnerID     string    `gorm:"not null;index" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Board Board `gorm:"foreignKey:BoardID" json:"-"`
}

// ValidStatus reports whether s is one of the todo statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}
