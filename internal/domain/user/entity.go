package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. The events a user owns, the likes they
// have given and the events they participate in are reachable through the
// event tables rather than being stored here as id lists.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex" json:"email"`
	Username     string     `gorm:"size:64;uniqueIndex" json:"username"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"displayName"`
	HasPlaceID   *uuid.UUID `gorm:"type:uuid" json:"hasPlace,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// HasPlace reports whether the user has registered a place, the precondition
// for creating events.
func (u User) HasPlace() bool {
	return u.HasPlaceID != nil && *u.HasPlaceID != uuid.Nil
}
