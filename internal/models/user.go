package models

import "time"

// User is a registered member of the platform (PostgreSQL).
// Username and Email are natural keys, unique in addition to the
// surrogate ID.
type User struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Username             string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email                string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	// NotificationsEnabled is the in-app delivery preference. The default
	// is applied by the registration handler, not a column default, so a
	// stored false survives gorm's zero-value handling.
	NotificationsEnabled bool `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
}

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Username             string `json:"username" validate:"required,min=2,max=50"`
	Email                string `json:"email" validate:"required,email"`
	NotificationsEnabled *bool  `json:"notifications_enabled,omitempty"`
}
