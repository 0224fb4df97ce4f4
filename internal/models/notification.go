package models

import "time"

// Notification status values. A notification starts unread and moves to
// read exactly once; the transition never runs backwards.
const (
	StatusUnread = "unread"
	StatusRead   = "read"
)

// Notification is a persisted, user-addressed record of one rendered
// event (PostgreSQL). Content is rendered once at creation and never
// re-rendered; CreatedAt is assigned by the store.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Type      string    `json:"type" gorm:"size:30;index"`
	Content   string    `json:"content" gorm:"not null"`
	Status    string    `json:"status" gorm:"size:10;default:unread;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
