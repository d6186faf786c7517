package models

import "time"

// ConnectionEvent records gateway joins and leaves per session.
type ConnectionEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    uint      `gorm:"not null;index" json:"session_id"`
	UserID       uint      `gorm:"not null" json:"user_id"`
	ConnectionID string    `gorm:"size:36" json:"connection_id"`
	Event        string    `gorm:"size:20;not null" json:"event"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	ConnectionEventJoined = "joined"
	ConnectionEventLeft   = "left"
)
