package models

import "time"

type Room struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	OwnerID   uint          `gorm:"not null;index" json:"owner_id"`
	Owner     User          `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Code      string        `gorm:"size:6;index" json:"code"`
	Title     string        `gorm:"size:255;not null" json:"title"`
	Status    string        `gorm:"size:20;not null;default:'active'" json:"status"`
	Sessions  []GameSession `gorm:"foreignKey:RoomID" json:"sessions,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

const (
	RoomStatusActive = "active"
	RoomStatusClosed = "closed"
)
