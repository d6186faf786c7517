package models

import "time"

type MemeUpload struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;index" json:"session_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	Caption   string    `gorm:"size:500" json:"caption,omitempty"`
	VoteCount int       `gorm:"not null;default:0" json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

type MemeReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemeID    uint      `gorm:"not null;uniqueIndex:idx_meme_voter" json:"meme_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_meme_voter" json:"user_id"`
	Vote      int       `gorm:"not null;default:1" json:"vote"`
	CreatedAt time.Time `json:"created_at"`
}
