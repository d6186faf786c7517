package models

import (
	"time"

	"gorm.io/datatypes"
)

type RoundResponse struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SessionID    uint           `gorm:"not null;uniqueIndex:idx_response_unique" json:"session_id"`
	UserID       uint           `gorm:"not null;uniqueIndex:idx_response_unique" json:"user_id"`
	RoundNumber  int            `gorm:"not null;uniqueIndex:idx_response_unique" json:"round_number"`
	RoundType    string         `gorm:"size:20;not null" json:"round_type"`
	ResponseText string         `gorm:"type:text" json:"response_text,omitempty"`
	ResponseData datatypes.JSON `json:"response_data,omitempty"`
	Score        int            `gorm:"not null;default:0" json:"score"`
	Sentiment    string         `gorm:"size:20" json:"sentiment,omitempty"`
	EnergyLevel  int            `gorm:"default:0" json:"energy_level,omitempty"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}
