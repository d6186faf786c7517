package models

import (
	"time"

	"gorm.io/datatypes"
)

// Match is a computed compatibility record between two session participants.
// UserAID < UserBID always, so the unordered pair maps to one row.
type Match struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	SessionID       uint           `gorm:"not null;uniqueIndex:idx_match_pair" json:"session_id"`
	UserAID         uint           `gorm:"not null;uniqueIndex:idx_match_pair" json:"user_a_id"`
	UserBID         uint           `gorm:"not null;uniqueIndex:idx_match_pair" json:"user_b_id"`
	ConnectionScore int            `gorm:"not null;default:0" json:"connection_score"`
	Compatibility   datatypes.JSON `json:"compatibility,omitempty"`
	Strength        string         `gorm:"size:20" json:"strength,omitempty"`
	Tags            StringList     `json:"tags,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}
