package models

import "time"

// AudienceVote has no uniqueness over (session, voter, category): repeated
// votes from the same voter accumulate. Open question upstream whether that
// is intended multi-voting; the observed behavior is preserved.
type AudienceVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;index" json:"session_id"`
	VoterID   uint      `gorm:"not null" json:"voter_id"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	NomineeID uint      `gorm:"not null" json:"nominee_id"`
	Weight    int       `gorm:"not null;default:1" json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}
