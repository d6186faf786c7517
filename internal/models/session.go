package models

import (
	"time"

	"gorm.io/datatypes"
)

type GameSession struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	RoomID         *uint             `gorm:"index" json:"room_id,omitempty"`
	Status         string            `gorm:"size:20;not null;default:'waiting'" json:"status"`
	CurrentRound   int               `gorm:"not null;default:0" json:"current_round"`
	GameState      *string           `gorm:"size:20" json:"game_state,omitempty"`
	ParticipantIDs IDList            `json:"participant_ids"`
	StartedAt      *time.Time        `json:"started_at,omitempty"`
	EndedAt        *time.Time        `json:"ended_at,omitempty"`
	Metadata       datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

const (
	SessionStatusWaiting    = "waiting"
	SessionStatusInProgress = "in_progress"
	SessionStatusFinished   = "finished"
	SessionStatusCancelled  = "cancelled"
)

func ValidSessionStatus(s string) bool {
	switch s {
	case SessionStatusWaiting, SessionStatusInProgress, SessionStatusFinished, SessionStatusCancelled:
		return true
	}
	return false
}

// HasParticipant reports whether userID is in the session's participant list.
func (s *GameSession) HasParticipant(userID uint) bool {
	for _, id := range s.ParticipantIDs {
		if uint(id) == userID {
			return true
		}
	}
	return false
}
