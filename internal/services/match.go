package services

import (
	"vibelink-backend/internal/models"

	"gorm.io/gorm"
)

// MatchScorer computes compatibility records from a session's responses.
// Contract: input is the session and every response submitted to it; output
// is zero or more Match rows, at most one per unordered participant pair,
// with UserAID < UserBID. The scoring formula itself is not specified here.
type MatchScorer interface {
	Score(session *models.GameSession, responses []models.RoundResponse) []models.Match
}

type MatchService struct {
	db       *gorm.DB
	sessions *SessionService
	scorer   MatchScorer
}

// NewMatchService creates the match service. scorer may be nil, in which
// case RecomputeMatches leaves stored matches untouched.
func NewMatchService(db *gorm.DB, sessions *SessionService, scorer MatchScorer) *MatchService {
	return &MatchService{db: db, sessions: sessions, scorer: scorer}
}

func (s *MatchService) ListMatches(sessionID uint) ([]models.Match, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	var matches []models.Match
	err := s.db.Where("session_id = ?", sessionID).
		Order("connection_score DESC").
		Find(&matches).Error
	return matches, err
}

// RecomputeMatches replaces the session's match rows with the scorer's
// output. Without a scorer this is a no-op returning the stored rows.
func (s *MatchService) RecomputeMatches(sessionID uint) ([]models.Match, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if s.scorer == nil {
		return s.ListMatches(sessionID)
	}

	var responses []models.RoundResponse
	if err := s.db.Where("session_id = ?", sessionID).
		Order("round_number ASC, submitted_at ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	matches := s.scorer.Score(session, responses)
	for i := range matches {
		matches[i].SessionID = sessionID
		if matches[i].UserAID > matches[i].UserBID {
			matches[i].UserAID, matches[i].UserBID = matches[i].UserBID, matches[i].UserAID
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&models.Match{}).Error; err != nil {
			return err
		}
		for i := range matches {
			if err := tx.Create(&matches[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListMatches(sessionID)
}
