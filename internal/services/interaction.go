package services

import (
	"time"

	"vibelink-backend/internal/errs"
	"vibelink-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InteractionService owns the append-only event records scoped to a session:
// round responses, chat messages, meme uploads, reactions and audience votes.
// The gateway and the REST handlers both call through here.
type InteractionService struct {
	db       *gorm.DB
	sessions *SessionService
	scoring  *ScoringService
}

func NewInteractionService(db *gorm.DB, sessions *SessionService, scoring *ScoringService) *InteractionService {
	return &InteractionService{db: db, sessions: sessions, scoring: scoring}
}

type SubmitResponseInput struct {
	RoundNumber  int            `json:"round_number"`
	RoundType    string         `json:"round_type"`
	ResponseText string         `json:"response_text"`
	ResponseData datatypes.JSON `json:"response_data"`
	Sentiment    string         `json:"sentiment"`
	EnergyLevel  int            `json:"energy_level"`
}

// SubmitResponse upserts the response keyed by (session, user, round number):
// a resubmission overwrites the earlier row rather than duplicating it.
func (s *InteractionService) SubmitResponse(sessionID, userID uint, input SubmitResponseInput) (*models.RoundResponse, error) {
	if input.RoundNumber < 0 || input.RoundType == "" {
		return nil, errs.ErrValidation
	}
	if _, err := s.sessions.IsParticipant(sessionID, userID); err != nil {
		return nil, err
	}

	score := s.scoring.ScoreResponse(input.ResponseText, len(input.ResponseData) > 0)

	var existing models.RoundResponse
	if err := s.db.Where("session_id = ? AND user_id = ? AND round_number = ?",
		sessionID, userID, input.RoundNumber).First(&existing).Error; err == nil {
		existing.RoundType = input.RoundType
		existing.ResponseText = input.ResponseText
		existing.ResponseData = input.ResponseData
		existing.Sentiment = input.Sentiment
		existing.EnergyLevel = input.EnergyLevel
		existing.Score = score
		existing.SubmittedAt = time.Now()
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	response := models.RoundResponse{
		SessionID:    sessionID,
		UserID:       userID,
		RoundNumber:  input.RoundNumber,
		RoundType:    input.RoundType,
		ResponseText: input.ResponseText,
		ResponseData: input.ResponseData,
		Sentiment:    input.Sentiment,
		EnergyLevel:  input.EnergyLevel,
		Score:        score,
		SubmittedAt:  time.Now(),
	}
	if err := s.db.Create(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *InteractionService) ListResponses(sessionID uint) ([]models.RoundResponse, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	var responses []models.RoundResponse
	err := s.db.Where("session_id = ?", sessionID).
		Order("round_number ASC, submitted_at ASC").
		Find(&responses).Error
	return responses, err
}

func (s *InteractionService) PostMessage(sessionID, userID uint, text, roundType string) (*models.ChatMessage, error) {
	if text == "" {
		return nil, errs.ErrValidation
	}
	if _, err := s.sessions.IsParticipant(sessionID, userID); err != nil {
		return nil, err
	}

	message := models.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Message:   text,
		RoundType: roundType,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *InteractionService) ListMessages(sessionID uint, limit int) ([]models.ChatMessage, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	q := s.db.Where("session_id = ?", sessionID).Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&messages).Error
	return messages, err
}

func (s *InteractionService) UploadMeme(sessionID, userID uint, url, caption string) (*models.MemeUpload, error) {
	if url == "" {
		return nil, errs.ErrValidation
	}
	if _, err := s.sessions.IsParticipant(sessionID, userID); err != nil {
		return nil, err
	}

	meme := models.MemeUpload{
		SessionID: sessionID,
		UserID:    userID,
		URL:       url,
		Caption:   caption,
	}
	if err := s.db.Create(&meme).Error; err != nil {
		return nil, err
	}
	return &meme, nil
}

func (s *InteractionService) ListMemes(sessionID uint) ([]models.MemeUpload, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	var memes []models.MemeUpload
	err := s.db.Where("session_id = ?", sessionID).
		Order("vote_count DESC, created_at ASC").
		Find(&memes).Error
	return memes, err
}

// VoteMeme upserts the voter's reaction (last vote wins) and recomputes the
// denormalized vote count on the meme.
func (s *InteractionService) VoteMeme(memeID, voterID uint, vote int) (*models.MemeUpload, error) {
	var meme models.MemeUpload
	if err := s.db.First(&meme, memeID).Error; err != nil {
		return nil, errs.ErrMemeNotFound
	}
	if _, err := s.sessions.IsParticipant(meme.SessionID, voterID); err != nil {
		return nil, err
	}
	if vote == 0 {
		vote = 1
	}

	var existing models.MemeReaction
	if err := s.db.Where("meme_id = ? AND user_id = ?", memeID, voterID).
		First(&existing).Error; err == nil {
		existing.Vote = vote
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
	} else {
		reaction := models.MemeReaction{MemeID: memeID, UserID: voterID, Vote: vote}
		if err := s.db.Create(&reaction).Error; err != nil {
			return nil, err
		}
	}

	var total int64
	if err := s.db.Model(&models.MemeReaction{}).
		Where("meme_id = ?", memeID).
		Select("COALESCE(SUM(vote), 0)").
		Scan(&total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&meme).Update("vote_count", int(total)).Error; err != nil {
		return nil, err
	}
	meme.VoteCount = int(total)
	return &meme, nil
}

// CastAudienceVote appends a weighted vote. There is no uniqueness over
// (session, voter, category); repeated votes accumulate on purpose until the
// intended semantics are settled upstream.
func (s *InteractionService) CastAudienceVote(sessionID, voterID uint, category string, nomineeID uint, weight int) (*models.AudienceVote, error) {
	if category == "" || nomineeID == 0 {
		return nil, errs.ErrValidation
	}
	session, err := s.sessions.IsParticipant(sessionID, voterID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(nomineeID) {
		return nil, errs.ErrNotParticipant
	}
	if weight <= 0 {
		weight = 1
	}

	vote := models.AudienceVote{
		SessionID: sessionID,
		VoterID:   voterID,
		Category:  category,
		NomineeID: nomineeID,
		Weight:    weight,
	}
	if err := s.db.Create(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

// RecordConnectionEvent writes a join/leave row for the gateway.
func (s *InteractionService) RecordConnectionEvent(sessionID, userID uint, connectionID, event string) error {
	return s.db.Create(&models.ConnectionEvent{
		SessionID:    sessionID,
		UserID:       userID,
		ConnectionID: connectionID,
		Event:        event,
	}).Error
}
