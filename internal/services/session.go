package services

import (
	"sort"
	"time"

	"vibelink-backend/internal/errs"
	"vibelink-backend/internal/game"
	"vibelink-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionService owns the session lifecycle. Every writer, REST or gateway,
// goes through here: there is one write path per entity.
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

type CreateSessionInput struct {
	RoomID         *uint                  `json:"room_id"`
	ParticipantIDs []int64                `json:"participant_ids"`
	Metadata       map[string]interface{} `json:"metadata"`
}

func (s *SessionService) Create(input CreateSessionInput) (*models.GameSession, error) {
	if len(input.ParticipantIDs) == 0 {
		return nil, errs.ErrValidation
	}

	if input.RoomID != nil {
		var room models.Room
		if err := s.db.First(&room, *input.RoomID).Error; err != nil {
			return nil, errs.ErrRoomNotFound
		}
	}

	session := models.GameSession{
		RoomID:         input.RoomID,
		Status:         models.SessionStatusWaiting,
		CurrentRound:   0,
		ParticipantIDs: models.IDList(input.ParticipantIDs),
		Metadata:       datatypes.JSONMap(input.Metadata),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) Get(sessionID uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, errs.ErrSessionNotFound
	}
	return &session, nil
}

type UpdateSessionInput struct {
	Status       *string `json:"status"`
	GameState    *string `json:"game_state"`
	CurrentRound *int    `json:"current_round"`
}

// Update applies only the supplied fields and refreshes updated_at. An empty
// input degrades to a plain Get: no write is issued.
func (s *SessionService) Update(sessionID uint, input UpdateSessionInput) (*models.GameSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		if !models.ValidSessionStatus(*input.Status) {
			return nil, errs.ErrValidation
		}
		updates["status"] = *input.Status
	}
	if input.GameState != nil {
		updates["game_state"] = *input.GameState
	}
	if input.CurrentRound != nil {
		if *input.CurrentRound < 0 {
			return nil, errs.ErrValidation
		}
		updates["current_round"] = *input.CurrentRound
	}
	if len(updates) == 0 {
		return session, nil
	}

	updates["updated_at"] = time.Now()
	if err := s.db.Model(session).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(sessionID)
}

// AdvanceRound moves the session to the next phase of the round sequence, or
// finishes it when the sequence is exhausted. The write is guarded by the
// round index and status observed at read time, so two concurrent calls can
// never both land: the loser gets the already-advanced session back together
// with errs.ErrRoundConflict.
func (s *SessionService) AdvanceRound(sessionID uint) (*models.GameSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusFinished || session.Status == models.SessionStatusCancelled {
		return session, errs.ErrSessionFinished
	}

	current := game.RoundType("")
	if session.GameState != nil {
		current = game.RoundType(*session.GameState)
	}

	now := time.Now()
	var updates map[string]interface{}
	if next, ok := game.Next(current); ok {
		updates = map[string]interface{}{
			"status":        models.SessionStatusInProgress,
			"game_state":    string(next),
			"current_round": game.Index(next),
			"updated_at":    now,
		}
		if session.StartedAt == nil {
			updates["started_at"] = now
		}
	} else {
		// Sequence exhausted: finish, leave the label where it is.
		updates = map[string]interface{}{
			"status":     models.SessionStatusFinished,
			"ended_at":   now,
			"updated_at": now,
		}
	}

	// Every transition changes status or current_round, so this pair is a
	// sufficient compare-and-swap guard.
	res := s.db.Model(&models.GameSession{}).
		Where("id = ? AND current_round = ? AND status = ?",
			sessionID, session.CurrentRound, session.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		fresh, ferr := s.Get(sessionID)
		if ferr != nil {
			return nil, ferr
		}
		return fresh, errs.ErrRoundConflict
	}

	return s.Get(sessionID)
}

// End forces the session into finished and stamps the end timestamp,
// regardless of where in the sequence it was.
func (s *SessionService) End(sessionID uint) (*models.GameSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(session).Updates(map[string]interface{}{
		"status":     models.SessionStatusFinished,
		"ended_at":   now,
		"updated_at": now,
	}).Error; err != nil {
		return nil, err
	}
	return s.Get(sessionID)
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        uint   `json:"user_id"`
	Username      string `json:"username,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	TotalScore    int    `json:"total_score"`
	ResponseCount int    `json:"response_count"`
}

// Leaderboard sums response scores per participant, ranked descending. Ties
// keep the order of the session's participant list.
func (s *SessionService) Leaderboard(sessionID uint, limit int) ([]LeaderboardEntry, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	type row struct {
		UserID uint
		Total  int
		Count  int
	}
	var rows []row
	if err := s.db.Model(&models.RoundResponse{}).
		Select("user_id, SUM(score) AS total, COUNT(*) AS count").
		Where("session_id = ?", sessionID).
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uint]row, len(rows))
	for _, r := range rows {
		totals[r.UserID] = r
	}

	entries := make([]LeaderboardEntry, 0, len(session.ParticipantIDs))
	order := make(map[uint]int, len(session.ParticipantIDs))
	for i, id := range session.ParticipantIDs {
		uid := uint(id)
		order[uid] = i
		e := LeaderboardEntry{UserID: uid}
		if r, ok := totals[uid]; ok {
			e.TotalScore = r.Total
			e.ResponseCount = r.Count
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].TotalScore != entries[b].TotalScore {
			return entries[a].TotalScore > entries[b].TotalScore
		}
		return order[entries[a].UserID] < order[entries[b].UserID]
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	s.fillUserNames(entries)
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// PeriodLeaderboard aggregates scores across all sessions since the cutoff.
func (s *SessionService) PeriodLeaderboard(since time.Time, limit int) ([]LeaderboardEntry, error) {
	type row struct {
		UserID uint
		Total  int
		Count  int
	}
	var rows []row
	q := s.db.Model(&models.RoundResponse{}).
		Select("user_id, SUM(score) AS total, COUNT(*) AS count").
		Where("submitted_at >= ?", since).
		Group("user_id").
		Order("total DESC, user_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = LeaderboardEntry{
			Rank:          i + 1,
			UserID:        r.UserID,
			TotalScore:    r.Total,
			ResponseCount: r.Count,
		}
	}
	s.fillUserNames(entries)
	return entries, nil
}

func (s *SessionService) fillUserNames(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		return
	}
	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	var users []models.User
	s.db.Where("id IN ?", ids).Find(&users)
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range entries {
		if u, ok := byID[entries[i].UserID]; ok {
			entries[i].Username = u.Username
			entries[i].DisplayName = u.DisplayName
		}
	}
}

func (s *SessionService) ListActive(limit int) ([]models.GameSession, error) {
	var sessions []models.GameSession
	err := s.db.Where("status IN ?",
		[]string{models.SessionStatusWaiting, models.SessionStatusInProgress}).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (s *SessionService) ListByRoom(roomID uint, limit int) ([]models.GameSession, error) {
	var sessions []models.GameSession
	err := s.db.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// ListByUser relies on the PostgreSQL array membership operator.
func (s *SessionService) ListByUser(userID uint, limit int) ([]models.GameSession, error) {
	var sessions []models.GameSession
	err := s.db.Where("? = ANY(participant_ids)", int64(userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// IsParticipant loads the session and checks membership. Returns
// ErrSessionNotFound before ErrNotParticipant so callers can distinguish.
func (s *SessionService) IsParticipant(sessionID, userID uint) (*models.GameSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(userID) {
		return nil, errs.ErrNotParticipant
	}
	return session, nil
}
