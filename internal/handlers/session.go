package handlers

import (
	"net/http"
	"time"

	"vibelink-backend/internal/models"
	"vibelink-backend/internal/services"
	"vibelink-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// SessionHandler is the stateless mirror of the gateway: it reads and writes
// through the same services, so polling clients see the same state as live
// connections.
type SessionHandler struct {
	sessionService *services.SessionService
	matchService   *services.MatchService
	hub            *ws.Hub
}

func NewSessionHandler(sessionService *services.SessionService, matchService *services.MatchService, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, matchService: matchService, hub: hub}
}

// CreateSession godoc
// @Summary      Create a game session
// @Description  Creates a waiting session for the given participants
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.CreateSessionInput true "Session data"
// @Success      201 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var input services.CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	session, err := h.sessionService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, session)
}

// ListSessions godoc
// @Summary      List sessions
// @Description  Filter by room or active status, newest first
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        room_id query int false "Filter by room"
// @Param        active query bool false "Only waiting/in-progress sessions"
// @Param        limit query int false "Max results" default(20)
// @Success      200 {object} Envelope
// @Router       /api/v1/sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	limit := queryInt(c, "limit", 20)

	if roomID := queryInt(c, "room_id", 0); roomID > 0 {
		sessions, err := h.sessionService.ListByRoom(uint(roomID), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, sessions)
		return
	}

	sessions, err := h.sessionService.ListActive(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sessions)
}

// GetSession godoc
// @Summary      Get a session with its matches
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.Get(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	matches, _ := h.matchService.ListMatches(sessionID)
	respondOK(c, http.StatusOK, gin.H{"session": session, "matches": matches})
}

// UpdateSession godoc
// @Summary      Partially update a session
// @Description  Only supplied fields are applied
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body services.UpdateSessionInput true "Fields to update"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions/{id} [patch]
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	session, err := h.sessionService.Update(sessionID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, session)
}

// AdvanceRound godoc
// @Summary      Advance the session to the next round
// @Description  Finishes the session when the sequence is exhausted; 409 if a concurrent advance won
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Failure      409 {object} Envelope
// @Router       /api/v1/sessions/{id}/advance [post]
func (h *SessionHandler) AdvanceRound(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.AdvanceRound(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if session.Status == models.SessionStatusFinished {
		h.hub.Broadcast(sessionID, ws.Event{
			Event: ws.EventGameFinished,
			Data:  gin.H{"session_id": session.ID, "ended_at": session.EndedAt},
		})
	} else {
		h.hub.Broadcast(sessionID, ws.Event{
			Event: ws.EventRoundChanged,
			Data: gin.H{
				"session_id":    session.ID,
				"current_round": session.CurrentRound,
				"game_state":    session.GameState,
			},
		})
	}
	respondOK(c, http.StatusOK, session)
}

// EndSession godoc
// @Summary      Force-finish a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions/{id}/end [post]
func (h *SessionHandler) EndSession(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.End(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(sessionID, ws.Event{
		Event: ws.EventGameFinished,
		Data:  gin.H{"session_id": session.ID, "ended_at": session.EndedAt},
	})
	respondOK(c, http.StatusOK, session)
}

// GetLeaderboard godoc
// @Summary      Session leaderboard
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        limit query int false "Top N" default(10)
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions/{id}/leaderboard [get]
func (h *SessionHandler) GetLeaderboard(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit := queryInt(c, "limit", 10)

	entries, err := h.sessionService.Leaderboard(sessionID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entries)
}

// RecomputeMatches godoc
// @Summary      Recompute the session's matches
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions/{id}/matches/recompute [post]
func (h *SessionHandler) RecomputeMatches(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	matches, err := h.matchService.RecomputeMatches(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, matches)
}

// GetMatches godoc
// @Summary      List the session's matches
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions/{id}/matches [get]
func (h *SessionHandler) GetMatches(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	matches, err := h.matchService.ListMatches(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, matches)
}

// PeriodLeaderboard godoc
// @Summary      Global leaderboard over a time window
// @Tags         leaderboard
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Window in days" default(7)
// @Param        limit query int false "Top N" default(10)
// @Success      200 {object} Envelope
// @Router       /api/v1/leaderboard [get]
func (h *SessionHandler) PeriodLeaderboard(c *gin.Context) {
	days := queryInt(c, "days", 7)
	limit := queryInt(c, "limit", 10)
	since := time.Now().AddDate(0, 0, -days)

	entries, err := h.sessionService.PeriodLeaderboard(since, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entries)
}
