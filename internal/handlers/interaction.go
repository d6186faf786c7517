package handlers

import (
	"net/http"

	"vibelink-backend/internal/services"
	"vibelink-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// InteractionHandler mirrors the gateway's mutating events over plain HTTP.
// Broadcasts still go out so live clients see REST-originated activity.
type InteractionHandler struct {
	interactionService *services.InteractionService
	hub                *ws.Hub
}

func NewInteractionHandler(interactionService *services.InteractionService, hub *ws.Hub) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService, hub: hub}
}

type SubmitResponseRequest struct {
	RoundNumber  int            `json:"round_number" binding:"min=0"`
	RoundType    string         `json:"round_type" binding:"required"`
	ResponseText string         `json:"response_text"`
	ResponseData datatypes.JSON `json:"response_data"`
	Sentiment    string         `json:"sentiment"`
	EnergyLevel  int            `json:"energy_level"`
}

// SubmitResponse godoc
// @Summary      Submit a round response
// @Description  Resubmitting for the same round overwrites the earlier response
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body SubmitResponseRequest true "Response"
// @Success      201 {object} Envelope
// @Failure      403 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/sessions/{id}/responses [post]
func (h *InteractionHandler) SubmitResponse(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	response, err := h.interactionService.SubmitResponse(sessionID, userID, services.SubmitResponseInput{
		RoundNumber:  req.RoundNumber,
		RoundType:    req.RoundType,
		ResponseText: req.ResponseText,
		ResponseData: req.ResponseData,
		Sentiment:    req.Sentiment,
		EnergyLevel:  req.EnergyLevel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(sessionID, ws.Event{
		Event: ws.EventResponseSubmitted,
		Data:  gin.H{"user_id": userID, "round_number": response.RoundNumber},
	})
	respondOK(c, http.StatusCreated, response)
}

type PostMessageRequest struct {
	Message   string `json:"message" binding:"required,min=1"`
	RoundType string `json:"round_type"`
}

// PostMessage godoc
// @Summary      Post a chat message to a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body PostMessageRequest true "Message"
// @Success      201 {object} Envelope
// @Failure      403 {object} Envelope
// @Router       /api/v1/sessions/{id}/messages [post]
func (h *InteractionHandler) PostMessage(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	message, err := h.interactionService.PostMessage(sessionID, userID, req.Message, req.RoundType)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(sessionID, ws.Event{
		Event: ws.EventNewMessage,
		Data: gin.H{
			"id":         message.ID,
			"user_id":    message.UserID,
			"message":    message.Message,
			"round_type": message.RoundType,
			"created_at": message.CreatedAt,
		},
	})
	respondOK(c, http.StatusCreated, message)
}

// ListMessages godoc
// @Summary      List a session's chat messages
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        limit query int false "Max results" default(100)
// @Success      200 {object} Envelope
// @Router       /api/v1/sessions/{id}/messages [get]
func (h *InteractionHandler) ListMessages(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit := queryInt(c, "limit", 100)

	messages, err := h.interactionService.ListMessages(sessionID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, messages)
}

type UploadMemeRequest struct {
	URL     string `json:"url" binding:"required,max=500"`
	Caption string `json:"caption" binding:"max=500"`
}

// UploadMeme godoc
// @Summary      Upload a meme to a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body UploadMemeRequest true "Meme"
// @Success      201 {object} Envelope
// @Failure      403 {object} Envelope
// @Router       /api/v1/sessions/{id}/memes [post]
func (h *InteractionHandler) UploadMeme(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UploadMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	meme, err := h.interactionService.UploadMeme(sessionID, userID, req.URL, req.Caption)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, meme)
}

// ListMemes godoc
// @Summary      List a session's memes
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} Envelope
// @Router       /api/v1/sessions/{id}/memes [get]
func (h *InteractionHandler) ListMemes(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	memes, err := h.interactionService.ListMemes(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, memes)
}

type VoteMemeRequest struct {
	Vote int `json:"vote"`
}

// VoteMeme godoc
// @Summary      Vote on a meme
// @Description  Last vote per voter wins; the meme's vote count is recomputed
// @Tags         memes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Meme ID"
// @Param        request body VoteMemeRequest true "Vote"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/memes/{id}/vote [post]
func (h *InteractionHandler) VoteMeme(c *gin.Context) {
	userID := c.GetUint("user_id")
	memeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req VoteMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	meme, err := h.interactionService.VoteMeme(memeID, userID, req.Vote)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(meme.SessionID, ws.Event{
		Event: ws.EventMemeVoted,
		Data:  gin.H{"meme_id": meme.ID, "voter_id": userID, "vote_count": meme.VoteCount},
	})
	respondOK(c, http.StatusOK, meme)
}

type AudienceVoteRequest struct {
	Category  string `json:"category" binding:"required,max=100"`
	NomineeID uint   `json:"nominee_id" binding:"required"`
	Weight    int    `json:"weight"`
}

// CastAudienceVote godoc
// @Summary      Cast an audience vote
// @Description  Votes accumulate; there is no one-vote-per-voter constraint
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body AudienceVoteRequest true "Vote"
// @Success      201 {object} Envelope
// @Failure      403 {object} Envelope
// @Router       /api/v1/sessions/{id}/audience-votes [post]
func (h *InteractionHandler) CastAudienceVote(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AudienceVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	vote, err := h.interactionService.CastAudienceVote(sessionID, userID, req.Category, req.NomineeID, req.Weight)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(sessionID, ws.Event{
		Event: ws.EventAudienceVoteCast,
		Data: gin.H{
			"category":   vote.Category,
			"nominee_id": vote.NomineeID,
			"voter_id":   userID,
			"weight":     vote.Weight,
		},
	})
	respondOK(c, http.StatusCreated, vote)
}
