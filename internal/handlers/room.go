package handlers

import (
	"net/http"

	"vibelink-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService    *services.RoomService
	sessionService *services.SessionService
}

func NewRoomHandler(roomService *services.RoomService, sessionService *services.SessionService) *RoomHandler {
	return &RoomHandler{roomService: roomService, sessionService: sessionService}
}

type CreateRoomRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255" example:"Friday Lounge"`
}

// CreateRoom godoc
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRoomRequest true "Room data"
// @Success      201 {object} Envelope
// @Router       /api/v1/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(userID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, room)
}

// ListRooms godoc
// @Summary      List active rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max results" default(50)
// @Success      200 {object} Envelope
// @Router       /api/v1/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	limit := queryInt(c, "limit", 50)

	rooms, err := h.roomService.ListActiveRooms(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary      Get a room with its recent sessions
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := pathID(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	sessions, _ := h.sessionService.ListByRoom(roomID, 10)
	respondOK(c, http.StatusOK, gin.H{"room": room, "sessions": sessions})
}

// CloseRoom godoc
// @Summary      Close a room and cancel its running sessions
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/rooms/{id}/close [post]
func (h *RoomHandler) CloseRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	roomID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.CloseRoom(roomID, userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"closed": true})
}
