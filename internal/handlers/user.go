package handlers

import (
	"net/http"

	"vibelink-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService    *services.UserService
	sessionService *services.SessionService
}

func NewUserHandler(userService *services.UserService, sessionService *services.SessionService) *UserHandler {
	return &UserHandler{userService: userService, sessionService: sessionService}
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Envelope
// @Router       /api/v1/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.userService.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Applies only the supplied fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.UpdateProfileInput true "Profile fields"
// @Success      200 {object} Envelope
// @Router       /api/v1/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input services.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

// MySessions godoc
// @Summary      List sessions the user participated in
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max results" default(20)
// @Success      200 {object} Envelope
// @Router       /api/v1/me/sessions [get]
func (h *UserHandler) MySessions(c *gin.Context) {
	userID := c.GetUint("user_id")
	limit := queryInt(c, "limit", 20)

	sessions, err := h.sessionService.ListByUser(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sessions)
}
