package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"vibelink-backend/internal/errs"

	"github.com/gin-gonic/gin"
)

// Envelope is the response shape shared by REST and the gateway acks.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), Envelope{Success: false, Error: err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP codes. Anything
// unclassified is an internal error.
func statusFor(err error) int {
	switch {
	case errs.NotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrUsernameTaken),
		errors.Is(err, errs.ErrRoundConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrSessionFinished):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
