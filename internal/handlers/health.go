package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} Envelope
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary      Readiness probe, checks the database
// @Tags         health
// @Produce      json
// @Success      200 {object} Envelope
// @Failure      503 {object} Envelope
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, Envelope{Success: false, Error: "database unavailable"})
		return
	}
	respondOK(c, http.StatusOK, gin.H{"status": "ready"})
}
