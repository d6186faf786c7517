package handlers

import (
	"net/http"
	"strings"

	"vibelink-backend/internal/services"
	"vibelink-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSHandler struct {
	gateway     *ws.Gateway
	authService *services.AuthService
	log         *zap.Logger
}

func NewWSHandler(gateway *ws.Gateway, authService *services.AuthService, log *zap.Logger) *WSHandler {
	return &WSHandler{gateway: gateway, authService: authService, log: log}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      Real-time gateway connection
// @Description  Authenticate with ?token=JWT (or Authorization header), then exchange game events
// @Tags         websocket
// @Param        token query string false "JWT"
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, Envelope{Success: false, Error: "authentication token required"})
		return
	}

	userID, err := h.authService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, Envelope{Success: false, Error: "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.gateway.Serve(conn, userID)
}
