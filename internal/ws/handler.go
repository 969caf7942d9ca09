package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	apperrors "github.com/wildtour/wildtour-backend/internal/errors"
	"github.com/wildtour/wildtour-backend/internal/middleware"
	"github.com/wildtour/wildtour-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced at the router; the upgrade itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades an authenticated request to a favorites feed socket.
// GET /api/v1/favorites/ws?token=...
func Serve(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		userID, exists := middleware.GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "Debes iniciar sesión")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error("Failed to upgrade favorites socket", err, map[string]interface{}{
				"user_id": userID,
			})
			return
		}

		client := &Client{
			Hub:    hub,
			Conn:   conn,
			UserID: userID,
			Send:   make(chan []byte, 64),
		}
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()

		logger.Debug("Favorites socket handshake complete", map[string]interface{}{
			"user_id": userID,
		})
	}
}
