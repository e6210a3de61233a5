package handlers

import (
	"net/http"
	"strconv"

	"taskboard/internal/logger"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS policy is enforced at the router level
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TaskFeed upgrades the connection and streams task events for the user.
func (h *Handler) TaskFeed(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid user_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(userID, conn, h.Hub)
	client.Run()
}
