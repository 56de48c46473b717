package websocket

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"clubbot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the dashboard frontend may be served from anywhere
	},
}

const feedPollInterval = 2 * time.Second

// ModLogFeed upgrades the connection and streams moderation-log entries
// as JSON, starting after the optional "after" id.
func ModLogFeed(c *gin.Context, moderation *service.ModerationService) {
	w := c.Writer
	r := c.Request

	lastID := uint(0)
	if raw := r.URL.Query().Get("after"); raw != "" {
		after, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			http.Error(w, "invalid after id", http.StatusBadRequest)
			return
		}
		lastID = uint(after)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain client reads so we notice a closed connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			entries, err := moderation.LogsAfter(lastID)
			if err != nil {
				log.Printf("modlog feed query failed: %v", err)
				continue
			}
			for _, entry := range entries {
				if err := conn.WriteJSON(entry); err != nil {
					return
				}
				lastID = entry.ID
			}
		}
	}
}
