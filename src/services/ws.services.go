package services

import (
	"log"
	"net/http"
	"time"

	movies "reelcollator/src/modules/movies/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams usage-stats snapshots to a connected client until it
// disconnects. The first snapshot goes out immediately, then one per interval.
func WebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// reader goroutine only watches for the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		stats, err := movies.GetStats()
		if err != nil {
			log.Printf("[WS] Stats unavailable: %v", err)
		} else if err := conn.WriteJSON(stats); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
