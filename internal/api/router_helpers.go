package api

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/middleware"
	"github.com/reellog/reellog/internal/ws"
)

// wsHandler upgrades the request and attaches the subscriber to the hub so
// it receives import progress events. CORS origins double as the allowed
// WebSocket origin patterns.
func wsHandler(appCtx context.Context, log *logrus.Logger, hub *ws.Hub, corsOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       corsOrigins,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).Error("websocket accept failed")

			return
		}

		client := ws.NewClient(hub, conn)
		hub.Register(client)

		// The pumps stop when the server shuts down or the request ends,
		// whichever comes first.
		wsCtx, wsCancel := context.WithCancel(appCtx)
		defer wsCancel()

		go func() {
			select {
			case <-c.Request.Context().Done():
				wsCancel()
			case <-wsCtx.Done():
			}
		}()

		go client.WritePump(wsCtx)
		client.ReadPump(wsCtx)
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		if rid := c.GetString(middleware.RequestIDKey); rid != "" {
			entry = entry.WithField("request_id", rid)
		}
		entry.Info("request")
	}
}

// validatePathID bounds path parameter IDs. External IDs are short slugs, so
// anything over 255 bytes is rejected outright.
func validatePathID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > 255 {
		return fmt.Errorf("id exceeds maximum length of 255")
	}

	return nil
}
