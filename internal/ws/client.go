package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

const (
	clientSendBuffer = 256
	readLimitBytes   = 4096
	writeTimeout     = 10 * time.Second
	connMaxLifetime  = 4 * time.Hour
	pingInterval     = 30 * time.Second
	pingTimeout      = 10 * time.Second
	pingMissLimit    = 2
)

// Client is a single WebSocket subscriber managed by the Hub. Reads and
// writes run on separate goroutines; the Hub owns registration and fills
// the send channel.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	log       *logrus.Logger
	opened    time.Time
	closeOnce sync.Once
}

// NewClient wraps an accepted WebSocket connection.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, clientSendBuffer),
		log:    hub.log,
		opened: time.Now(),
	}
}

// closeSend closes the send channel exactly once.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// ReadPump consumes inbound frames until the connection drops. Clients may
// send a subscribe message to request replay of missed events; everything
// else is ignored.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.CloseNow() //nolint:errcheck // teardown
	}()

	c.conn.SetReadLimit(readLimitBytes)

	for {
		_, raw, err := c.conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				c.log.WithField("status", status).Debug("subscriber disconnected")
			}

			return
		}

		var msg SubscribeMsg
		if json.Unmarshal(raw, &msg) != nil || msg.Type != "subscribe" {
			continue
		}

		c.handleSubscribe(msg.LastEventID)
	}
}

// handleSubscribe replays buffered events after lastEventID, or tells the
// client to do a full refresh when the buffer no longer reaches back that far.
func (c *Client) handleSubscribe(lastEventID uint64) {
	if c.hub.ReplayEvents(c, lastEventID) {
		return
	}

	reset, err := json.Marshal(ResetMsg{
		Type:   "reset",
		Reason: "requested events no longer available, perform full refresh",
	})
	if err != nil {
		return
	}

	select {
	case c.send <- reset:
	default:
	}
}

// WritePump drains the send channel onto the wire, pings on an interval, and
// closes the connection once it has been open for connMaxLifetime.
func (c *Client) WritePump(ctx context.Context) {
	defer c.conn.CloseNow() //nolint:errcheck // teardown

	lifetime := time.NewTimer(time.Until(c.opened.Add(connMaxLifetime)))
	defer lifetime.Stop()

	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	missedPongs := 0

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			if err := c.write(ctx, msg); err != nil {
				c.log.WithError(err).Debug("subscriber write failed")

				return
			}

		case <-pings.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()

			if err == nil {
				missedPongs = 0

				continue
			}

			missedPongs++
			if missedPongs >= pingMissLimit {
				c.log.Debug("closing subscriber after consecutive missed pongs")

				return
			}

		case <-lifetime.C:
			c.log.Info("closing WebSocket: connection lifetime exceeded")
			c.conn.Close(websocket.StatusNormalClosure, "connection lifetime exceeded") //nolint:errcheck // best-effort

			return
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return c.conn.Write(writeCtx, websocket.MessageText, msg)
}
