// Package ws streams import-run progress to WebSocket subscribers. A single
// hub goroutine owns the client set; everything else talks to it over
// channels.
package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/reellog/reellog/internal/metrics"
)

const (
	broadcastBuffer = 256
	registerBuffer  = 64

	// maxClients caps concurrent subscribers.
	maxClients = 1000

	// maxEventPayload bounds a single broadcast frame (4 KB).
	maxEventPayload = 4096

	// drainTimeout is how long Shutdown waits for send buffers to flush.
	drainTimeout = 3 * time.Second
)

// Hub fans import events out to connected clients and keeps a replay buffer
// so a reconnecting client can catch up. Client map mutations happen only in
// the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	shutdown   chan struct{} // tells Run to drain and exit
	done       chan struct{} // closed once Run has drained
	count      atomic.Int64
	log        *logrus.Logger
	seq        *EventSequence
	buffer     *EventBuffer
}

// NewHub creates a hub. Call Run on a goroutine before registering clients.
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, registerBuffer),
		unregister: make(chan *Client, registerBuffer),
		broadcast:  make(chan []byte, broadcastBuffer),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
		seq:        NewEventSequence(),
		buffer:     NewEventBuffer(defaultBufferMaxLen, defaultBufferMaxAge),
	}
}

// Run is the hub event loop. It exits on Shutdown or context cancellation,
// draining connected clients first.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.drain()

			return
		case <-h.shutdown:
			h.drain()

			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) add(client *Client) {
	if len(h.clients) >= maxClients {
		h.log.Warn("subscriber limit reached, dropping connection")
		client.closeSend()

		return
	}

	h.clients[client] = true
	h.syncCount()
	h.log.WithField("total", len(h.clients)).Info("subscriber connected")
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	client.closeSend()
	h.syncCount()
	h.log.WithField("total", len(h.clients)).Info("subscriber disconnected")
}

// fanOut delivers msg to every client, dropping any whose send buffer is
// full so one slow reader cannot stall the loop.
func (h *Hub) fanOut(msg []byte) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			client.closeSend()
			delete(h.clients, client)
		}
	}

	h.syncCount()
}

func (h *Hub) syncCount() {
	n := len(h.clients)
	h.count.Store(int64(n))
	metrics.WSConnections.Set(float64(n))
}

// Register hands a client to the Run goroutine.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	default:
		h.log.Warn("register channel full, dropping subscriber")
		c.closeSend()
	}
}

// Unregister removes a client. Safe to call after Run has exited.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	default:
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Broadcast queues a raw frame for delivery to every subscriber. Oversized
// payloads are dropped, as are frames that arrive while the queue is full.
func (h *Hub) Broadcast(msg []byte) {
	if len(msg) > maxEventPayload {
		h.log.WithField("payload_size", len(msg)).Warn("dropping oversized event payload")

		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("broadcast queue full, dropping event")
	}
}

// BroadcastEvent stamps the event with the next sequence ID, records it for
// replay, and broadcasts it.
func (h *Hub) BroadcastEvent(eventType string, data json.RawMessage) {
	evt := Event{
		Type: eventType,
		ID:   h.seq.Next(),
		Data: data,
		Time: time.Now(),
	}

	msg, err := json.Marshal(evt)
	if err != nil {
		h.log.WithError(err).Error("marshaling event")

		return
	}

	h.buffer.Append(&evt)
	h.Broadcast(msg)
}

// ReplayEvents sends buffered events newer than lastEventID to the client.
// It reports false when the buffer no longer reaches back that far.
func (h *Hub) ReplayEvents(client *Client, lastEventID uint64) bool {
	oldest := h.buffer.OldestID()
	if oldest > 0 && lastEventID > 0 && lastEventID < oldest {
		return false
	}

	for _, evt := range h.buffer.Since(lastEventID) {
		msg, err := json.Marshal(evt)
		if err != nil {
			continue
		}

		select {
		case client.send <- msg:
		default:
			// Send buffer full; the client will re-subscribe if it cares.
			return true
		}
	}

	return true
}

// Shutdown drains subscribers and blocks until Run has exited.
func (h *Hub) Shutdown() {
	close(h.shutdown)
	<-h.done
}

// drain notifies clients of shutdown, gives their write pumps a grace period
// to flush, then closes everything.
func (h *Hub) drain() {
	if len(h.clients) == 0 {
		return
	}

	h.log.WithField("clients", len(h.clients)).Info("draining WebSocket subscribers")

	notice := []byte(`{"type":"shutdown","message":"server shutting down"}`)
	for client := range h.clients {
		select {
		case client.send <- notice:
		default:
		}
	}

	deadline := time.Now().Add(drainTimeout)
	for !h.flushed() {
		if time.Now().After(deadline) {
			h.log.Warn("drain timeout, closing remaining subscribers")

			break
		}

		time.Sleep(50 * time.Millisecond)
	}

	for client := range h.clients {
		client.closeSend()
		delete(h.clients, client)
	}

	h.syncCount()
}

func (h *Hub) flushed() bool {
	for client := range h.clients {
		if len(client.send) > 0 {
			return false
		}
	}

	return true
}
