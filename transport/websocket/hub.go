package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/voxelverse/metaverse-server/game/protocol"
	"github.com/voxelverse/metaverse-server/internal/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// DefaultReapInterval is how often the hub scans for idle sessions.
	DefaultReapInterval = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Handler receives connection lifecycle events from the hub. All methods
// are invoked from the hub's Run loop, one event at a time.
type Handler interface {
	HandleConnect(connID string)
	HandleMessage(connID string, data []byte)
	HandleDisconnect(connID string)
	IdleConnections() []string
}

// Client represents one WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// inboundFrame carries one raw frame from a client's read pump to the
// hub's dispatch loop.
type inboundFrame struct {
	client *Client
	data   []byte
}

// Hub maintains the set of open connections and serializes all dispatch
// onto a single loop: registration, inbound frames, disconnects, and the
// idle reaper never interleave.
type Hub struct {
	// Open connections by connection id
	clients map[string]*Client

	handler Handler

	// Register requests from new connections
	register chan *Client

	// Unregister requests from closing connections
	unregister chan *Client

	// Inbound frames from client read pumps
	inbound chan inboundFrame

	reapInterval time.Duration
}

// NewHub creates a hub that scans for idle sessions every reapInterval.
// A non-positive interval falls back to DefaultReapInterval.
func NewHub(reapInterval time.Duration) *Hub {
	if reapInterval <= 0 {
		reapInterval = DefaultReapInterval
	}
	return &Hub{
		clients:      make(map[string]*Client),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		inbound:      make(chan inboundFrame, 64),
		reapInterval: reapInterval,
	}
}

// SetHandler wires the lifecycle handler. Must be called before Run.
func (h *Hub) SetHandler(handler Handler) {
	h.handler = handler
}

// Run starts the hub's event loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case frame := <-h.inbound:
			// Frames queued behind a close are dropped: once a connection
			// is gone, none of its remaining input is processed.
			if _, open := h.clients[frame.client.id]; open {
				h.handler.HandleMessage(frame.client.id, frame.data)
			}

		case <-ticker.C:
			h.reapIdle()

		case <-ctx.Done():
			for _, client := range h.clients {
				client.conn.Close()
			}
			return
		}
	}
}

// ServeWS upgrades an HTTP request and admits the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.NewString(),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Broadcast serializes {kind, payload} once and queues the identical bytes
// to every open connection except excludeID. An empty excludeID means no
// exclusion. Must be called from the Run loop.
func (h *Hub) Broadcast(kind string, payload interface{}, excludeID string) {
	data, err := marshalEnvelope(kind, payload)
	if err != nil {
		log.Printf("Failed to marshal %s broadcast: %v", kind, err)
		return
	}

	metrics.BroadcastsTotal.Inc()
	for id, client := range h.clients {
		if id == excludeID {
			continue
		}
		client.queue(data)
	}
}

// SendTo queues a frame to a single connection. Must be called from the
// Run loop.
func (h *Hub) SendTo(connID string, kind string, payload interface{}) {
	client, open := h.clients[connID]
	if !open {
		return
	}

	data, err := marshalEnvelope(kind, payload)
	if err != nil {
		log.Printf("Failed to marshal %s message: %v", kind, err)
		return
	}
	client.queue(data)
}

// Count returns the number of open connections. Only meaningful from the
// Run loop; exposed for tests.
func (h *Hub) Count() int {
	return len(h.clients)
}

// registerClient admits a connection and notifies the handler.
func (h *Hub) registerClient(client *Client) {
	h.clients[client.id] = client
	log.Printf("Client registered: %s (total connections: %d)", client.id, len(h.clients))

	if h.handler != nil {
		h.handler.HandleConnect(client.id)
	}
}

// unregisterClient removes a connection and notifies the handler. Safe to
// call twice for the same client: the second call is a no-op.
func (h *Hub) unregisterClient(client *Client) {
	if _, open := h.clients[client.id]; !open {
		return
	}
	delete(h.clients, client.id)
	close(client.send)

	log.Printf("Client unregistered: %s (remaining connections: %d)", client.id, len(h.clients))

	if h.handler != nil {
		h.handler.HandleDisconnect(client.id)
	}
}

// reapIdle force-closes connections whose sessions idled past the
// threshold. Teardown runs through the same unregister path as a
// client-initiated close.
func (h *Hub) reapIdle() {
	if h.handler == nil {
		return
	}
	for _, id := range h.handler.IdleConnections() {
		client, open := h.clients[id]
		if !open {
			continue
		}
		log.Printf("Player timed out: %s. Disconnecting.", id)
		metrics.ReapedConnectionsTotal.Inc()
		client.conn.Close()
		h.unregisterClient(client)
	}
}

// queue hands a frame to the client's write pump without blocking. Frames
// to a client with a full buffer are dropped; the connection stays open
// until its own close event fires.
func (c *Client) queue(data []byte) {
	select {
	case c.send <- data:
	default:
		metrics.DroppedFramesTotal.Inc()
		log.Printf("Dropped frame for slow client %s", c.id)
	}
}

// marshalEnvelope serializes a payload into the wire envelope.
func marshalEnvelope(kind string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(protocol.Envelope{Kind: kind, Payload: raw})
}

// readPump pumps frames from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for %s: %v", c.id, err)
			}
			break
		}
		c.hub.inbound <- inboundFrame{client: c, data: data}
	}
}

// writePump pumps frames from the hub to the WebSocket connection, one
// WebSocket message per frame so clients always receive whole JSON
// envelopes.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
