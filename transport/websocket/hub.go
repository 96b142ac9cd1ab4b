package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SEPR-EEP/taxe-server/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Game snapshots ride inside
	// commands, so this is deliberately generous.
	maxMessageSize = 64 * 1024
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

// Client represents one WebSocket connection. It implements service.Endpoint
// so the service can push notifications without knowing the wire format.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// ID returns the connection's identity, used to key its game binding.
func (c *Client) ID() string {
	return c.id
}

// GameStarted implements service.Endpoint.
func (c *Client) GameStarted() {
	c.push(&Event{Type: "event", Event: EventGameStarted})
}

// PlayYourTurn implements service.Endpoint.
func (c *Client) PlayYourTurn(data []byte) {
	c.push(&Event{Type: "event", Event: EventPlayYourTurn, Data: turnPayload{GameData: data}})
}

// GameEnded implements service.Endpoint.
func (c *Client) GameEnded() {
	c.push(&Event{Type: "event", Event: EventGameEnded})
}

// push queues an outbound frame. A client whose send buffer is full has
// stopped draining its connection; it is evicted through the unregister
// channel rather than blocking the command in flight. The handoff is
// asynchronous because push may run inside a service command and the
// disconnect path needs the service mutex.
func (c *Client) push(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal frame for client %s: %v", c.id, err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Client %s send buffer full, evicting", c.id)
		go func() { c.hub.unregister <- c }()
	}
}

// Hub maintains the set of active clients and dispatches their commands to
// the game service.
type Hub struct {
	service service.GameService

	// Registered clients
	mu      sync.Mutex
	clients map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub(svc service.GameService) *Hub {
	return &Hub{
		service:    svc,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// ServeWS handles WebSocket requests from clients
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

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// registerClient adds a client to the active set
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client %s connected (total clients: %d)", client.id, total)
}

// unregisterClient removes a client and tears down its game, if any. The
// service notifies the opponent before this client's channel closes, so the
// survivor always sees its game-ended push.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, known := h.clients[client]
	if known {
		delete(h.clients, client)
	}
	remaining := len(h.clients)
	h.mu.Unlock()

	if !known {
		return
	}

	h.service.Disconnect(context.Background(), client)
	close(client.send)

	log.Printf("Client %s disconnected (remaining clients: %d)", client.id, remaining)
}

// dispatch decodes one inbound frame, runs the command, and answers when the
// client asked for an acknowledgement. A malformed or unknown command never
// affects game state and never terminates the connection.
func (h *Hub) dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("Client %s sent an undecodable frame: %v", c.id, err)
		return
	}

	ctx := context.Background()
	var data interface{}

	switch env.Cmd {
	case CmdListGames:
		data = h.service.ListGames(ctx)

	case CmdCreateGame:
		var req createGameRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			data = badRequest()
			break
		}
		summary, err := h.service.CreateGame(ctx, c, req.PlayerName, req.Difficulty, req.GameData)
		if err != nil {
			data = createError(err)
			break
		}
		data = summary

	case CmdJoinGame:
		var req joinGameRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			data = badRequest()
			break
		}
		data = h.service.JoinGame(ctx, c, req.GameID, req.PlayerName)

	case CmdMove:
		var req turnRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			data = badRequest()
			break
		}
		data = h.service.Move(ctx, c, req.GameData)

	case CmdEndTurn:
		var req turnRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			data = badRequest()
			break
		}
		data = h.service.EndTurn(ctx, c, req.GameData)

	default:
		data = unknownCommand()
	}

	if env.Seq != 0 {
		c.push(&Response{Type: "response", Seq: env.Seq, Data: data})
	}
}

// createError maps a CreateGame failure onto a result the client can act on.
func createError(err error) service.Result {
	if errors.Is(err, service.ErrAlreadyBound) {
		return service.Result{Error: service.ErrorForbidden}
	}
	return service.Result{Error: "internal"}
}

// readPump pumps commands from the WebSocket connection into the hub
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
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.hub.dispatch(c, raw)
	}
}

// writePump pumps frames from the hub to the WebSocket connection
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
