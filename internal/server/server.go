// Package server implements the websocket game server: connection
// handling, the room lobby, and dispatch of game actions to the rules
// engine.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"hexfield/internal/database"
	"hexfield/internal/game"
	"hexfield/internal/protocol"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const serverVersion = "0.1.0"

// Server is the main game server.
type Server struct {
	db      *database.DB
	manager *game.Manager
	hub     *Hub
	lobby   *Lobby
	addr    string
	server  *http.Server
}

// Config holds server configuration.
type Config struct {
	Addr   string
	DBPath string
}

// New creates a new server.
func New(cfg Config) (*Server, error) {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:      db,
		manager: game.NewManager(),
		lobby:   NewLobby(),
		addr:    cfg.Addr,
	}
	s.hub = NewHub(s)
	return s, nil
}

// Start starts the server.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/api/rooms", s.handleListRooms)
	r.Get("/ws", s.handleWebSocket)

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: r,
	}

	log.Printf("listening on http://localhost%s (ws://localhost%s/ws)", s.addr, s.addr)

	go s.hub.Run()
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// handleWebSocket upgrades HTTP connections to websocket and runs the
// read loop until the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origin checking is left to the deployment
	})
	if err != nil {
		log.Printf("websocket accept failed: %v", err)
		return
	}

	client := NewClient(s.hub, conn)
	s.hub.Register(client)

	go client.WritePump(r.Context())
	client.ReadPump(r.Context())
}

// handleListRooms returns the open room listing over plain HTTP.
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.db.ListOpenRooms()
	if err != nil {
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}

	summaries := make([]protocol.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, protocol.RoomSummary{
			RoomID:        room.ID,
			Name:          room.Name,
			PlayerCount:   room.PlayerCount,
			TargetPlayers: room.TargetPlayers,
			Started:       room.Status != database.StatusWaiting,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(protocol.RoomListPayload{Rooms: summaries})
}

// Hub maintains the set of active clients and routes their messages.
type Hub struct {
	server *Server

	// Registered clients
	clients map[*Client]bool

	// Clients by player ID
	playerClients map[string]*Client

	// Clients in each room
	roomClients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	inbound    chan *ClientMessage

	mu sync.RWMutex
}

// ClientMessage wraps a message with its source client.
type ClientMessage struct {
	Client  *Client
	Message *protocol.Message
}

// NewHub creates a new Hub.
func NewHub(server *Server) *Hub {
	return &Hub{
		server:        server,
		clients:       make(map[*Client]bool),
		playerClients: make(map[string]*Client),
		roomClients:   make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		inbound:       make(chan *ClientMessage, 256),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendWelcome(client)

		case client := <-h.unregister:
			h.handleDisconnect(client)

		case msg := <-h.inbound:
			// Handled on this goroutine so messages apply in arrival
			// order.
			h.handleMessage(msg)
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Receive queues an inbound message from a client.
func (h *Hub) Receive(client *Client, msg *protocol.Message) {
	h.inbound <- &ClientMessage{Client: client, Message: msg}
}

func (h *Hub) sendWelcome(client *Client) {
	msg, _ := protocol.NewMessage(protocol.TypeWelcome, protocol.WelcomePayload{
		ServerVersion: serverVersion,
	})
	client.Send(msg)
}

func (h *Hub) handleDisconnect(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)

	if client.PlayerID != "" {
		delete(h.playerClients, client.PlayerID)

		if client.RoomID != "" {
			h.server.db.SetPlayerConnected(client.RoomID, client.PlayerID, false)

			if roomClients, ok := h.roomClients[client.RoomID]; ok {
				delete(roomClients, client)
				h.notifyRoomLocked(client.RoomID, protocol.TypeDisconnect, protocol.DisconnectPayload{
					PlayerID: client.PlayerID,
					Reason:   "disconnected",
				})
			}
		}
	}

	close(client.send)
}

func (h *Hub) handleMessage(cm *ClientMessage) {
	NewHandlers(h).Handle(cm.Client, cm.Message)
}

// NotifyRoom sends a message to every client in a room.
func (h *Hub) NotifyRoom(roomID string, msgType protocol.MessageType, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.notifyRoomLocked(roomID, msgType, payload)
}

func (h *Hub) notifyRoomLocked(roomID string, msgType protocol.MessageType, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		return
	}
	for client := range h.roomClients[roomID] {
		client.Send(msg)
	}
}

// SendToPlayer sends a message to a specific player if connected.
func (h *Hub) SendToPlayer(playerID string, msgType protocol.MessageType, payload interface{}) {
	h.mu.RLock()
	client := h.playerClients[playerID]
	h.mu.RUnlock()

	if client == nil {
		return
	}
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		return
	}
	client.Send(msg)
}

// AddClientToRoom adds a client to a room's client list.
func (h *Hub) AddClientToRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.roomClients[roomID] == nil {
		h.roomClients[roomID] = make(map[*Client]bool)
	}
	h.roomClients[roomID][client] = true
	client.RoomID = roomID
}

// RemoveClientFromRoom removes a client from a room.
func (h *Hub) RemoveClientFromRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.roomClients[roomID]; ok {
		delete(clients, client)
	}
	if client.RoomID == roomID {
		client.RoomID = ""
	}
}

// SetClientPlayer associates a client with a player ID.
func (h *Hub) SetClientPlayer(client *Client, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.PlayerID = playerID
	h.playerClients[playerID] = client
}

// Client represents a connected websocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan *protocol.Message

	PlayerID string
	RoomID   string
	Name     string
}

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
)

// NewClient creates a new client.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan *protocol.Message, 256),
	}
}

// Send queues a message to be sent to the client. A client whose queue
// is full is dropped without blocking the caller.
func (c *Client) Send(msg *protocol.Message) {
	select {
	case c.send <- msg:
	default:
		go c.hub.Unregister(c)
	}
}

// ReadPump reads messages from the websocket into the hub until the
// connection drops.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				log.Printf("websocket read error: %v", err)
			}
			return
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("invalid message: %v", err)
			continue
		}
		c.hub.Receive(c, &msg)
	}
}

// WritePump writes queued messages to the websocket and pings on idle.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("failed to marshal message: %v", err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err = c.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
