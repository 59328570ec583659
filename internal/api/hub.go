/*
Package api
File: hub.go
Description:
    The WebSocket Hub is the real-time presentation layer.

    It maintains a registry of all connected pilots and a broadcast channel.
    Mission Control talks to the player through it: the Hub implements
    mission.Notifier and turns notifications and panel toggles into
    JSON envelopes pushed to every socket.

    Architecture:
    - Hub: The singleton manager.
    - Client: Represents one browser connection.
    - ServeWs: The HTTP handler that upgrades a GET request to a WebSocket.
*/

package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/everforgeworks/galaxies-mission-control/internal/mission"
)

// Message types pushed over the socket.
const (
	TypeNotification = "notification"
	TypeMissionPanel = "mission_panel"
	TypeChat         = "chat"
)

// Message is the JSON envelope for all real-time communication.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	Sender  string      `json:"sender"`
}

// Notification is the payload of a TypeNotification message.
type Notification struct {
	Text     string           `json:"text"`
	Severity mission.Severity `json:"severity"`
}

// PanelState is the payload of a TypeMissionPanel message.
type PanelState struct {
	Visible bool `json:"visible"`
}

// Client represents a single connected pilot.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // Buffered channel for outbound messages
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients map[*Client]bool

	// Broadcast carries encoded envelopes to every client.
	Broadcast chan []byte

	register   chan *Client
	unregister chan *Client
	done       chan struct{} // Closed when Run returns
}

// NewHub creates a Hub. Run must be started before anything is broadcast.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run is the Hub's event loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return nil

		case client := <-h.register:
			h.clients[client] = true
			log.Println("WS: New Connection Registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full: the client hung or disconnected.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish encodes an envelope from the system and queues it for broadcast.
// When the queue is full the message is dropped rather than stalling the frame loop.
func (h *Hub) Publish(msgType string, payload interface{}) {
	b, err := json.Marshal(Message{Type: msgType, Payload: payload, Sender: "system"})
	if err != nil {
		log.Printf("WS: Error marshaling %s: %v", msgType, err)
		return
	}
	select {
	case h.Broadcast <- b:
	default:
		log.Printf("WS: Broadcast queue full, dropped %s", msgType)
	}
}

// PostMessage implements mission.Notifier.
func (h *Hub) PostMessage(text string, severity mission.Severity) {
	h.Publish(TypeNotification, Notification{Text: text, Severity: severity})
}

// SetMissionPanelVisible implements mission.Notifier.
func (h *Hub) SetMissionPanelVisible(visible bool) {
	h.Publish(TypeMissionPanel, PanelState{Visible: visible})
}

// upgrader allows connections from any host (the desktop client is cross-origin).
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request and attaches the connection to the Hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WS Upgrade Error:", err)
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	select {
	case client.hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump relays pilot chat to everyone.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS Error: %v", err)
			}
			break
		}
		c.hub.Publish(TypeChat, string(message))
	}
}

// writePump exits when the Hub closes c.send.
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
