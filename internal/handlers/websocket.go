package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"minestake-backend/internal/models"
	"minestake-backend/internal/services"
)

const (
	MessageSnapshot          = "SNAPSHOT"
	MessageReveal            = "REVEAL"
	MessageGameOver          = "GAME_OVER"
	MessageNewHighScore      = "NEW_HIGH_SCORE"
	MessageLeaderboardUpdate = "LEADERBOARD_UPDATE"
	MessagePing              = "PING"
	MessagePong              = "PONG"

	writeWait       = 10 * time.Second
	clientQueueSize = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	gameEngine *services.GameEngine
	hub        *WebSocketHub
	log        logrus.FieldLogger
}

type WebSocketHub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	stop       chan struct{}
	log        logrus.FieldLogger
}

type Client struct {
	ID   string
	Conn *websocket.Conn
	send chan *Message
	done chan struct{}
}

type Message struct {
	Type   string      `json:"type"`
	GameID string      `json:"game_id,omitempty"`
	Data   interface{} `json:"data"`
}

func NewWebSocketHandler(gameEngine *services.GameEngine, log logrus.FieldLogger) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
		stop:       make(chan struct{}),
		log:        log,
	}

	go hub.run()

	return &WebSocketHandler{
		gameEngine: gameEngine,
		hub:        hub,
		log:        log,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("Failed to upgrade to WebSocket")
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		send: make(chan *Message, clientQueueSize),
		done: make(chan struct{}),
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.stop:
		conn.Close()
		return
	}
	go client.writePump(h.log)

	defer func() {
		select {
		case h.hub.unregister <- client:
		case <-h.hub.stop:
		}
		conn.Close()
	}()

	client.enqueue(h.snapshot())

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).Warn("WebSocket error")
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

// Close stops the hub and disconnects every client.
func (h *WebSocketHandler) Close() {
	close(h.hub.stop)
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case MessagePing:
		client.enqueue(&Message{
			Type: MessagePong,
			Data: gin.H{"timestamp": time.Now().Unix()},
		})
	case MessageSnapshot:
		client.enqueue(h.snapshot())
	}
}

func (h *WebSocketHandler) snapshot() *Message {
	high := h.gameEngine.HighScore()
	data := gin.H{
		"high_score":        high.HighScore,
		"is_new_high_score": high.IsNewHighScore,
		"leaderboard":       h.gameEngine.Leaderboard(),
	}

	msg := &Message{Type: MessageSnapshot, Data: data}
	if state, ok := h.gameEngine.CurrentGame(); ok {
		msg.GameID = state.ID
		data["game"] = state.View()
	}
	return msg
}

func (h *WebSocketHandler) BroadcastReveal(result models.RevealResult) {
	h.publish(&Message{Type: MessageReveal, GameID: result.GameID, Data: result})
}

func (h *WebSocketHandler) BroadcastGameOver(summary models.GameSummary) {
	h.publish(&Message{Type: MessageGameOver, GameID: summary.GameID, Data: summary})

	if summary.IsNewHighScore {
		h.publish(&Message{
			Type:   MessageNewHighScore,
			GameID: summary.GameID,
			Data:   gin.H{"high_score": summary.HighScore},
		})
	}
}

func (h *WebSocketHandler) BroadcastLeaderboard(entries []models.ScoreEntry) {
	h.publish(&Message{Type: MessageLeaderboardUpdate, Data: entries})
}

// publish never blocks the game engine; a full queue drops the event.
func (h *WebSocketHandler) publish(msg *Message) {
	select {
	case h.hub.broadcast <- msg:
	default:
		h.log.WithField("type", msg.Type).Warn("WebSocket broadcast queue full, dropping event")
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.ID] = client
			hub.log.WithField("client_id", client.ID).Debug("Client registered")

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.ID]; ok {
				delete(hub.clients, client.ID)
				close(client.done)
				hub.log.WithField("client_id", client.ID).Debug("Client unregistered")
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)

		case <-hub.stop:
			for id, client := range hub.clients {
				delete(hub.clients, id)
				close(client.done)
			}
			return
		}
	}
}

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	for _, client := range hub.clients {
		if !client.enqueue(message) {
			hub.log.WithField("client_id", client.ID).Warn("Slow WebSocket client, dropping event")
		}
	}
}

func (c *Client) enqueue(msg *Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) writePump(log logrus.FieldLogger) {
	for {
		select {
		case msg := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteJSON(msg); err != nil {
				log.WithFields(logrus.Fields{
					"client_id": c.ID,
					"error":     err,
				}).Debug("WebSocket write failed")
				c.Conn.Close()
				return
			}

		case <-c.done:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
